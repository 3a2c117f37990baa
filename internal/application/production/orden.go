package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// OrderUseCase ciclo de vida de las órdenes de producción. Toda mutación de
// estado pasa por Transition, con compare-and-swap para detectar actualizaciones
// perdidas entre operadores concurrentes.
type OrderUseCase struct {
	txRunner   TxRunner
	ordenRepo  repository.OrderRepository
	recetaRepo repository.RecipeRepository
	loteRepo   repository.ManufacturingLotRepository
	now        func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	ordenRepo repository.OrderRepository,
	recetaRepo repository.RecipeRepository,
	loteRepo repository.ManufacturingLotRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:   txRunner,
		ordenRepo:  ordenRepo,
		recetaRepo: recetaRepo,
		loteRepo:   loteRepo,
		now:        time.Now,
	}
}

// Create crea una orden en estado Programada. La creación es un paso explícito
// del usuario, separado de la planificación.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.ProductionOrder, error) {
	if !in.VolumenProgramado.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	receta, err := uc.recetaRepo.GetByID(in.RecetaID)
	if err != nil {
		return nil, err
	}
	if receta == nil {
		return nil, domain.ErrNotFound
	}

	unidad := in.UnidadMedida
	if unidad == "" {
		unidad = receta.UnidadVolumen
	}
	now := uc.now()
	orden := &entity.ProductionOrder{
		ID:                uuid.New().String(),
		RecetaID:          receta.ID,
		FechaProgramada:   in.FechaProgramada,
		VolumenProgramado: in.VolumenProgramado,
		UnidadVolumen:     unidad,
		Estado:            entity.OrderStatusProgramada,
		ResponsableID:     in.ResponsableID,
		Notas:             in.Notas,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.ordenRepo.Create(orden); err != nil {
		return nil, err
	}
	return orden, nil
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	orden, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	return orden, nil
}

// List lista las órdenes de producción.
func (uc *OrderUseCase) List(ctx context.Context) ([]entity.ProductionOrder, error) {
	return uc.ordenRepo.List()
}

// Transition aplica una transición de estado a la orden dentro de una
// transacción: valida la tabla de transiciones, aplica los efectos de fechas,
// escribe con compare-and-swap y mantiene el lote de fabricación en paso.
// Devuelve domain.ErrConflict si otro actor cambió el estado en paralelo.
func (uc *OrderUseCase) Transition(ctx context.Context, ordenID string, in dto.TransitionRequest) (*entity.ProductionOrder, error) {
	target := entity.OrderStatus(in.NuevoEstado)
	if !target.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	var actualizada *entity.ProductionOrder
	err := uc.txRunner.RunOrden(ctx, func(
		ordenRepo repository.OrderRepository,
		loteRepo repository.ManufacturingLotRepository,
		terminadoRepo repository.FinishedLotRepository,
	) error {
		orden, err := ordenRepo.GetByID(ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		desde := orden.Estado
		if !desde.CanTransitionTo(target) {
			return &domain.InvalidTransitionError{Desde: desde.String(), Hacia: target.String()}
		}

		now := uc.now()
		lote, err := loteRepo.GetActivoPorOrden(orden.ID)
		if err != nil {
			return err
		}

		// Finalizar la orden exige cerrar antes el lote con su cantidad final
		// (POST /lotes-fabricacion/:id/finalizar).
		if target == entity.OrderStatusFinalizada && lote != nil && lote.Estado != entity.LotStatusFinalizado {
			return domain.ErrConflict
		}

		orden.Estado = target
		orden.UpdatedAt = now
		if in.Notas != "" {
			orden.Notas = in.Notas
		}
		switch target {
		case entity.OrderStatusEnProceso:
			if orden.FechaInicio == nil {
				inicio := now
				if in.FechaInicio != nil {
					inicio = *in.FechaInicio
				}
				orden.FechaInicio = &inicio
			}
		case entity.OrderStatusFinalizada:
			fin := now
			if in.FechaFinalizacion != nil {
				fin = *in.FechaFinalizacion
			}
			orden.FechaFinalizacion = &fin
		}

		ok, err := ordenRepo.UpdateEstadoCAS(orden, desde)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}

		if err := uc.avanzarLote(ordenRepo, loteRepo, orden, lote, target, now); err != nil {
			return err
		}
		actualizada = orden
		return nil
	})
	if err != nil {
		return nil, err
	}
	return actualizada, nil
}

// avanzarLote mantiene el lote de fabricación consistente con la orden.
func (uc *OrderUseCase) avanzarLote(
	_ repository.OrderRepository,
	loteRepo repository.ManufacturingLotRepository,
	orden *entity.ProductionOrder,
	lote *entity.ManufacturingLot,
	target entity.OrderStatus,
	now time.Time,
) error {
	switch target {
	case entity.OrderStatusEnPreparacion:
		if lote != nil {
			return nil
		}
		secuencia, err := loteRepo.CountByDia(now)
		if err != nil {
			return err
		}
		nuevo := &entity.ManufacturingLot{
			ID:                uuid.New().String(),
			OrdenProduccionID: orden.ID,
			CodigoLote:        entity.NuevoCodigoLote(now, secuencia+1),
			Estado:            entity.LotStatusEnPreparacion,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		return loteRepo.Create(nuevo)

	case entity.OrderStatusEnProceso:
		if lote == nil || lote.Estado != entity.LotStatusEnPreparacion {
			return nil
		}
		desde := lote.Estado
		lote.Estado = entity.LotStatusEnProceso
		lote.FechaInicio = &now
		lote.UpdatedAt = now
		ok, err := loteRepo.UpdateEstadoCAS(lote, desde)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}

	case entity.OrderStatusCancelada:
		if lote == nil || !lote.Estado.CanTransitionTo(entity.LotStatusCancelado) {
			return nil
		}
		desde := lote.Estado
		lote.Estado = entity.LotStatusCancelado
		lote.FechaFinalizacion = &now
		lote.UpdatedAt = now
		ok, err := loteRepo.UpdateEstadoCAS(lote, desde)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
	}
	return nil
}

// ListLotes lista los lotes de fabricación de una orden.
func (uc *OrderUseCase) ListLotes(ctx context.Context, ordenID string) ([]entity.ManufacturingLot, error) {
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	return uc.loteRepo.ListByOrden(ordenID)
}
