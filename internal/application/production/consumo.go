package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/production"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// ConsumptionUseCase registra consumos de materia prima contra un lote de
// fabricación y cierra lotes. El decremento de stock es una sola operación
// atómica: verificación y escritura dentro de la misma transacción con la fila
// bloqueada (SELECT FOR UPDATE), para que dos consumos concurrentes no
// sobrevendan el stock.
type ConsumptionUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(txRunner TxRunner) *ConsumptionUseCase {
	return &ConsumptionUseCase{
		txRunner: txRunner,
		now:      time.Now,
	}
}

// RecordConsumption registra un consumo y decrementa el stock de la materia
// prima (y del lote de materia prima si se indicó). Devuelve
// domain.ErrInsufficientStock si el decremento dejaría stock negativo; en ese
// caso no queda ningún estado parcial.
func (uc *ConsumptionUseCase) RecordConsumption(ctx context.Context, loteID string, in dto.ConsumptionRequest) (*entity.ConsumptionRecord, error) {
	if !in.CantidadConsumida.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	registro := &entity.ConsumptionRecord{
		ID:                 uuid.New().String(),
		LoteFabricacionID:  loteID,
		MateriaPrimaID:     in.MateriaPrimaID,
		LoteMateriaPrimaID: in.LoteMateriaPrimaID,
		CantidadConsumida:  in.CantidadConsumida,
		UnidadMedida:       in.UnidadMedida,
		EtapaProduccion:    in.EtapaProduccion,
		FechaRegistro:      uc.now(),
		RegistradoPor:      in.RegistradoPor,
	}

	err := uc.txRunner.RunConsumo(ctx, func(
		loteRepo repository.ManufacturingLotRepository,
		materiaRepo repository.RawMaterialRepository,
		loteMateriaRepo repository.RawMaterialLotRepository,
		consumoRepo repository.ConsumptionRepository,
	) error {
		// Bloquea el lote de fabricación: un FinalizeLot concurrente no puede
		// cerrarlo entre la verificación y el commit.
		lote, err := loteRepo.GetForUpdate(loteID)
		if err != nil {
			return err
		}
		if lote == nil {
			return domain.ErrNotFound
		}
		// Los lotes cerrados no reciben más consumos.
		if lote.Estado == entity.LotStatusFinalizado || lote.Estado == entity.LotStatusCancelado {
			return domain.ErrConflict
		}

		// Bloquea la fila de la materia prima: verificación y decremento en la misma tx.
		materia, err := materiaRepo.GetForUpdate(in.MateriaPrimaID)
		if err != nil {
			return err
		}
		if materia == nil {
			return domain.ErrNotFound
		}
		if materia.StockActual.LessThan(in.CantidadConsumida) {
			return domain.ErrInsufficientStock
		}
		if err := materiaRepo.UpdateStock(materia.ID, materia.StockActual.Sub(in.CantidadConsumida)); err != nil {
			return err
		}

		if in.LoteMateriaPrimaID != nil {
			lmp, err := loteMateriaRepo.GetForUpdate(*in.LoteMateriaPrimaID)
			if err != nil {
				return err
			}
			if lmp == nil || lmp.MateriaPrimaID != in.MateriaPrimaID {
				return domain.ErrNotFound
			}
			if lmp.CantidadDisponible.LessThan(in.CantidadConsumida) {
				return domain.ErrInsufficientStock
			}
			if err := loteMateriaRepo.UpdateCantidad(lmp.ID, lmp.CantidadDisponible.Sub(in.CantidadConsumida)); err != nil {
				return err
			}
		}
		return consumoRepo.Create(registro)
	})
	if err != nil {
		return nil, err
	}
	return registro, nil
}

// FinalizeLot cierra un lote de fabricación con su cantidad final: calcula el
// rendimiento real contra el volumen programado de la orden, registra el lote
// de producto terminado y finaliza la orden, todo en una transacción. Devuelve
// el lote cerrado y el lote de producto terminado creado; el ID de este último
// es el que consulta la trazabilidad inversa.
func (uc *ConsumptionUseCase) FinalizeLot(ctx context.Context, loteID string, in dto.FinalizeLotRequest) (*entity.ManufacturingLot, *entity.FinishedLot, error) {
	if !in.CantidadFinal.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	var cerrado *entity.ManufacturingLot
	var producido *entity.FinishedLot
	err := uc.txRunner.RunOrden(ctx, func(
		ordenRepo repository.OrderRepository,
		loteRepo repository.ManufacturingLotRepository,
		terminadoRepo repository.FinishedLotRepository,
	) error {
		lote, err := loteRepo.GetByID(loteID)
		if err != nil {
			return err
		}
		if lote == nil {
			return domain.ErrNotFound
		}
		if !lote.Estado.CanTransitionTo(entity.LotStatusFinalizado) {
			return &domain.InvalidTransitionError{Desde: lote.Estado.String(), Hacia: entity.LotStatusFinalizado.String()}
		}
		orden, err := ordenRepo.GetByID(lote.OrdenProduccionID)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}

		now := uc.now()
		rendimiento := production.RendimientoReal(in.CantidadFinal, orden.VolumenProgramado)
		if in.RendimientoReal != nil {
			rendimiento = *in.RendimientoReal
		}

		desdeLote := lote.Estado
		lote.Estado = entity.LotStatusFinalizado
		lote.VolumenObtenido = &in.CantidadFinal
		lote.RendimientoReal = &rendimiento
		lote.CalificacionCalidad = in.CalificacionCalidad
		lote.FechaFinalizacion = &now
		lote.UpdatedAt = now
		ok, err := loteRepo.UpdateEstadoCAS(lote, desdeLote)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}

		terminado := &entity.FinishedLot{
			ID:                uuid.New().String(),
			LoteFabricacionID: lote.ID,
			Codigo:            lote.CodigoLote + "-PT",
			Cantidad:          in.CantidadFinal,
			Unidad:            orden.UnidadVolumen,
			CreatedAt:         now,
		}
		if err := terminadoRepo.Create(terminado); err != nil {
			return err
		}

		// Finaliza la orden en paso con el lote.
		if orden.Estado.CanTransitionTo(entity.OrderStatusFinalizada) {
			desdeOrden := orden.Estado
			orden.Estado = entity.OrderStatusFinalizada
			orden.FechaFinalizacion = &now
			orden.UpdatedAt = now
			ok, err := ordenRepo.UpdateEstadoCAS(orden, desdeOrden)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrConflict
			}
		}
		cerrado = lote
		producido = terminado
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return cerrado, producido, nil
}
