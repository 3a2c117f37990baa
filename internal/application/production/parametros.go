package production

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/params"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// ParameterUseCase registro y validación de lecturas de parámetros de proceso.
// EnRango se recalcula contra la configuración vigente en cada escritura; un
// valor fuera de rango se registra igualmente como hallazgo (no bloquea).
type ParameterUseCase struct {
	lecturaRepo repository.ParameterReadingRepository
	loteRepo    repository.ManufacturingLotRepository
	ordenRepo   repository.OrderRepository
	validator   *params.Validator
	now         func() time.Time
}

// NewParameterUseCase construye el caso de uso.
func NewParameterUseCase(
	lecturaRepo repository.ParameterReadingRepository,
	loteRepo repository.ManufacturingLotRepository,
	ordenRepo repository.OrderRepository,
	validator *params.Validator,
) *ParameterUseCase {
	return &ParameterUseCase{
		lecturaRepo: lecturaRepo,
		loteRepo:    loteRepo,
		ordenRepo:   ordenRepo,
		validator:   validator,
		now:         time.Now,
	}
}

// RegisterReading registra una lectura de parámetro para un lote de
// fabricación. Solo se admite cuando el estado de la orden permite registrar
// parámetros (ni Programada ni En Preparacion).
func (uc *ParameterUseCase) RegisterReading(ctx context.Context, in dto.RegisterParameterRequest) (*entity.ProcessParameterReading, error) {
	lote, err := uc.loteRepo.GetByID(in.LoteFabricacionID)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrNotFound
	}
	orden, err := uc.ordenRepo.GetByID(lote.OrdenProduccionID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	if !orden.Estado.PermiteRegistroParametros() {
		return nil, domain.ErrConflict
	}

	enRango, err := uc.evaluar(in.EtapaProduccion, in.Parametro, in.Valor, in.UnidadMedida)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	lectura := &entity.ProcessParameterReading{
		ID:                uuid.New().String(),
		LoteFabricacionID: lote.ID,
		EtapaProduccion:   in.EtapaProduccion,
		Parametro:         in.Parametro,
		Valor:             in.Valor,
		UnidadMedida:      in.UnidadMedida,
		EnRango:           enRango,
		FechaMedicion:     now,
		Notas:             in.Notas,
		CreatedAt:         now,
	}
	if err := uc.lecturaRepo.Create(lectura); err != nil {
		return nil, err
	}
	return lectura, nil
}

// UpdateReading corrige una lectura existente; EnRango se recalcula siempre,
// nunca se conserva el valor almacenado.
func (uc *ParameterUseCase) UpdateReading(ctx context.Context, id string, in dto.RegisterParameterRequest) (*entity.ProcessParameterReading, error) {
	lectura, err := uc.lecturaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lectura == nil {
		return nil, domain.ErrNotFound
	}

	enRango, err := uc.evaluar(in.EtapaProduccion, in.Parametro, in.Valor, in.UnidadMedida)
	if err != nil {
		return nil, err
	}
	lectura.EtapaProduccion = in.EtapaProduccion
	lectura.Parametro = in.Parametro
	lectura.Valor = in.Valor
	lectura.UnidadMedida = in.UnidadMedida
	lectura.EnRango = enRango
	lectura.Notas = in.Notas
	if err := uc.lecturaRepo.Update(lectura); err != nil {
		return nil, err
	}
	return lectura, nil
}

// ListByLote lista las lecturas de un lote de fabricación.
func (uc *ParameterUseCase) ListByLote(ctx context.Context, loteID string) ([]entity.ProcessParameterReading, error) {
	lote, err := uc.loteRepo.GetByID(loteID)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrNotFound
	}
	return uc.lecturaRepo.ListByLote(loteID)
}

// ValidateBatch valida un conjunto de lecturas contra los rangos configurados.
// Nunca corta en el primer fallo; los valores fuera de rango son hallazgos.
func (uc *ParameterUseCase) ValidateBatch(ctx context.Context, in dto.ValidateBatchRequest) dto.BatchValidationDTO {
	lecturas := make([]params.Lectura, 0, len(in.Parametros))
	for _, p := range in.Parametros {
		lecturas = append(lecturas, params.Lectura{
			EtapaProduccion: p.EtapaProduccion,
			Parametro:       p.Parametro,
			Valor:           p.Valor,
			UnidadMedida:    p.UnidadMedida,
		})
	}
	return dto.FromBatchResult(uc.validator.ValidateBatch(lecturas))
}

// evaluar calcula EnRango. Fuera de rango no es un error de la operación de
// registro: la lectura se guarda marcada. Otros errores del validador sí se propagan.
func (uc *ParameterUseCase) evaluar(etapa, parametro string, valor float64, unidad string) (bool, error) {
	res, err := uc.validator.Validate(etapa, parametro, valor, unidad)
	if err != nil {
		var fueraDeRango *domain.OutOfRangeError
		if errors.As(err, &fueraDeRango) {
			return false, nil
		}
		return false, err
	}
	return res.Valido, nil
}
