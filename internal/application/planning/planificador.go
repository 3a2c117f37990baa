package planning

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/production"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// PlanOrderUseCase arma el reporte de planificación previo a crear una orden:
// disponibilidad de inventario, estimación de tiempos y requerimientos de
// material. Es una simulación: nunca muta stock ni crea la orden; el reporte es
// consultivo aunque falten materiales.
type PlanOrderUseCase struct {
	verificar  *VerifyInventoryUseCase
	recetaRepo repository.RecipeRepository
	now        func() time.Time
}

// NewPlanOrderUseCase construye el planificador.
func NewPlanOrderUseCase(verificar *VerifyInventoryUseCase, recetaRepo repository.RecipeRepository) *PlanOrderUseCase {
	return &PlanOrderUseCase{verificar: verificar, recetaRepo: recetaRepo, now: time.Now}
}

// Plan calcula el reporte de planificación. fechaProgramada nula usa la fecha actual.
func (uc *PlanOrderUseCase) Plan(ctx context.Context, recetaID string, volumen decimal.Decimal, fechaProgramada *time.Time) (*dto.PlanningReportDTO, error) {
	receta, err := uc.recetaRepo.GetByID(recetaID)
	if err != nil {
		return nil, err
	}
	if receta == nil {
		return nil, domain.ErrNotFound
	}

	disponibilidad, err := uc.verificar.CheckAvailability(ctx, recetaID, volumen)
	if err != nil {
		return nil, err
	}

	inicio := uc.now()
	if fechaProgramada != nil {
		inicio = *fechaProgramada
	}
	estimacion := production.EstimateSchedule(receta, inicio)

	disponiblePor := make(map[string]bool, len(disponibilidad.Ingredientes))
	requeridaPor := make(map[string]production.IngredientAvailability, len(disponibilidad.Ingredientes))
	for _, i := range disponibilidad.Ingredientes {
		disponiblePor[i.MateriaPrimaID] = i.Disponible
		requeridaPor[i.MateriaPrimaID] = i
	}

	report := &dto.PlanningReportDTO{
		RecetaID:               receta.ID,
		VolumenProgramado:      volumen,
		UnidadMedida:           receta.UnidadVolumen,
		InventarioValido:       disponibilidad.EsValida,
		Materiales:             make([]dto.MaterialRequirementDTO, 0, len(receta.Ingredientes)),
		TiempoPreparacionHoras: estimacion.TiempoPreparacionHoras,
		TiempoProcesoHoras:     estimacion.TiempoProcesoHoras,
		TiempoTotalHoras:       estimacion.TotalHoras,
		FechaInicioEstimada:    estimacion.FechaInicioEstimada,
		FechaFinEstimada:       estimacion.FechaFinEstimada,
	}

	for _, ing := range receta.Ingredientes {
		req := dto.MaterialRequirementDTO{
			MateriaPrimaID:  ing.MateriaPrimaID,
			EtapaProduccion: ing.Etapa,
			Orden:           ing.Orden,
			UnidadMedida:    ing.Unidad,
			Disponible:      disponiblePor[ing.MateriaPrimaID],
			TiempoAdicion:   ing.TiempoAdicion,
			UnidadTiempo:    ing.UnidadTiempo,
		}
		if item, ok := requeridaPor[ing.MateriaPrimaID]; ok {
			req.CantidadRequerida = item.CantidadRequerida
			req.Nombre = item.Nombre
		}
		report.Materiales = append(report.Materiales, req)
	}
	return report, nil
}
