package production

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
)

// IngredientAvailability disponibilidad de una materia prima para el volumen objetivo.
type IngredientAvailability struct {
	MateriaPrimaID     string
	Nombre             string
	Etapa              string
	CantidadRequerida  decimal.Decimal
	CantidadDisponible decimal.Decimal
	Deficit            decimal.Decimal
	Unidad             string
	Disponible         bool
}

// ResumenDisponibilidad conteos agregados del reporte.
type ResumenDisponibilidad struct {
	TotalMateriales       int
	MaterialesDisponibles int
	MaterialesFaltantes   int
	PorcentajeDisponible  int
}

// AvailabilityReport reporte de verificación de inventario para una receta y
// un volumen objetivo. EsValida es true si y solo si todo déficit es cero.
type AvailabilityReport struct {
	RecetaID        string
	VolumenObjetivo decimal.Decimal
	UnidadVolumen   string
	FactorEscala    decimal.Decimal
	Ingredientes    []IngredientAvailability
	EsValida        bool
	Resumen         ResumenDisponibilidad
}

// ComputeAvailability calcula la disponibilidad de inventario (servicio de
// dominio puro). factor = volumenObjetivo / receta.VolumenLoteObjetivo;
// requerida = cantidadPorLote * factor; déficit = max(0, requerida - disponible).
// stocks mapea materia prima a cantidad disponible; una materia prima ausente
// del mapa cuenta como stock cero.
func ComputeAvailability(receta *entity.Recipe, volumenObjetivo decimal.Decimal, stocks map[string]*entity.RawMaterial) (*AvailabilityReport, error) {
	if len(receta.Ingredientes) == 0 {
		return nil, &domain.EmptyRecipeError{RecetaID: receta.ID}
	}
	if !receta.VolumenLoteObjetivo.GreaterThan(decimal.Zero) {
		return nil, &domain.InvalidRecipeError{RecetaID: receta.ID, Motivo: "volumen de lote objetivo cero"}
	}
	if !volumenObjetivo.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	factor := volumenObjetivo.Div(receta.VolumenLoteObjetivo)
	report := &AvailabilityReport{
		RecetaID:        receta.ID,
		VolumenObjetivo: volumenObjetivo,
		UnidadVolumen:   receta.UnidadVolumen,
		FactorEscala:    factor,
		Ingredientes:    make([]IngredientAvailability, 0, len(receta.Ingredientes)),
		EsValida:        true,
	}

	for _, ing := range receta.Ingredientes {
		requerida := ing.CantidadPorLote.Mul(factor)
		disponible := decimal.Zero
		nombre := ""
		if mp, ok := stocks[ing.MateriaPrimaID]; ok && mp != nil {
			disponible = mp.StockActual
			nombre = mp.Nombre
		}
		deficit := requerida.Sub(disponible)
		if deficit.LessThan(decimal.Zero) {
			deficit = decimal.Zero
		}
		item := IngredientAvailability{
			MateriaPrimaID:     ing.MateriaPrimaID,
			Nombre:             nombre,
			Etapa:              ing.Etapa,
			CantidadRequerida:  requerida,
			CantidadDisponible: disponible,
			Deficit:            deficit,
			Unidad:             ing.Unidad,
			Disponible:         deficit.IsZero(),
		}
		if item.Disponible {
			report.Resumen.MaterialesDisponibles++
		} else {
			report.Resumen.MaterialesFaltantes++
			report.EsValida = false
		}
		report.Ingredientes = append(report.Ingredientes, item)
	}

	report.Resumen.TotalMateriales = len(report.Ingredientes)
	report.Resumen.PorcentajeDisponible = int(math.Round(
		float64(report.Resumen.MaterialesDisponibles) / float64(report.Resumen.TotalMateriales) * 100,
	))
	return report, nil
}
