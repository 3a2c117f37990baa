package production

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
)

// TimeEstimate estimación de tiempos de una orden a partir de las etapas de la receta.
type TimeEstimate struct {
	TiempoPreparacionHoras decimal.Decimal
	TiempoProcesoHoras     decimal.Decimal
	TotalHoras             decimal.Decimal
	FechaInicioEstimada    time.Time
	FechaFinEstimada       time.Time
}

// EstimateSchedule suma las duraciones esperadas de las etapas de la receta,
// separando preparación de proceso, y proyecta inicio y fin desde la fecha dada.
func EstimateSchedule(receta *entity.Recipe, inicio time.Time) TimeEstimate {
	prep := decimal.Zero
	proceso := decimal.Zero
	for _, e := range receta.Etapas {
		if e.EsPreparacion {
			prep = prep.Add(e.DuracionHoras)
		} else {
			proceso = proceso.Add(e.DuracionHoras)
		}
	}
	total := prep.Add(proceso)
	horas, _ := total.Float64()
	return TimeEstimate{
		TiempoPreparacionHoras: prep,
		TiempoProcesoHoras:     proceso,
		TotalHoras:             total,
		FechaInicioEstimada:    inicio,
		FechaFinEstimada:       inicio.Add(time.Duration(horas * float64(time.Hour))),
	}
}
