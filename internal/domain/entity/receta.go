package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa una receta de cerveza. Inmutable una vez referenciada por
// una orden de producción: clonar crea una nueva versión.
type Recipe struct {
	ID                  string
	Nombre              string
	Estilo              string
	VolumenLoteObjetivo decimal.Decimal
	UnidadVolumen       string
	Ingredientes        []RecipeIngredient
	Etapas              []RecipeStage
	Version             int
	Activa              bool
	CreatedAt           time.Time
}

// RecipeIngredient ingrediente de la receta: cantidad por lote objetivo,
// con etapa de adición y momento opcional dentro de la etapa.
type RecipeIngredient struct {
	MateriaPrimaID  string
	Etapa           string
	CantidadPorLote decimal.Decimal
	Unidad          string
	Orden           int
	TiempoAdicion   *int   // minutos dentro de la etapa, opcional
	UnidadTiempo    string // "minutos" u "horas" cuando TiempoAdicion está presente
}

// RecipeStage etapa del proceso con su duración esperada; base de la
// estimación de tiempos del planificador.
type RecipeStage struct {
	Etapa         string
	DuracionHoras decimal.Decimal
	Orden         int
	EsPreparacion bool // etapas previas al proceso (molienda, maceración)
}

// DuracionTotalHoras suma las duraciones de todas las etapas.
func (r *Recipe) DuracionTotalHoras() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.Etapas {
		total = total.Add(e.DuracionHoras)
	}
	return total
}
