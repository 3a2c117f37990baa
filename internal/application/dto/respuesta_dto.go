package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/params"
	"github.com/cerveceria/produccion-api/internal/domain/production"
)

// OrderResponse representación de una orden de producción.
type OrderResponse struct {
	ID                string          `json:"id"`
	RecetaID          string          `json:"recetaId"`
	FechaProgramada   time.Time       `json:"fechaProgramada"`
	VolumenProgramado decimal.Decimal `json:"volumenProgramado"`
	UnidadMedida      string          `json:"unidadMedida"`
	Estado            string          `json:"estado"`
	ResponsableID     string          `json:"responsableId,omitempty"`
	FechaInicio       *time.Time      `json:"fechaInicio,omitempty"`
	FechaFinalizacion *time.Time      `json:"fechaFinalizacion,omitempty"`
	Notas             string          `json:"notas,omitempty"`
}

// FromOrder convierte la entidad a su representación HTTP.
func FromOrder(o *entity.ProductionOrder) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		RecetaID:          o.RecetaID,
		FechaProgramada:   o.FechaProgramada,
		VolumenProgramado: o.VolumenProgramado,
		UnidadMedida:      o.UnidadVolumen,
		Estado:            o.Estado.String(),
		ResponsableID:     o.ResponsableID,
		FechaInicio:       o.FechaInicio,
		FechaFinalizacion: o.FechaFinalizacion,
		Notas:             o.Notas,
	}
}

// IngredientAvailabilityDTO disponibilidad por materia prima.
type IngredientAvailabilityDTO struct {
	MateriaPrimaID     string          `json:"materiaPrimaId"`
	Nombre             string          `json:"nombre,omitempty"`
	Etapa              string          `json:"etapaProduccion,omitempty"`
	CantidadRequerida  decimal.Decimal `json:"cantidadRequerida"`
	CantidadDisponible decimal.Decimal `json:"cantidadDisponible"`
	Deficit            decimal.Decimal `json:"deficit"`
	UnidadMedida       string          `json:"unidadMedida"`
	Disponible         bool            `json:"disponible"`
}

// AvailabilityReportDTO reporte de verificación de inventario.
type AvailabilityReportDTO struct {
	RecetaID              string                      `json:"recetaId"`
	VolumenObjetivo       decimal.Decimal             `json:"volumenObjetivo"`
	UnidadMedida          string                      `json:"unidadMedida"`
	EsValida              bool                        `json:"esValida"`
	Ingredientes          []IngredientAvailabilityDTO `json:"ingredientes"`
	TotalMateriales       int                         `json:"totalMateriales"`
	MaterialesDisponibles int                         `json:"materialesDisponibles"`
	MaterialesFaltantes   int                         `json:"materialesFaltantes"`
	PorcentajeDisponible  int                         `json:"porcentajeDisponible"`
}

// FromAvailabilityReport convierte el reporte de dominio.
func FromAvailabilityReport(r *production.AvailabilityReport) AvailabilityReportDTO {
	out := AvailabilityReportDTO{
		RecetaID:              r.RecetaID,
		VolumenObjetivo:       r.VolumenObjetivo,
		UnidadMedida:          r.UnidadVolumen,
		EsValida:              r.EsValida,
		Ingredientes:          make([]IngredientAvailabilityDTO, 0, len(r.Ingredientes)),
		TotalMateriales:       r.Resumen.TotalMateriales,
		MaterialesDisponibles: r.Resumen.MaterialesDisponibles,
		MaterialesFaltantes:   r.Resumen.MaterialesFaltantes,
		PorcentajeDisponible:  r.Resumen.PorcentajeDisponible,
	}
	for _, i := range r.Ingredientes {
		out.Ingredientes = append(out.Ingredientes, IngredientAvailabilityDTO{
			MateriaPrimaID:     i.MateriaPrimaID,
			Nombre:             i.Nombre,
			Etapa:              i.Etapa,
			CantidadRequerida:  i.CantidadRequerida,
			CantidadDisponible: i.CantidadDisponible,
			Deficit:            i.Deficit,
			UnidadMedida:       i.Unidad,
			Disponible:         i.Disponible,
		})
	}
	return out
}

// MaterialRequirementDTO requerimiento de material del plan.
type MaterialRequirementDTO struct {
	MateriaPrimaID    string          `json:"materiaPrimaId"`
	Nombre            string          `json:"nombre,omitempty"`
	EtapaProduccion   string          `json:"etapaProduccion"`
	Orden             int             `json:"orden"`
	CantidadRequerida decimal.Decimal `json:"cantidadRequerida"`
	UnidadMedida      string          `json:"unidadMedida"`
	Disponible        bool            `json:"disponible"`
	TiempoAdicion     *int            `json:"tiempoAdicion,omitempty"`
	UnidadTiempo      string          `json:"unidadTiempo,omitempty"`
}

// PlanningReportDTO reporte de planificación previo a crear la orden.
type PlanningReportDTO struct {
	RecetaID               string                   `json:"recetaId"`
	VolumenProgramado      decimal.Decimal          `json:"volumenProgramado"`
	UnidadMedida           string                   `json:"unidadMedida"`
	InventarioValido       bool                     `json:"inventarioValido"`
	Materiales             []MaterialRequirementDTO `json:"materiales"`
	TiempoPreparacionHoras decimal.Decimal          `json:"tiempoPreparacionHoras"`
	TiempoProcesoHoras     decimal.Decimal          `json:"tiempoProcesoHoras"`
	TiempoTotalHoras       decimal.Decimal          `json:"tiempoTotalHoras"`
	FechaInicioEstimada    time.Time                `json:"fechaInicioEstimada"`
	FechaFinEstimada       time.Time                `json:"fechaFinEstimada"`
}

// ParameterReadingDTO lectura de parámetro registrada.
type ParameterReadingDTO struct {
	ID                string    `json:"id"`
	LoteFabricacionID string    `json:"loteFabricacionId"`
	EtapaProduccion   string    `json:"etapaProduccion"`
	Parametro         string    `json:"parametro"`
	Valor             float64   `json:"valor"`
	UnidadMedida      string    `json:"unidadMedida"`
	EnRango           bool      `json:"enRango"`
	FechaMedicion     time.Time `json:"fechaMedicion"`
	Notas             string    `json:"notas,omitempty"`
}

// FromReading convierte la entidad a su representación HTTP.
func FromReading(l *entity.ProcessParameterReading) ParameterReadingDTO {
	return ParameterReadingDTO{
		ID:                l.ID,
		LoteFabricacionID: l.LoteFabricacionID,
		EtapaProduccion:   l.EtapaProduccion,
		Parametro:         l.Parametro,
		Valor:             l.Valor,
		UnidadMedida:      l.UnidadMedida,
		EnRango:           l.EnRango,
		FechaMedicion:     l.FechaMedicion,
		Notas:             l.Notas,
	}
}

// RangeDTO rango configurado de un parámetro.
type RangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ParameterResultDTO resultado individual de la validación por lote.
type ParameterResultDTO struct {
	EtapaProduccion string    `json:"etapaProduccion,omitempty"`
	Parametro       string    `json:"parametro"`
	UnidadMedida    string    `json:"unidadMedida"`
	Valor           float64   `json:"valor"`
	Valido          bool      `json:"valido"`
	SinRango        bool      `json:"sinRango,omitempty"`
	Rango           *RangeDTO `json:"rango,omitempty"`
}

// BatchValidationDTO respuesta de la validación por lote.
type BatchValidationDTO struct {
	Resultados   []ParameterResultDTO `json:"resultados"`
	EnRango      int                  `json:"enRango"`
	FueraDeRango int                  `json:"fueraDeRango"`
}

// FromBatchResult convierte el resultado del validador de dominio.
func FromBatchResult(r params.ResultadoBatch) BatchValidationDTO {
	out := BatchValidationDTO{
		Resultados:   make([]ParameterResultDTO, 0, len(r.Resultados)),
		EnRango:      r.EnRango,
		FueraDeRango: r.FueraDeRango,
	}
	for _, res := range r.Resultados {
		item := ParameterResultDTO{
			EtapaProduccion: res.EtapaProduccion,
			Parametro:       res.Parametro,
			UnidadMedida:    res.UnidadMedida,
			Valor:           res.Valor,
			Valido:          res.Valido,
			SinRango:        res.SinRango,
		}
		if res.Rango != nil {
			item.Rango = &RangeDTO{Min: res.Rango.Min, Max: res.Rango.Max}
		}
		out.Resultados = append(out.Resultados, item)
	}
	return out
}

// ConsumptionDTO registro de consumo confirmado.
type ConsumptionDTO struct {
	ID                 string          `json:"id"`
	LoteFabricacionID  string          `json:"loteFabricacionId"`
	MateriaPrimaID     string          `json:"materiaPrimaId"`
	LoteMateriaPrimaID *string         `json:"loteMateriaPrimaId,omitempty"`
	CantidadConsumida  decimal.Decimal `json:"cantidadConsumida"`
	UnidadMedida       string          `json:"unidadMedida"`
	EtapaProduccion    string          `json:"etapaProduccion,omitempty"`
	FechaRegistro      time.Time       `json:"fechaRegistro"`
	RegistradoPor      string          `json:"registradoPor,omitempty"`
}

// FromConsumption convierte la entidad a su representación HTTP.
func FromConsumption(c *entity.ConsumptionRecord) ConsumptionDTO {
	return ConsumptionDTO{
		ID:                 c.ID,
		LoteFabricacionID:  c.LoteFabricacionID,
		MateriaPrimaID:     c.MateriaPrimaID,
		LoteMateriaPrimaID: c.LoteMateriaPrimaID,
		CantidadConsumida:  c.CantidadConsumida,
		UnidadMedida:       c.UnidadMedida,
		EtapaProduccion:    c.EtapaProduccion,
		FechaRegistro:      c.FechaRegistro,
		RegistradoPor:      c.RegistradoPor,
	}
}

// LotResponse representación de un lote de fabricación.
type LotResponse struct {
	ID                  string           `json:"id"`
	OrdenProduccionID   string           `json:"ordenProduccionId"`
	CodigoLote          string           `json:"codigoLote"`
	Estado              string           `json:"estado"`
	VolumenObtenido     *decimal.Decimal `json:"volumenObtenido,omitempty"`
	RendimientoReal     *decimal.Decimal `json:"rendimientoReal,omitempty"`
	CalificacionCalidad string           `json:"calificacionCalidad,omitempty"`
	FechaInicio         *time.Time       `json:"fechaInicio,omitempty"`
	FechaFinalizacion   *time.Time       `json:"fechaFinalizacion,omitempty"`
}

// FromLot convierte la entidad a su representación HTTP.
func FromLot(l *entity.ManufacturingLot) LotResponse {
	return LotResponse{
		ID:                  l.ID,
		OrdenProduccionID:   l.OrdenProduccionID,
		CodigoLote:          l.CodigoLote,
		Estado:              l.Estado.String(),
		VolumenObtenido:     l.VolumenObtenido,
		RendimientoReal:     l.RendimientoReal,
		CalificacionCalidad: l.CalificacionCalidad,
		FechaInicio:         l.FechaInicio,
		FechaFinalizacion:   l.FechaFinalizacion,
	}
}

// FinishedLotResponse representación de un lote de producto terminado.
type FinishedLotResponse struct {
	ID                string          `json:"id"`
	LoteFabricacionID string          `json:"loteFabricacionId"`
	Codigo            string          `json:"codigo"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	Unidad            string          `json:"unidad"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// FromFinishedLot convierte la entidad a su representación HTTP.
func FromFinishedLot(l *entity.FinishedLot) FinishedLotResponse {
	return FinishedLotResponse{
		ID:                l.ID,
		LoteFabricacionID: l.LoteFabricacionID,
		Codigo:            l.Codigo,
		Cantidad:          l.Cantidad,
		Unidad:            l.Unidad,
		CreatedAt:         l.CreatedAt,
	}
}

// FinalizedLotResponse respuesta de la finalización: el lote cerrado junto al
// lote de producto terminado que generó, cuyo ID alimenta la consulta de
// trazabilidad inversa.
type FinalizedLotResponse struct {
	Lote              LotResponse         `json:"lote"`
	ProductoTerminado FinishedLotResponse `json:"productoTerminado"`
}

// TraceEventDTO evento del historial cronológico de un lote.
type TraceEventDTO struct {
	Fecha       time.Time `json:"fecha"`
	Tipo        string    `json:"tipo"`
	Descripcion string    `json:"descripcion"`
}

// TraceabilityDTO trazabilidad directa de un lote de fabricación.
type TraceabilityDTO struct {
	LoteFabricacionID string           `json:"loteFabricacionId"`
	CodigoLote        string           `json:"codigoLote"`
	Consumos          []ConsumptionDTO `json:"consumos"`
	Eventos           []TraceEventDTO  `json:"eventos"`
}

// ReverseTraceEntryDTO una materia prima que contribuyó al producto terminado.
type ReverseTraceEntryDTO struct {
	MateriaPrimaID     string          `json:"materiaPrimaId"`
	Nombre             string          `json:"nombre,omitempty"`
	LoteMateriaPrimaID *string         `json:"loteMateriaPrimaId,omitempty"`
	CodigoLoteMateria  string          `json:"codigoLoteMateria,omitempty"`
	CantidadConsumida  decimal.Decimal `json:"cantidadConsumida"`
	UnidadMedida       string          `json:"unidadMedida"`
	EtapaProduccion    string          `json:"etapaProduccion,omitempty"`
	FechaRegistro      time.Time       `json:"fechaRegistro"`
}

// ReverseTraceabilityDTO trazabilidad inversa desde un lote de producto terminado.
type ReverseTraceabilityDTO struct {
	LoteProductoTerminadoID string                 `json:"loteProductoTerminadoId"`
	CodigoProductoTerminado string                 `json:"codigoProductoTerminado"`
	LoteFabricacionID       string                 `json:"loteFabricacionId"`
	CodigoLoteFabricacion   string                 `json:"codigoLoteFabricacion"`
	MateriasPrimas          []ReverseTraceEntryDTO `json:"materiasPrimas"`
}

// RecipeResponse receta con ingredientes y etapas (solo lectura).
type RecipeResponse struct {
	ID                  string                `json:"id"`
	Nombre              string                `json:"nombre"`
	Estilo              string                `json:"estilo"`
	VolumenLoteObjetivo decimal.Decimal       `json:"volumenLoteObjetivo"`
	UnidadMedida        string                `json:"unidadMedida"`
	Version             int                   `json:"version"`
	Activa              bool                  `json:"activa"`
	Ingredientes        []RecipeIngredientDTO `json:"ingredientes"`
	Etapas              []RecipeStageDTO      `json:"etapas"`
}

// RecipeIngredientDTO ingrediente de la receta.
type RecipeIngredientDTO struct {
	MateriaPrimaID  string          `json:"materiaPrimaId"`
	EtapaProduccion string          `json:"etapaProduccion"`
	CantidadPorLote decimal.Decimal `json:"cantidadPorLote"`
	UnidadMedida    string          `json:"unidadMedida"`
	Orden           int             `json:"orden"`
	TiempoAdicion   *int            `json:"tiempoAdicion,omitempty"`
	UnidadTiempo    string          `json:"unidadTiempo,omitempty"`
}

// RecipeStageDTO etapa de la receta con su duración esperada.
type RecipeStageDTO struct {
	Etapa         string          `json:"etapa"`
	DuracionHoras decimal.Decimal `json:"duracionHoras"`
	Orden         int             `json:"orden"`
	EsPreparacion bool            `json:"esPreparacion"`
}

// FromRecipe convierte la entidad a su representación HTTP.
func FromRecipe(r *entity.Recipe) RecipeResponse {
	out := RecipeResponse{
		ID:                  r.ID,
		Nombre:              r.Nombre,
		Estilo:              r.Estilo,
		VolumenLoteObjetivo: r.VolumenLoteObjetivo,
		UnidadMedida:        r.UnidadVolumen,
		Version:             r.Version,
		Activa:              r.Activa,
		Ingredientes:        make([]RecipeIngredientDTO, 0, len(r.Ingredientes)),
		Etapas:              make([]RecipeStageDTO, 0, len(r.Etapas)),
	}
	for _, i := range r.Ingredientes {
		out.Ingredientes = append(out.Ingredientes, RecipeIngredientDTO{
			MateriaPrimaID:  i.MateriaPrimaID,
			EtapaProduccion: i.Etapa,
			CantidadPorLote: i.CantidadPorLote,
			UnidadMedida:    i.Unidad,
			Orden:           i.Orden,
			TiempoAdicion:   i.TiempoAdicion,
			UnidadTiempo:    i.UnidadTiempo,
		})
	}
	for _, e := range r.Etapas {
		out.Etapas = append(out.Etapas, RecipeStageDTO{
			Etapa:         e.Etapa,
			DuracionHoras: e.DuracionHoras,
			Orden:         e.Orden,
			EsPreparacion: e.EsPreparacion,
		})
	}
	return out
}

// RawMaterialDTO materia prima con su stock y bandera de stock bajo.
type RawMaterialDTO struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	UnidadMedida string          `json:"unidadMedida"`
	StockActual  decimal.Decimal `json:"stockActual"`
	StockMinimo  decimal.Decimal `json:"stockMinimo"`
	BajoMinimo   bool            `json:"bajoMinimo"`
}

// FromRawMaterial convierte la entidad a su representación HTTP.
func FromRawMaterial(m *entity.RawMaterial) RawMaterialDTO {
	return RawMaterialDTO{
		ID:           m.ID,
		Nombre:       m.Nombre,
		UnidadMedida: m.UnidadMedida,
		StockActual:  m.StockActual,
		StockMinimo:  m.StockMinimo,
		BajoMinimo:   m.BajoStockMinimo(),
	}
}
