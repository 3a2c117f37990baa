package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/ordenes.
type CreateOrderRequest struct {
	RecetaID          string          `json:"recetaId" validate:"required"`
	VolumenProgramado decimal.Decimal `json:"volumenProgramado" validate:"required"`
	UnidadMedida      string          `json:"unidadMedida,omitempty"`
	FechaProgramada   time.Time       `json:"fechaProgramada" validate:"required"`
	ResponsableID     string          `json:"responsableId,omitempty"`
	Notas             string          `json:"notas,omitempty"`
}

// TransitionRequest body para PATCH /api/ordenes/:id/estado.
type TransitionRequest struct {
	NuevoEstado       string     `json:"nuevoEstado" validate:"required"`
	FechaInicio       *time.Time `json:"fechaInicio,omitempty"`
	FechaFinalizacion *time.Time `json:"fechaFinalizacion,omitempty"`
	Notas             string     `json:"notas,omitempty"`
}

// VerifyInventoryRequest body para POST /api/ordenes/verificar-inventario.
type VerifyInventoryRequest struct {
	RecetaID          string          `json:"recetaId" validate:"required"`
	VolumenProgramado decimal.Decimal `json:"volumenProgramado" validate:"required"`
}

// PlanRequest body para POST /api/ordenes/planificar.
type PlanRequest struct {
	RecetaID          string          `json:"recetaId" validate:"required"`
	VolumenProgramado decimal.Decimal `json:"volumenProgramado" validate:"required"`
	FechaProgramada   *time.Time      `json:"fechaProgramada,omitempty"`
}

// RegisterParameterRequest body para POST /api/parametros-proceso.
type RegisterParameterRequest struct {
	LoteFabricacionID string   `json:"loteFabricacionId" validate:"required"`
	EtapaProduccion   string   `json:"etapaProduccion" validate:"required"`
	Parametro         string   `json:"parametro" validate:"required"`
	Valor             float64  `json:"valor"`
	UnidadMedida      string   `json:"unidadMedida" validate:"required"`
	Notas             string   `json:"notas,omitempty"`
}

// ParameterInput una entrada de la validación por lote.
type ParameterInput struct {
	EtapaProduccion string  `json:"etapaProduccion,omitempty"`
	Parametro       string  `json:"parametro" validate:"required"`
	Valor           float64 `json:"valor"`
	UnidadMedida    string  `json:"unidadMedida" validate:"required"`
}

// ValidateBatchRequest body para POST /api/parametros-proceso/validate-batch.
type ValidateBatchRequest struct {
	Parametros []ParameterInput `json:"parametros" validate:"required,min=1,dive"`
}

// ConsumptionRequest body para POST /api/lotes-fabricacion/:id/consumo.
type ConsumptionRequest struct {
	MateriaPrimaID     string          `json:"materiaPrimaId" validate:"required"`
	LoteMateriaPrimaID *string         `json:"loteMateriaPrimaId,omitempty"`
	CantidadConsumida  decimal.Decimal `json:"cantidadConsumida" validate:"required"`
	UnidadMedida       string          `json:"unidadMedida" validate:"required"`
	EtapaProduccion    string          `json:"etapaProduccion,omitempty"`
	RegistradoPor      string          `json:"registradoPor,omitempty"`
}

// FinalizeLotRequest body para POST /api/lotes-fabricacion/:id/finalizar.
type FinalizeLotRequest struct {
	CantidadFinal       decimal.Decimal  `json:"cantidadFinal" validate:"required"`
	RendimientoReal     *decimal.Decimal `json:"rendimientoReal,omitempty"`
	CalificacionCalidad string           `json:"calificacionCalidad,omitempty"`
}
