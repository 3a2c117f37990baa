package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus estado de un lote de fabricación.
type LotStatus string

const (
	LotStatusEnPreparacion LotStatus = "EnPreparacion"
	LotStatusEnProceso     LotStatus = "EnProceso"
	LotStatusFinalizado    LotStatus = "Finalizado"
	LotStatusCancelado     LotStatus = "Cancelado"
)

// IsValid verifica que el estado pertenezca al enumerado.
func (s LotStatus) IsValid() bool {
	switch s {
	case LotStatusEnPreparacion, LotStatusEnProceso, LotStatusFinalizado, LotStatusCancelado:
		return true
	}
	return false
}

func (s LotStatus) String() string { return string(s) }

// CanTransitionTo tabla de transiciones del lote. Los lotes cerrados se
// conservan para trazabilidad, nunca se reabren.
func (s LotStatus) CanTransitionTo(target LotStatus) bool {
	switch s {
	case LotStatusEnPreparacion:
		return target == LotStatusEnProceso || target == LotStatusCancelado
	case LotStatusEnProceso:
		return target == LotStatusFinalizado || target == LotStatusCancelado
	case LotStatusFinalizado, LotStatusCancelado:
		return false
	}
	return false
}

// ManufacturingLot lote de fabricación: la instancia física producida para una
// orden. Una orden tiene a lo sumo un lote activo a la vez.
type ManufacturingLot struct {
	ID                   string
	OrdenProduccionID    string
	CodigoLote           string
	Estado               LotStatus
	VolumenObtenido      *decimal.Decimal
	RendimientoReal      *decimal.Decimal // porcentaje VolumenObtenido/VolumenProgramado
	CalificacionCalidad  string
	FechaInicio          *time.Time
	FechaFinalizacion    *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NuevoCodigoLote genera el código de lote con fecha y sufijo secuencial.
// Formato: LOT-20250118-0007.
func NuevoCodigoLote(fecha time.Time, secuencia int) string {
	return fmt.Sprintf("LOT-%s-%04d", fecha.Format("20060102"), secuencia)
}

// FinishedLot lote de producto terminado, referenciado al lote de fabricación
// que lo originó. Es el ancla de la trazabilidad inversa.
type FinishedLot struct {
	ID                string
	LoteFabricacionID string
	Codigo            string
	Cantidad          decimal.Decimal
	Unidad            string
	CreatedAt         time.Time
}
