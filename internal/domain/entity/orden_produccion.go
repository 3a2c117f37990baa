package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de producción.
type OrderStatus string

const (
	OrderStatusProgramada    OrderStatus = "Programada"
	OrderStatusEnPreparacion OrderStatus = "En Preparacion"
	OrderStatusEnProceso     OrderStatus = "En Proceso"
	OrderStatusPausada       OrderStatus = "Pausada"
	OrderStatusFinalizada    OrderStatus = "Finalizada"
	OrderStatusCancelada     OrderStatus = "Cancelada"
)

// IsValid verifica que el estado pertenezca al enumerado.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProgramada, OrderStatusEnPreparacion, OrderStatusEnProceso,
		OrderStatusPausada, OrderStatusFinalizada, OrderStatusCancelada:
		return true
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// EsTerminal indica si el estado no admite más transiciones.
func (s OrderStatus) EsTerminal() bool {
	return s == OrderStatusFinalizada || s == OrderStatusCancelada
}

// CanTransitionTo implementa la tabla de transiciones de la orden.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusProgramada:
		return target == OrderStatusEnPreparacion || target == OrderStatusCancelada
	case OrderStatusEnPreparacion:
		return target == OrderStatusEnProceso || target == OrderStatusPausada || target == OrderStatusCancelada
	case OrderStatusEnProceso:
		return target == OrderStatusPausada || target == OrderStatusFinalizada || target == OrderStatusCancelada
	case OrderStatusPausada:
		return target == OrderStatusEnProceso || target == OrderStatusCancelada
	case OrderStatusFinalizada, OrderStatusCancelada:
		return false // estados terminales
	}
	return false
}

// PermiteRegistroParametros indica si en este estado se aceptan lecturas de
// parámetros de proceso. Antes de preparar el lote no hay nada que medir.
func (s OrderStatus) PermiteRegistroParametros() bool {
	return s != OrderStatusProgramada && s != OrderStatusEnPreparacion
}

// ProductionOrder orden de producción: fabricar un volumen con una receta.
// Nace en estado Programada y solo muta a través del ciclo de vida.
type ProductionOrder struct {
	ID                string
	RecetaID          string
	FechaProgramada   time.Time
	VolumenProgramado decimal.Decimal
	UnidadVolumen     string
	Estado            OrderStatus
	ResponsableID     string
	FechaInicio       *time.Time
	FechaFinalizacion *time.Time
	Notas             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
