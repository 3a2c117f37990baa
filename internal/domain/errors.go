package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InvalidTransitionError indica una transición de estado no permitida por la
// tabla de transiciones de la orden o del lote.
type InvalidTransitionError struct {
	Desde string
	Hacia string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: %s → %s", e.Desde, e.Hacia)
}

// OutOfRangeError indica un valor de parámetro de proceso fuera del rango configurado.
type OutOfRangeError struct {
	Parametro string
	Valor     float64
	Min       float64
	Max       float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("parámetro %s fuera de rango: %.4g no está en [%.4g, %.4g]", e.Parametro, e.Valor, e.Min, e.Max)
}

// EmptyRecipeError indica una receta sin ingredientes; no se puede verificar inventario.
type EmptyRecipeError struct {
	RecetaID string
}

func (e *EmptyRecipeError) Error() string {
	return fmt.Sprintf("la receta %s no tiene ingredientes", e.RecetaID)
}

// InvalidRecipeError indica una receta con datos inconsistentes (p. ej. volumen objetivo cero).
type InvalidRecipeError struct {
	RecetaID string
	Motivo   string
}

func (e *InvalidRecipeError) Error() string {
	return fmt.Sprintf("receta %s inválida: %s", e.RecetaID, e.Motivo)
}
