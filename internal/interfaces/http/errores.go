package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain"
)

// validate instancia compartida del validador de DTOs.
var validate = validator.New()

// parseBody parsea y valida el body; devuelve false si ya respondió el error.
func parseBody(c *fiber.Ctx, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", err.Error()))
		return false
	}
	return true
}

// responderError traduce los errores de dominio al contrato HTTP.
// Los fallos de concurrencia (CAS) se distinguen de la validación para que el
// cliente pueda reintentar.
func responderError(c *fiber.Ctx, err error) error {
	var transicion *domain.InvalidTransitionError
	if errors.As(err, &transicion) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Err("INVALID_TRANSITION", transicion.Error()))
	}
	var fueraDeRango *domain.OutOfRangeError
	if errors.As(err, &fueraDeRango) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("OUT_OF_RANGE", fueraDeRango.Error()))
	}
	var recetaVacia *domain.EmptyRecipeError
	if errors.As(err, &recetaVacia) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("EMPTY_RECIPE", recetaVacia.Error()))
	}
	var recetaInvalida *domain.InvalidRecipeError
	if errors.As(err, &recetaInvalida) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_RECIPE", recetaInvalida.Error()))
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", "datos inválidos"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("NOT_FOUND", "recurso no encontrado"))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("INSUFFICIENT_STOCK", "stock insuficiente"))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("CONFLICT", "conflicto con el estado actual, reintente"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("INTERNAL", err.Error()))
}
