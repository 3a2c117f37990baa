package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/application/production"
)

// ParameterHandler maneja las peticiones HTTP de parámetros de proceso.
type ParameterHandler struct {
	uc *production.ParameterUseCase
}

// NewParameterHandler construye el handler.
func NewParameterHandler(uc *production.ParameterUseCase) *ParameterHandler {
	return &ParameterHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar lectura de parámetro de proceso
// @Description  Guarda la lectura con enRango calculado contra los rangos
//	configurados. Un valor fuera de rango se registra como hallazgo.
// @Tags         parametros
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterParameterRequest  true  "loteFabricacionId, etapaProduccion, parametro, valor, unidadMedida"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parametros-proceso [post]
func (h *ParameterHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterParameterRequest
	if !parseBody(c, &in) {
		return nil
	}
	lectura, err := h.uc.RegisterReading(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMsg(dto.FromReading(lectura), "lectura registrada"))
}

// Update godoc
// @Summary      Corregir lectura de parámetro
// @Tags         parametros
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la lectura"
// @Param        body  body  dto.RegisterParameterRequest  true  "valores corregidos"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parametros-proceso/{id} [put]
func (h *ParameterHandler) Update(c *fiber.Ctx) error {
	var in dto.RegisterParameterRequest
	if !parseBody(c, &in) {
		return nil
	}
	lectura, err := h.uc.UpdateReading(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OKMsg(dto.FromReading(lectura), "lectura corregida"))
}

// ListByLote godoc
// @Summary      Listar lecturas de un lote de fabricación
// @Tags         parametros
// @Produce      json
// @Param        loteId  path  string  true  "ID del lote de fabricación"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parametros-proceso/lote/{loteId} [get]
func (h *ParameterHandler) ListByLote(c *fiber.Ctx) error {
	lecturas, err := h.uc.ListByLote(c.Context(), c.Params("loteId"))
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.ParameterReadingDTO, 0, len(lecturas))
	for i := range lecturas {
		out = append(out, dto.FromReading(&lecturas[i]))
	}
	return c.JSON(dto.OK(out))
}

// ValidateBatch godoc
// @Summary      Validar un conjunto de parámetros
// @Description  Valida cada parámetro contra su rango y devuelve la lista
//	completa con conteos; los valores fuera de rango son hallazgos, no errores.
// @Tags         parametros
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateBatchRequest  true  "parametros"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/parametros-proceso/validate-batch [post]
func (h *ParameterHandler) ValidateBatch(c *fiber.Ctx) error {
	var in dto.ValidateBatchRequest
	if !parseBody(c, &in) {
		return nil
	}
	return c.JSON(dto.OK(h.uc.ValidateBatch(c.Context(), in)))
}
