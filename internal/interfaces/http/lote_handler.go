package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/application/production"
)

// LotHandler maneja las peticiones HTTP de lotes de fabricación: consumos,
// cierre y trazabilidad.
type LotHandler struct {
	consumos     *production.ConsumptionUseCase
	trazabilidad *production.TraceabilityUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(consumos *production.ConsumptionUseCase, trazabilidad *production.TraceabilityUseCase) *LotHandler {
	return &LotHandler{consumos: consumos, trazabilidad: trazabilidad}
}

// RecordConsumption godoc
// @Summary      Registrar consumo de materia prima
// @Description  Decrementa el stock de forma atómica; 409 si el stock es insuficiente.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote de fabricación"
// @Param        body  body  dto.ConsumptionRequest  true  "materiaPrimaId, cantidadConsumida, unidadMedida"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lotes-fabricacion/{id}/consumo [post]
func (h *LotHandler) RecordConsumption(c *fiber.Ctx) error {
	var in dto.ConsumptionRequest
	if !parseBody(c, &in) {
		return nil
	}
	registro, err := h.consumos.RecordConsumption(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMsg(dto.FromConsumption(registro), "consumo registrado"))
}

// Finalize godoc
// @Summary      Finalizar lote de fabricación
// @Description  Cierra el lote con su cantidad final, calcula el rendimiento
//	real y finaliza la orden en la misma transacción. La respuesta incluye el
//	lote de producto terminado, cuyo ID consulta la trazabilidad inversa.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote de fabricación"
// @Param        body  body  dto.FinalizeLotRequest  true  "cantidadFinal, rendimientoReal y calificacionCalidad opcionales"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/lotes-fabricacion/{id}/finalizar [post]
func (h *LotHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeLotRequest
	if !parseBody(c, &in) {
		return nil
	}
	lote, terminado, err := h.consumos.FinalizeLot(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	out := dto.FinalizedLotResponse{
		Lote:              dto.FromLot(lote),
		ProductoTerminado: dto.FromFinishedLot(terminado),
	}
	return c.JSON(dto.OKMsg(out, "lote finalizado"))
}

// Traceability godoc
// @Summary      Trazabilidad directa del lote
// @Tags         lotes
// @Produce      json
// @Param        id   path      string  true  "ID del lote de fabricación"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes-fabricacion/{id}/trazabilidad [get]
func (h *LotHandler) Traceability(c *fiber.Ctx) error {
	out, err := h.trazabilidad.GetTraceability(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ReverseTraceability godoc
// @Summary      Trazabilidad inversa desde un producto terminado
// @Description  Responde qué lotes de materia prima contribuyeron al lote de
//	producto terminado indicado. Acepta el ID del producto terminado o el del
//	lote de fabricación que lo generó.
// @Tags         lotes
// @Produce      json
// @Param        id   path      string  true  "ID del lote de producto terminado o de su lote de fabricación"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes-fabricacion/{id}/trazabilidad-inversa [get]
func (h *LotHandler) ReverseTraceability(c *fiber.Ctx) error {
	out, err := h.trazabilidad.GetReverseTraceability(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OK(out))
}
