package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/application/planning"
	"github.com/cerveceria/produccion-api/internal/application/production"
)

// OrderHandler maneja las peticiones HTTP de órdenes de producción y planificación.
type OrderHandler struct {
	ordenes    *production.OrderUseCase
	verificar  *planning.VerifyInventoryUseCase
	planificar *planning.PlanOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	ordenes *production.OrderUseCase,
	verificar *planning.VerifyInventoryUseCase,
	planificar *planning.PlanOrderUseCase,
) *OrderHandler {
	return &OrderHandler{ordenes: ordenes, verificar: verificar, planificar: planificar}
}

// Create godoc
// @Summary      Crear orden de producción
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "recetaId, volumenProgramado, fechaProgramada"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	orden, err := h.ordenes.Create(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMsg(dto.FromOrder(orden), "orden creada"))
}

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         ordenes
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/ordenes [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	ordenes, err := h.ordenes.List(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(ordenes))
	for i := range ordenes {
		out = append(out, dto.FromOrder(&ordenes[i]))
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         ordenes
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	orden, err := h.ordenes.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OK(dto.FromOrder(orden)))
}

// Transition godoc
// @Summary      Cambiar estado de la orden
// @Description  Aplica una transición del ciclo de vida con compare-and-swap;
//	una transición ilegal devuelve 422 y un conflicto concurrente 409.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.TransitionRequest  true  "nuevoEstado, fechas opcionales, notas"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/estado [patch]
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if !parseBody(c, &in) {
		return nil
	}
	orden, err := h.ordenes.Transition(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OKMsg(dto.FromOrder(orden), "estado actualizado"))
}

// VerifyInventory godoc
// @Summary      Verificar inventario para una receta y volumen
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyInventoryRequest  true  "recetaId, volumenProgramado"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes/verificar-inventario [post]
func (h *OrderHandler) VerifyInventory(c *fiber.Ctx) error {
	var in dto.VerifyInventoryRequest
	if !parseBody(c, &in) {
		return nil
	}
	report, err := h.verificar.CheckAvailability(c.Context(), in.RecetaID, in.VolumenProgramado)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OK(dto.FromAvailabilityReport(report)))
}

// Plan godoc
// @Summary      Planificar una orden (simulación)
// @Description  Reporte consultivo de disponibilidad, tiempos y requerimientos
//	de material. No muta stock ni crea la orden.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanRequest  true  "recetaId, volumenProgramado, fechaProgramada opcional"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes/planificar [post]
func (h *OrderHandler) Plan(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if !parseBody(c, &in) {
		return nil
	}
	report, err := h.planificar.Plan(c.Context(), in.RecetaID, in.VolumenProgramado, in.FechaProgramada)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OK(report))
}

// ListLotes godoc
// @Summary      Listar lotes de fabricación de una orden
// @Tags         ordenes
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/lotes [get]
func (h *OrderHandler) ListLotes(c *fiber.Ctx) error {
	lotes, err := h.ordenes.ListLotes(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lotes))
	for i := range lotes {
		out = append(out, dto.FromLot(&lotes[i]))
	}
	return c.JSON(dto.OK(out))
}
