package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cerveceria/produccion-api/internal/application/planning"
	"github.com/cerveceria/produccion-api/internal/application/production"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC       *production.OrderUseCase
	ParameterUC   *production.ParameterUseCase
	ConsumptionUC *production.ConsumptionUseCase
	TraceUC       *production.TraceabilityUseCase
	VerifyUC      *planning.VerifyInventoryUseCase
	PlanUC        *planning.PlanOrderUseCase
	RecipeRepo    repository.RecipeRepository
	MaterialRepo  repository.RawMaterialRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Órdenes de producción y planificación
	ordenes := api.Group("/ordenes")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.VerifyUC, deps.PlanUC)
	ordenes.Post("/", orderHandler.Create)
	ordenes.Get("/", orderHandler.List)
	ordenes.Post("/planificar", orderHandler.Plan)
	ordenes.Post("/verificar-inventario", orderHandler.VerifyInventory)
	ordenes.Get("/:id", orderHandler.GetByID)
	ordenes.Patch("/:id/estado", orderHandler.Transition)
	ordenes.Get("/:id/lotes", orderHandler.ListLotes)

	// Lotes de fabricación: consumos, cierre y trazabilidad
	lotes := api.Group("/lotes-fabricacion")
	lotHandler := NewLotHandler(deps.ConsumptionUC, deps.TraceUC)
	lotes.Post("/:id/consumo", lotHandler.RecordConsumption)
	lotes.Post("/:id/finalizar", lotHandler.Finalize)
	lotes.Get("/:id/trazabilidad", lotHandler.Traceability)
	lotes.Get("/:id/trazabilidad-inversa", lotHandler.ReverseTraceability)

	// Parámetros de proceso
	parametros := api.Group("/parametros-proceso")
	parameterHandler := NewParameterHandler(deps.ParameterUC)
	parametros.Post("/", parameterHandler.Register)
	parametros.Post("/validate-batch", parameterHandler.ValidateBatch)
	parametros.Put("/:id", parameterHandler.Update)
	parametros.Get("/lote/:loteId", parameterHandler.ListByLote)

	// Catálogo (recetas y materias primas)
	catalogHandler := NewCatalogHandler(deps.RecipeRepo, deps.MaterialRepo)
	recetas := api.Group("/recetas")
	recetas.Get("/", catalogHandler.ListRecipes)
	recetas.Get("/:id", catalogHandler.GetRecipe)
	api.Get("/materias-primas", catalogHandler.ListRawMaterials)
}
