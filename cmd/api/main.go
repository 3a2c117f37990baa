package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cerveceria/produccion-api/internal/application/planning"
	"github.com/cerveceria/produccion-api/internal/application/production"
	"github.com/cerveceria/produccion-api/internal/domain/params"
	"github.com/cerveceria/produccion-api/internal/infrastructure/postgres"
	httpRouter "github.com/cerveceria/produccion-api/internal/interfaces/http"
	"github.com/cerveceria/produccion-api/pkg/config"
	"github.com/cerveceria/produccion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Los rangos de parámetros se validan al arrancar; una configuración
	// inconsistente no debe llegar a producción.
	rangos := params.DefaultConfig()
	if err := rangos.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración de rangos de parámetros")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	recetaRepo := postgres.NewRecipeRepository(pool)
	materiaRepo := postgres.NewRawMaterialRepository(pool)
	ordenRepo := postgres.NewOrderRepository(pool)
	loteRepo := postgres.NewManufacturingLotRepository(pool)
	terminadoRepo := postgres.NewFinishedLotRepository(pool)
	lecturaRepo := postgres.NewParameterReadingRepository(pool)
	consumoRepo := postgres.NewConsumptionRepository(pool)
	loteMateriaRepo := postgres.NewRawMaterialLotRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	verifyUC := planning.NewVerifyInventoryUseCase(recetaRepo, materiaRepo)
	planUC := planning.NewPlanOrderUseCase(verifyUC, recetaRepo)
	orderUC := production.NewOrderUseCase(txRunner, ordenRepo, recetaRepo, loteRepo)
	parameterUC := production.NewParameterUseCase(lecturaRepo, loteRepo, ordenRepo, params.NewValidator(rangos))
	consumptionUC := production.NewConsumptionUseCase(txRunner)
	traceUC := production.NewTraceabilityUseCase(
		consumoRepo, loteRepo, terminadoRepo, materiaRepo, loteMateriaRepo, lecturaRepo,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Producción API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:       orderUC,
		ParameterUC:   parameterUC,
		ConsumptionUC: consumptionUC,
		TraceUC:       traceUC,
		VerifyUC:      verifyUC,
		PlanUC:        planUC,
		RecipeRepo:    recetaRepo,
		MaterialRepo:  materiaRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
