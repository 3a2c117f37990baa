package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	appprod "github.com/cerveceria/produccion-api/internal/application/production"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/params"
	"github.com/cerveceria/produccion-api/internal/infrastructure/memory"
)

// fixture entorno de prueba completo sobre el almacén en memoria, con los
// mismos contratos de repositorio que la implementación de PostgreSQL.
type fixture struct {
	store    *memory.Store
	ordenes  *appprod.OrderUseCase
	consumos *appprod.ConsumptionUseCase
	lecturas *appprod.ParameterUseCase
	traza    *appprod.TraceabilityUseCase

	ordenRepo     *memory.OrderRepository
	loteRepo      *memory.ManufacturingLotRepository
	materiaRepo   *memory.RawMaterialRepository
	terminadoRepo *memory.FinishedLotRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)

	recetaRepo := memory.NewRecipeRepository(store)
	materiaRepo := memory.NewRawMaterialRepository(store)
	loteMateriaRepo := memory.NewRawMaterialLotRepository(store)
	ordenRepo := memory.NewOrderRepository(store)
	loteRepo := memory.NewManufacturingLotRepository(store)
	terminadoRepo := memory.NewFinishedLotRepository(store)
	lecturaRepo := memory.NewParameterReadingRepository(store)
	consumoRepo := memory.NewConsumptionRepository(store)

	cfg := params.DefaultConfig()
	require.NoError(t, cfg.Validate())

	return &fixture{
		store:    store,
		ordenes:  appprod.NewOrderUseCase(tx, ordenRepo, recetaRepo, loteRepo),
		consumos: appprod.NewConsumptionUseCase(tx),
		lecturas: appprod.NewParameterUseCase(lecturaRepo, loteRepo, ordenRepo, params.NewValidator(cfg)),
		traza: appprod.NewTraceabilityUseCase(
			consumoRepo, loteRepo, terminadoRepo, materiaRepo, loteMateriaRepo, lecturaRepo,
		),
		ordenRepo:     ordenRepo,
		loteRepo:      loteRepo,
		materiaRepo:   materiaRepo,
		terminadoRepo: terminadoRepo,
	}
}

// seedReceta carga la receta de referencia: 100 L con 10 kg de malta y 0.4 kg
// de lúpulo por lote.
func (f *fixture) seedReceta() {
	f.store.SeedReceta(entity.Recipe{
		ID:                  "receta-ipa",
		Nombre:              "IPA Clásica",
		Estilo:              "IPA",
		VolumenLoteObjetivo: decimal.NewFromInt(100),
		UnidadVolumen:       "litros",
		Activa:              true,
		Ingredientes: []entity.RecipeIngredient{
			{MateriaPrimaID: "malta", Etapa: "Maceracion", CantidadPorLote: decimal.NewFromInt(10), Unidad: "kg", Orden: 1},
			{MateriaPrimaID: "lupulo", Etapa: "Coccion", CantidadPorLote: decimal.NewFromFloat(0.4), Unidad: "kg", Orden: 2},
		},
		Etapas: []entity.RecipeStage{
			{Etapa: "Maceracion", DuracionHoras: decimal.NewFromInt(2), Orden: 1, EsPreparacion: true},
			{Etapa: "Coccion", DuracionHoras: decimal.NewFromInt(1), Orden: 2},
			{Etapa: "Fermentacion", DuracionHoras: decimal.NewFromInt(240), Orden: 3},
		},
	})
}

func (f *fixture) seedMateria(id, nombre string, stock int64) {
	f.store.SeedMateriaPrima(entity.RawMaterial{
		ID:           id,
		Nombre:       nombre,
		UnidadMedida: "kg",
		StockActual:  decimal.NewFromInt(stock),
		StockMinimo:  decimal.NewFromInt(1),
	})
}

// crearOrden crea una orden de 50 L en estado Programada.
func (f *fixture) crearOrden(t *testing.T) *entity.ProductionOrder {
	t.Helper()
	orden, err := f.ordenes.Create(context.Background(), dto.CreateOrderRequest{
		RecetaID:          "receta-ipa",
		VolumenProgramado: decimal.NewFromInt(50),
		FechaProgramada:   time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return orden
}

// transitar aplica una transición y falla el test si no es posible.
func (f *fixture) transitar(t *testing.T, ordenID string, estado entity.OrderStatus) *entity.ProductionOrder {
	t.Helper()
	orden, err := f.ordenes.Transition(context.Background(), ordenID, dto.TransitionRequest{
		NuevoEstado: estado.String(),
	})
	require.NoError(t, err)
	return orden
}

// ordenEnProceso lleva una orden nueva hasta En Proceso y devuelve su lote activo.
func (f *fixture) ordenEnProceso(t *testing.T) (*entity.ProductionOrder, *entity.ManufacturingLot) {
	t.Helper()
	orden := f.crearOrden(t)
	f.transitar(t, orden.ID, entity.OrderStatusEnPreparacion)
	orden = f.transitar(t, orden.ID, entity.OrderStatusEnProceso)

	lote, err := f.loteRepo.GetActivoPorOrden(orden.ID)
	require.NoError(t, err)
	require.NotNil(t, lote, "la transición a En Preparacion debe crear el lote")
	return orden, lote
}
