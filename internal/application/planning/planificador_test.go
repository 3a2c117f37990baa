package planning_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerveceria/produccion-api/internal/application/planning"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/infrastructure/memory"
)

func newPlanner(t *testing.T) (*planning.PlanOrderUseCase, *planning.VerifyInventoryUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	recetaRepo := memory.NewRecipeRepository(store)
	materiaRepo := memory.NewRawMaterialRepository(store)
	verificar := planning.NewVerifyInventoryUseCase(recetaRepo, materiaRepo)
	return planning.NewPlanOrderUseCase(verificar, recetaRepo), verificar, store
}

func seedRecetaConStock(store *memory.Store, stockMalta int64) {
	store.SeedReceta(entity.Recipe{
		ID:                  "receta-ipa",
		Nombre:              "IPA Clásica",
		VolumenLoteObjetivo: decimal.NewFromInt(100),
		UnidadVolumen:       "litros",
		Ingredientes: []entity.RecipeIngredient{
			{MateriaPrimaID: "malta", Etapa: "Maceracion", CantidadPorLote: decimal.NewFromInt(10), Unidad: "kg", Orden: 1},
		},
		Etapas: []entity.RecipeStage{
			{Etapa: "Maceracion", DuracionHoras: decimal.NewFromInt(2), Orden: 1, EsPreparacion: true},
			{Etapa: "Fermentacion", DuracionHoras: decimal.NewFromInt(240), Orden: 2},
		},
	})
	store.SeedMateriaPrima(entity.RawMaterial{
		ID:          "malta",
		Nombre:      "Malta Pilsen",
		StockActual: decimal.NewFromInt(stockMalta),
	})
}

func TestCheckAvailability_DeficitDeMalta(t *testing.T) {
	_, verificar, store := newPlanner(t)
	seedRecetaConStock(store, 3)

	report, err := verificar.CheckAvailability(context.Background(), "receta-ipa", decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.False(t, report.EsValida)
	require.Len(t, report.Ingredientes, 1)
	assert.True(t, report.Ingredientes[0].CantidadRequerida.Equal(decimal.NewFromInt(5)))
	assert.True(t, report.Ingredientes[0].Deficit.Equal(decimal.NewFromInt(2)))
}

func TestCheckAvailability_RecetaInexistente(t *testing.T) {
	_, verificar, _ := newPlanner(t)

	_, err := verificar.CheckAvailability(context.Background(), "no-existe", decimal.NewFromInt(50))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlan_ReporteCompleto(t *testing.T) {
	planificar, _, store := newPlanner(t)
	seedRecetaConStock(store, 100)
	fecha := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	report, err := planificar.Plan(context.Background(), "receta-ipa", decimal.NewFromInt(50), &fecha)
	require.NoError(t, err)

	assert.True(t, report.InventarioValido)
	assert.Equal(t, "litros", report.UnidadMedida)
	require.Len(t, report.Materiales, 1)
	assert.Equal(t, "malta", report.Materiales[0].MateriaPrimaID)
	assert.Equal(t, "Malta Pilsen", report.Materiales[0].Nombre)
	assert.True(t, report.Materiales[0].CantidadRequerida.Equal(decimal.NewFromInt(5)))
	assert.True(t, report.Materiales[0].Disponible)

	assert.True(t, report.TiempoPreparacionHoras.Equal(decimal.NewFromInt(2)))
	assert.True(t, report.TiempoProcesoHoras.Equal(decimal.NewFromInt(240)))
	assert.True(t, report.TiempoTotalHoras.Equal(decimal.NewFromInt(242)))
	assert.Equal(t, fecha, report.FechaInicioEstimada)
	assert.Equal(t, fecha.Add(242*time.Hour), report.FechaFinEstimada)
}

// El plan es consultivo: se emite aunque falte material y nunca toca el stock.
func TestPlan_ConFaltantesNoMutaStock(t *testing.T) {
	planificar, _, store := newPlanner(t)
	seedRecetaConStock(store, 3)

	report, err := planificar.Plan(context.Background(), "receta-ipa", decimal.NewFromInt(50), nil)
	require.NoError(t, err)
	assert.False(t, report.InventarioValido)
	assert.False(t, report.Materiales[0].Disponible)

	materiaRepo := memory.NewRawMaterialRepository(store)
	materia, err := materiaRepo.GetByID("malta")
	require.NoError(t, err)
	assert.True(t, materia.StockActual.Equal(decimal.NewFromInt(3)), "planificar no consume stock")
}

func TestPlan_RecetaSinIngredientes(t *testing.T) {
	planificar, _, store := newPlanner(t)
	store.SeedReceta(entity.Recipe{
		ID:                  "receta-vacia",
		VolumenLoteObjetivo: decimal.NewFromInt(100),
	})

	_, err := planificar.Plan(context.Background(), "receta-vacia", decimal.NewFromInt(50), nil)
	var vacia *domain.EmptyRecipeError
	assert.ErrorAs(t, err, &vacia)
}
