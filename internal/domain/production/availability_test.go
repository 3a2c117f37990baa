package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/production"
)

func recetaIPA() *entity.Recipe {
	return &entity.Recipe{
		ID:                  "receta-ipa",
		Nombre:              "IPA Clásica",
		VolumenLoteObjetivo: decimal.NewFromInt(100),
		UnidadVolumen:       "litros",
		Ingredientes: []entity.RecipeIngredient{
			{MateriaPrimaID: "malta", Etapa: "Maceracion", CantidadPorLote: decimal.NewFromInt(10), Unidad: "kg", Orden: 1},
			{MateriaPrimaID: "lupulo", Etapa: "Coccion", CantidadPorLote: decimal.NewFromFloat(0.4), Unidad: "kg", Orden: 2},
		},
	}
}

func TestComputeAvailability_EscalaYDeficit(t *testing.T) {
	// Receta para 100 L con 10 kg de malta; orden de 50 L con 3 kg en stock:
	// requerida 5 kg, déficit 2 kg.
	stocks := map[string]*entity.RawMaterial{
		"malta":  {ID: "malta", Nombre: "Malta Pilsen", StockActual: decimal.NewFromInt(3)},
		"lupulo": {ID: "lupulo", Nombre: "Lúpulo Cascade", StockActual: decimal.NewFromInt(5)},
	}

	report, err := production.ComputeAvailability(recetaIPA(), decimal.NewFromInt(50), stocks)
	require.NoError(t, err)

	assert.False(t, report.EsValida)
	assert.True(t, report.FactorEscala.Equal(decimal.NewFromFloat(0.5)))
	require.Len(t, report.Ingredientes, 2)

	malta := report.Ingredientes[0]
	assert.Equal(t, "malta", malta.MateriaPrimaID)
	assert.True(t, malta.CantidadRequerida.Equal(decimal.NewFromInt(5)), "requerida %s", malta.CantidadRequerida)
	assert.True(t, malta.Deficit.Equal(decimal.NewFromInt(2)), "déficit %s", malta.Deficit)
	assert.False(t, malta.Disponible)

	lupulo := report.Ingredientes[1]
	assert.True(t, lupulo.CantidadRequerida.Equal(decimal.NewFromFloat(0.2)))
	assert.True(t, lupulo.Deficit.IsZero())
	assert.True(t, lupulo.Disponible)

	assert.Equal(t, 2, report.Resumen.TotalMateriales)
	assert.Equal(t, 1, report.Resumen.MaterialesDisponibles)
	assert.Equal(t, 1, report.Resumen.MaterialesFaltantes)
	assert.Equal(t, 50, report.Resumen.PorcentajeDisponible)
}

func TestComputeAvailability_StockSobranteNoGeneraDeficitNegativo(t *testing.T) {
	stocks := map[string]*entity.RawMaterial{
		"malta":  {ID: "malta", StockActual: decimal.NewFromInt(500)},
		"lupulo": {ID: "lupulo", StockActual: decimal.NewFromInt(500)},
	}

	report, err := production.ComputeAvailability(recetaIPA(), decimal.NewFromInt(50), stocks)
	require.NoError(t, err)

	assert.True(t, report.EsValida)
	for _, ing := range report.Ingredientes {
		assert.True(t, ing.Deficit.IsZero(), "ingrediente %s", ing.MateriaPrimaID)
	}
	assert.Equal(t, 100, report.Resumen.PorcentajeDisponible)
}

func TestComputeAvailability_MateriaAusenteCuentaComoStockCero(t *testing.T) {
	report, err := production.ComputeAvailability(recetaIPA(), decimal.NewFromInt(100), map[string]*entity.RawMaterial{})
	require.NoError(t, err)

	assert.False(t, report.EsValida)
	assert.True(t, report.Ingredientes[0].Deficit.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 0, report.Resumen.PorcentajeDisponible)
}

func TestComputeAvailability_RecetaSinIngredientes(t *testing.T) {
	receta := recetaIPA()
	receta.Ingredientes = nil

	_, err := production.ComputeAvailability(receta, decimal.NewFromInt(50), nil)
	var vacia *domain.EmptyRecipeError
	require.ErrorAs(t, err, &vacia)
	assert.Equal(t, "receta-ipa", vacia.RecetaID)
}

func TestComputeAvailability_RecetaConVolumenObjetivoCero(t *testing.T) {
	receta := recetaIPA()
	receta.VolumenLoteObjetivo = decimal.Zero

	_, err := production.ComputeAvailability(receta, decimal.NewFromInt(50), nil)
	var invalida *domain.InvalidRecipeError
	require.ErrorAs(t, err, &invalida)
}

func TestComputeAvailability_VolumenSolicitadoInvalido(t *testing.T) {
	_, err := production.ComputeAvailability(recetaIPA(), decimal.Zero, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = production.ComputeAvailability(recetaIPA(), decimal.NewFromInt(-10), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
