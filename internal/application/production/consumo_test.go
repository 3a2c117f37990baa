package production_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	appprod "github.com/cerveceria/produccion-api/internal/application/production"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
	"github.com/cerveceria/produccion-api/internal/infrastructure/memory"
)

func TestRecordConsumption_DecrementaStock(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	f.seedMateria("malta", "Malta Pilsen", 10)
	_, lote := f.ordenEnProceso(t)

	registro, err := f.consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
		MateriaPrimaID:    "malta",
		CantidadConsumida: decimal.NewFromInt(6),
		UnidadMedida:      "kg",
		EtapaProduccion:   "Maceracion",
		RegistradoPor:     "operador-1",
	})
	require.NoError(t, err)
	assert.Equal(t, lote.ID, registro.LoteFabricacionID)
	assert.Equal(t, "operador-1", registro.RegistradoPor)

	materia, err := f.materiaRepo.GetByID("malta")
	require.NoError(t, err)
	assert.True(t, materia.StockActual.Equal(decimal.NewFromInt(4)), "stock %s", materia.StockActual)
}

func TestRecordConsumption_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	f.seedMateria("malta", "Malta Pilsen", 5)
	_, lote := f.ordenEnProceso(t)

	_, err := f.consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
		MateriaPrimaID:    "malta",
		CantidadConsumida: decimal.NewFromInt(6),
		UnidadMedida:      "kg",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock quedó intacto y no hay registro de consumo.
	materia, err := f.materiaRepo.GetByID("malta")
	require.NoError(t, err)
	assert.True(t, materia.StockActual.Equal(decimal.NewFromInt(5)))

	traza, err := f.traza.GetTraceability(context.Background(), lote.ID)
	require.NoError(t, err)
	assert.Empty(t, traza.Consumos)
}

// Dos consumos concurrentes por 6 kg sobre 10 kg de stock: exactamente uno
// debe fallar por stock insuficiente y el stock final debe quedar en 4 kg.
func TestRecordConsumption_ConcurrenciaNoSobrevende(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	f.seedMateria("malta", "Malta Pilsen", 10)
	_, lote := f.ordenEnProceso(t)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
				MateriaPrimaID:    "malta",
				CantidadConsumida: decimal.NewFromInt(6),
				UnidadMedida:      "kg",
			})
		}(i)
	}
	wg.Wait()

	fallos := 0
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			fallos++
		}
	}
	assert.Equal(t, 1, fallos, "exactamente un consumo debe fallar")

	materia, err := f.materiaRepo.GetByID("malta")
	require.NoError(t, err)
	assert.True(t, materia.StockActual.Equal(decimal.NewFromInt(4)), "stock final %s", materia.StockActual)
}

// Si el lote de materia prima indicado no alcanza, la transacción se revierte
// completa: el stock agregado ya decrementado vuelve a su valor.
func TestRecordConsumption_LoteMateriaInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	f.seedMateria("malta", "Malta Pilsen", 100)
	f.store.SeedLoteMateriaPrima(entity.RawMaterialLot{
		ID:                 "lmp-1",
		MateriaPrimaID:     "malta",
		Codigo:             "MP-2025-001",
		CantidadDisponible: decimal.NewFromInt(2),
	})
	_, lote := f.ordenEnProceso(t)

	lmpID := "lmp-1"
	_, err := f.consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
		MateriaPrimaID:     "malta",
		LoteMateriaPrimaID: &lmpID,
		CantidadConsumida:  decimal.NewFromInt(6),
		UnidadMedida:       "kg",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	materia, err := f.materiaRepo.GetByID("malta")
	require.NoError(t, err)
	assert.True(t, materia.StockActual.Equal(decimal.NewFromInt(100)), "el stock agregado debe revertirse")
}

func TestRecordConsumption_LoteCerradoNoAdmiteConsumos(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	f.seedMateria("malta", "Malta Pilsen", 10)
	_, lote := f.ordenEnProceso(t)

	_, _, err := f.consumos.FinalizeLot(context.Background(), lote.ID, dto.FinalizeLotRequest{
		CantidadFinal: decimal.NewFromInt(48),
	})
	require.NoError(t, err)

	_, err = f.consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
		MateriaPrimaID:    "malta",
		CantidadConsumida: decimal.NewFromInt(1),
		UnidadMedida:      "kg",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// cierraLoteAntesDelConsumo ejecuta un cierre justo antes de abrir la
// transacción de consumo, simulando un FinalizeLot concurrente que gana la
// carrera contra el registro.
type cierraLoteAntesDelConsumo struct {
	*memory.TxRunner
	cerrar func()
}

func (r *cierraLoteAntesDelConsumo) RunConsumo(ctx context.Context, fn func(
	loteRepo repository.ManufacturingLotRepository,
	materiaRepo repository.RawMaterialRepository,
	loteMateriaRepo repository.RawMaterialLotRepository,
	consumoRepo repository.ConsumptionRepository,
) error) error {
	r.cerrar()
	return r.TxRunner.RunConsumo(ctx, fn)
}

func TestRecordConsumption_FinalizacionConcurrenteNoDejaConsumoHuerfano(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	f.seedMateria("malta", "Malta Pilsen", 10)
	_, lote := f.ordenEnProceso(t)

	runner := &cierraLoteAntesDelConsumo{
		TxRunner: memory.NewTxRunner(f.store),
		cerrar: func() {
			_, _, err := f.consumos.FinalizeLot(context.Background(), lote.ID, dto.FinalizeLotRequest{
				CantidadFinal: decimal.NewFromInt(48),
			})
			require.NoError(t, err)
		},
	}
	consumos := appprod.NewConsumptionUseCase(runner)

	// El lote estaba abierto al despachar el consumo, pero se cierra antes de
	// que la transacción verifique su estado.
	_, err := consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
		MateriaPrimaID:    "malta",
		CantidadConsumida: decimal.NewFromInt(1),
		UnidadMedida:      "kg",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	materia, err := f.materiaRepo.GetByID("malta")
	require.NoError(t, err)
	assert.True(t, materia.StockActual.Equal(decimal.NewFromInt(10)), "el stock no debe moverse")

	traza, err := f.traza.GetTraceability(context.Background(), lote.ID)
	require.NoError(t, err)
	assert.Empty(t, traza.Consumos)
}

func TestRecordConsumption_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	f.seedMateria("malta", "Malta Pilsen", 10)
	_, lote := f.ordenEnProceso(t)

	_, err := f.consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
		MateriaPrimaID:    "malta",
		CantidadConsumida: decimal.Zero,
		UnidadMedida:      "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.consumos.RecordConsumption(context.Background(), "no-existe", dto.ConsumptionRequest{
		MateriaPrimaID:    "malta",
		CantidadConsumida: decimal.NewFromInt(1),
		UnidadMedida:      "kg",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "lote inexistente")

	_, err = f.consumos.RecordConsumption(context.Background(), lote.ID, dto.ConsumptionRequest{
		MateriaPrimaID:    "no-existe",
		CantidadConsumida: decimal.NewFromInt(1),
		UnidadMedida:      "kg",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "materia prima inexistente")
}

func TestFinalizeLot_CalculaRendimientoYCierraEnPaso(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden, lote := f.ordenEnProceso(t)

	// Orden de 50 L con 48 L obtenidos: rendimiento 96%.
	cerrado, terminado, err := f.consumos.FinalizeLot(context.Background(), lote.ID, dto.FinalizeLotRequest{
		CantidadFinal:       decimal.NewFromInt(48),
		CalificacionCalidad: "A",
	})
	require.NoError(t, err)
	require.NotNil(t, terminado)
	assert.Equal(t, cerrado.CodigoLote+"-PT", terminado.Codigo)

	assert.Equal(t, entity.LotStatusFinalizado, cerrado.Estado)
	require.NotNil(t, cerrado.VolumenObtenido)
	assert.True(t, cerrado.VolumenObtenido.Equal(decimal.NewFromInt(48)))
	require.NotNil(t, cerrado.RendimientoReal)
	assert.True(t, cerrado.RendimientoReal.Equal(decimal.NewFromInt(96)), "rendimiento %s", cerrado.RendimientoReal)
	assert.Equal(t, "A", cerrado.CalificacionCalidad)
	assert.NotNil(t, cerrado.FechaFinalizacion)

	// La orden finaliza en la misma transacción.
	actual, err := f.ordenes.GetByID(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFinalizada, actual.Estado)
	assert.NotNil(t, actual.FechaFinalizacion)
}

func TestFinalizeLot_LoteEnPreparacionNoSePuedeFinalizar(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden := f.crearOrden(t)
	f.transitar(t, orden.ID, entity.OrderStatusEnPreparacion)
	loteID := mustLoteID(t, f, orden.ID)

	_, _, err := f.consumos.FinalizeLot(context.Background(), loteID, dto.FinalizeLotRequest{
		CantidadFinal: decimal.NewFromInt(48),
	})
	var transicion *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transicion)
	assert.Equal(t, "EnPreparacion", transicion.Desde)
}

func TestFinalizeLot_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	_, lote := f.ordenEnProceso(t)

	_, _, err := f.consumos.FinalizeLot(context.Background(), lote.ID, dto.FinalizeLotRequest{
		CantidadFinal: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
