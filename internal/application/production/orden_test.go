package production_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
)

func TestOrderCreate_NaceProgramada(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()

	orden := f.crearOrden(t)

	assert.Equal(t, entity.OrderStatusProgramada, orden.Estado)
	assert.Equal(t, "receta-ipa", orden.RecetaID)
	assert.Equal(t, "litros", orden.UnidadVolumen, "hereda la unidad de la receta")
	assert.Nil(t, orden.FechaInicio)
	assert.Nil(t, orden.FechaFinalizacion)
}

func TestOrderCreate_RecetaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.ordenes.Create(context.Background(), dto.CreateOrderRequest{
		RecetaID:          "no-existe",
		VolumenProgramado: decimal.NewFromInt(50),
		FechaProgramada:   time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderCreate_VolumenInvalido(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()

	for _, vol := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := f.ordenes.Create(context.Background(), dto.CreateOrderRequest{
			RecetaID:          "receta-ipa",
			VolumenProgramado: vol,
			FechaProgramada:   time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "volumen %s", vol)
	}
}

func TestOrderTransition_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden := f.crearOrden(t)

	orden = f.transitar(t, orden.ID, entity.OrderStatusEnPreparacion)
	assert.Equal(t, entity.OrderStatusEnPreparacion, orden.Estado)
	assert.Nil(t, orden.FechaInicio)

	orden = f.transitar(t, orden.ID, entity.OrderStatusEnProceso)
	assert.Equal(t, entity.OrderStatusEnProceso, orden.Estado)
	require.NotNil(t, orden.FechaInicio, "entrar En Proceso fija la fecha de inicio")

	inicio := *orden.FechaInicio
	orden = f.transitar(t, orden.ID, entity.OrderStatusPausada)
	orden = f.transitar(t, orden.ID, entity.OrderStatusEnProceso)
	assert.Equal(t, inicio, *orden.FechaInicio, "reanudar no reescribe la fecha de inicio")
}

func TestOrderTransition_Invalida(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden := f.crearOrden(t)

	_, err := f.ordenes.Transition(context.Background(), orden.ID, dto.TransitionRequest{
		NuevoEstado: entity.OrderStatusFinalizada.String(),
	})
	var transicion *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transicion)
	assert.Equal(t, "Programada", transicion.Desde)
	assert.Equal(t, "Finalizada", transicion.Hacia)

	// El estado de la orden no cambió.
	actual, err := f.ordenes.GetByID(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProgramada, actual.Estado)
}

func TestOrderTransition_Concurrente_SoloUnaGana(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden := f.crearOrden(t)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ordenes.Transition(context.Background(), orden.ID, dto.TransitionRequest{
				NuevoEstado: entity.OrderStatusEnPreparacion.String(),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	fallos := 0
	for err := range errs {
		if err != nil {
			fallos++
		}
	}
	assert.Equal(t, 1, fallos, "exactamente una transición pierde la carrera")

	actual, err := f.ordenes.GetByID(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusEnPreparacion, actual.Estado)

	// La carrera no duplica el lote de fabricación.
	lotes, err := f.ordenes.ListLotes(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.Len(t, lotes, 1)
}

func TestOrderTransition_EstadoDesconocido(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden := f.crearOrden(t)

	_, err := f.ordenes.Transition(context.Background(), orden.ID, dto.TransitionRequest{
		NuevoEstado: "Archivada",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderTransition_FinalizadaEsTerminal(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden, _ := f.ordenEnProceso(t)

	_, _, err := f.consumos.FinalizeLot(context.Background(), mustLoteID(t, f, orden.ID), dto.FinalizeLotRequest{
		CantidadFinal: decimal.NewFromInt(48),
	})
	require.NoError(t, err)

	// Finalizada no admite ninguna transición posterior.
	for _, destino := range []entity.OrderStatus{
		entity.OrderStatusEnProceso,
		entity.OrderStatusPausada,
		entity.OrderStatusCancelada,
	} {
		_, err := f.ordenes.Transition(context.Background(), orden.ID, dto.TransitionRequest{
			NuevoEstado: destino.String(),
		})
		var transicion *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transicion, "Finalizada -> %s", destino)
	}
}

func TestOrderTransition_EnPreparacionCreaLote(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden := f.crearOrden(t)

	f.transitar(t, orden.ID, entity.OrderStatusEnPreparacion)

	lote, err := f.loteRepo.GetActivoPorOrden(orden.ID)
	require.NoError(t, err)
	require.NotNil(t, lote)
	assert.Equal(t, entity.LotStatusEnPreparacion, lote.Estado)
	assert.Regexp(t, `^LOT-\d{8}-\d{4}$`, lote.CodigoLote)

	// Repetir la preparación de otra orden el mismo día avanza la secuencia.
	orden2 := f.crearOrden(t)
	f.transitar(t, orden2.ID, entity.OrderStatusEnPreparacion)
	lote2, err := f.loteRepo.GetActivoPorOrden(orden2.ID)
	require.NoError(t, err)
	require.NotNil(t, lote2)
	assert.NotEqual(t, lote.CodigoLote, lote2.CodigoLote)
}

func TestOrderTransition_EnProcesoAvanzaElLote(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	_, lote := f.ordenEnProceso(t)

	assert.Equal(t, entity.LotStatusEnProceso, lote.Estado)
	assert.NotNil(t, lote.FechaInicio)
}

func TestOrderTransition_CancelarCancelaElLoteActivo(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden, lote := f.ordenEnProceso(t)

	actualizada := f.transitar(t, orden.ID, entity.OrderStatusCancelada)
	assert.Equal(t, entity.OrderStatusCancelada, actualizada.Estado)

	cancelado, err := f.loteRepo.GetByID(lote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusCancelado, cancelado.Estado)
	assert.NotNil(t, cancelado.FechaFinalizacion)
}

// Finalizar la orden directamente con un lote aún abierto es un conflicto: el
// lote debe cerrarse antes con su cantidad final.
func TestOrderTransition_FinalizarConLoteAbierto(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden, _ := f.ordenEnProceso(t)

	_, err := f.ordenes.Transition(context.Background(), orden.ID, dto.TransitionRequest{
		NuevoEstado: entity.OrderStatusFinalizada.String(),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderListLotes(t *testing.T) {
	f := newFixture(t)
	f.seedReceta()
	orden, lote := f.ordenEnProceso(t)

	lotes, err := f.ordenes.ListLotes(context.Background(), orden.ID)
	require.NoError(t, err)
	require.Len(t, lotes, 1)
	assert.Equal(t, lote.ID, lotes[0].ID)

	_, err = f.ordenes.ListLotes(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func mustLoteID(t *testing.T, f *fixture, ordenID string) string {
	t.Helper()
	lote, err := f.loteRepo.GetActivoPorOrden(ordenID)
	require.NoError(t, err)
	require.NotNil(t, lote)
	return lote.ID
}
