package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	todos := []entity.OrderStatus{
		entity.OrderStatusProgramada,
		entity.OrderStatusEnPreparacion,
		entity.OrderStatusEnProceso,
		entity.OrderStatusPausada,
		entity.OrderStatusFinalizada,
		entity.OrderStatusCancelada,
	}

	// Tabla completa: pares (desde, hacia) permitidos. Todo lo demás se rechaza.
	permitidas := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderStatusProgramada:    {entity.OrderStatusEnPreparacion, entity.OrderStatusCancelada},
		entity.OrderStatusEnPreparacion: {entity.OrderStatusEnProceso, entity.OrderStatusPausada, entity.OrderStatusCancelada},
		entity.OrderStatusEnProceso:     {entity.OrderStatusPausada, entity.OrderStatusFinalizada, entity.OrderStatusCancelada},
		entity.OrderStatusPausada:       {entity.OrderStatusEnProceso, entity.OrderStatusCancelada},
		entity.OrderStatusFinalizada:    {},
		entity.OrderStatusCancelada:     {},
	}

	for desde, destinos := range permitidas {
		validos := make(map[entity.OrderStatus]bool, len(destinos))
		for _, d := range destinos {
			validos[d] = true
		}
		for _, hacia := range todos {
			got := desde.CanTransitionTo(hacia)
			assert.Equal(t, validos[hacia], got, "%s -> %s", desde, hacia)
		}
	}
}

func TestOrderStatus_EstadosTerminales(t *testing.T) {
	assert.True(t, entity.OrderStatusFinalizada.EsTerminal())
	assert.True(t, entity.OrderStatusCancelada.EsTerminal())
	assert.False(t, entity.OrderStatusEnProceso.EsTerminal())

	// Una orden finalizada no puede volver a proceso bajo ninguna circunstancia.
	assert.False(t, entity.OrderStatusFinalizada.CanTransitionTo(entity.OrderStatusEnProceso))
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, entity.OrderStatus("En Proceso").IsValid())
	assert.False(t, entity.OrderStatus("EnProceso").IsValid(), "los estados de orden llevan espacio")
	assert.False(t, entity.OrderStatus("Borrador").IsValid())
}

func TestOrderStatus_PermiteRegistroParametros(t *testing.T) {
	casos := map[entity.OrderStatus]bool{
		entity.OrderStatusProgramada:    false,
		entity.OrderStatusEnPreparacion: false,
		entity.OrderStatusEnProceso:     true,
		entity.OrderStatusPausada:       true,
		entity.OrderStatusFinalizada:    true,
		entity.OrderStatusCancelada:     true,
	}
	for estado, esperado := range casos {
		assert.Equal(t, esperado, estado.PermiteRegistroParametros(), "estado %s", estado)
	}
}

func TestLotStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, entity.LotStatusEnPreparacion.CanTransitionTo(entity.LotStatusEnProceso))
	assert.True(t, entity.LotStatusEnPreparacion.CanTransitionTo(entity.LotStatusCancelado))
	assert.False(t, entity.LotStatusEnPreparacion.CanTransitionTo(entity.LotStatusFinalizado))

	assert.True(t, entity.LotStatusEnProceso.CanTransitionTo(entity.LotStatusFinalizado))
	assert.True(t, entity.LotStatusEnProceso.CanTransitionTo(entity.LotStatusCancelado))

	// Los lotes cerrados nunca se reabren.
	assert.False(t, entity.LotStatusFinalizado.CanTransitionTo(entity.LotStatusEnProceso))
	assert.False(t, entity.LotStatusCancelado.CanTransitionTo(entity.LotStatusEnPreparacion))
}

func TestNuevoCodigoLote(t *testing.T) {
	fecha := time.Date(2025, 1, 18, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "LOT-20250118-0007", entity.NuevoCodigoLote(fecha, 7))
	assert.Equal(t, "LOT-20250118-0001", entity.NuevoCodigoLote(fecha, 1))
	assert.Equal(t, "LOT-20250118-1234", entity.NuevoCodigoLote(fecha, 1234))
}
