package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionRecord evento de consumo de materia prima por un lote de
// fabricación. Confirmar un consumo decrementa RawMaterial.StockActual de
// forma atómica; la cantidad siempre es positiva.
type ConsumptionRecord struct {
	ID                 string
	LoteFabricacionID  string
	MateriaPrimaID     string
	LoteMateriaPrimaID *string
	CantidadConsumida  decimal.Decimal
	UnidadMedida       string
	EtapaProduccion    string
	FechaRegistro      time.Time
	RegistradoPor      string
}
