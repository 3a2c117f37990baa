package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial materia prima con su stock actual. StockActual solo se decrementa
// mediante consumos confirmados (transaccional).
type RawMaterial struct {
	ID           string
	Nombre       string
	UnidadMedida string
	StockActual  decimal.Decimal
	StockMinimo  decimal.Decimal
	UpdatedAt    time.Time
}

// BajoStockMinimo indica si la materia prima está por debajo de su umbral de reposición.
func (m *RawMaterial) BajoStockMinimo() bool {
	return m.StockActual.LessThan(m.StockMinimo)
}

// RawMaterialLot lote físico de una materia prima (recepción de proveedor).
// Permite trazabilidad por lote además del stock agregado.
type RawMaterialLot struct {
	ID                 string
	MateriaPrimaID     string
	Codigo             string
	CantidadDisponible decimal.Decimal
	FechaVencimiento   *time.Time
	CreatedAt          time.Time
}
