package production

import "github.com/shopspring/decimal"

// RendimientoReal calcula el rendimiento del lote como porcentaje del volumen
// programado. Devuelve cero si el volumen programado es cero.
// Rendimiento = VolumenObtenido / VolumenProgramado * 100
func RendimientoReal(obtenido, programado decimal.Decimal) decimal.Decimal {
	if !programado.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return obtenido.Div(programado).Mul(decimal.NewFromInt(100)).Round(2)
}
