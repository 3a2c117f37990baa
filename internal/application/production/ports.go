package production

import (
	"context"

	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: todo o nada.
type TxRunner interface {
	// RunConsumo transacción para registrar consumos: bloqueo de fila sobre el
	// lote de fabricación y la materia prima (y su lote si aplica), decremento
	// y registro del consumo.
	RunConsumo(ctx context.Context, fn func(
		loteRepo repository.ManufacturingLotRepository,
		materiaRepo repository.RawMaterialRepository,
		loteMateriaRepo repository.RawMaterialLotRepository,
		consumoRepo repository.ConsumptionRepository,
	) error) error

	// RunOrden transacción para transiciones de estado: la orden, su lote de
	// fabricación y el lote de producto terminado avanzan juntos o no avanzan.
	RunOrden(ctx context.Context, fn func(
		ordenRepo repository.OrderRepository,
		loteRepo repository.ManufacturingLotRepository,
		terminadoRepo repository.FinishedLotRepository,
	) error) error
}
