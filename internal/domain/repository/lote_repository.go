package repository

import (
	"time"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
)

// ManufacturingLotRepository puerto de persistencia de lotes de fabricación.
// Los lotes cerrados se conservan para trazabilidad.
type ManufacturingLotRepository interface {
	Create(lote *entity.ManufacturingLot) error
	GetByID(id string) (*entity.ManufacturingLot, error)
	// GetForUpdate obtiene el lote bloqueando la fila dentro de la transacción.
	GetForUpdate(id string) (*entity.ManufacturingLot, error)
	// GetActivoPorOrden devuelve el lote no terminal de la orden, o nil si no hay.
	GetActivoPorOrden(ordenID string) (*entity.ManufacturingLot, error)
	ListByOrden(ordenID string) ([]entity.ManufacturingLot, error)
	// UpdateEstadoCAS análogo al de la orden: escribe solo si el estado coincide.
	UpdateEstadoCAS(lote *entity.ManufacturingLot, esperado entity.LotStatus) (bool, error)
	// CountByDia cantidad de lotes creados en el día, para el secuencial del código.
	CountByDia(dia time.Time) (int, error)
}

// FinishedLotRepository puerto de lotes de producto terminado.
type FinishedLotRepository interface {
	Create(lote *entity.FinishedLot) error
	GetByID(id string) (*entity.FinishedLot, error)
	ListByLoteFabricacion(loteFabricacionID string) ([]entity.FinishedLot, error)
}
