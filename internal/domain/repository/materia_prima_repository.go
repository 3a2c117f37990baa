package repository

import (
	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
)

// RawMaterialRepository puerto para consultar y actualizar materias primas.
// El decremento de stock se hace dentro de transacciones con bloqueo de fila.
type RawMaterialRepository interface {
	GetByID(id string) (*entity.RawMaterial, error)
	List() ([]entity.RawMaterial, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.RawMaterial, error)
	UpdateStock(id string, cantidad decimal.Decimal) error
}

// RawMaterialLotRepository puerto para lotes físicos de materia prima
// (trazabilidad por lote de proveedor).
type RawMaterialLotRepository interface {
	GetByID(id string) (*entity.RawMaterialLot, error)
	GetForUpdate(id string) (*entity.RawMaterialLot, error)
	UpdateCantidad(id string, cantidad decimal.Decimal) error
}
