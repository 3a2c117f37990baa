package repository

import "github.com/cerveceria/produccion-api/internal/domain/entity"

// OrderRepository puerto de persistencia de órdenes de producción.
type OrderRepository interface {
	Create(orden *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	List() ([]entity.ProductionOrder, error)
	// UpdateEstadoCAS escribe estado, fechas y notas de la orden solo si el
	// estado actual en la base coincide con esperado (compare-and-swap).
	// Devuelve false sin error cuando otro actor ganó la carrera.
	UpdateEstadoCAS(orden *entity.ProductionOrder, esperado entity.OrderStatus) (bool, error)
}
