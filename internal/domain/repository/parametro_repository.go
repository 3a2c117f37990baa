package repository

import "github.com/cerveceria/produccion-api/internal/domain/entity"

// ParameterReadingRepository puerto de lecturas de parámetros de proceso.
// Mayormente append-only; Update existe para correcciones y siempre llega con
// EnRango recalculado por el caso de uso.
type ParameterReadingRepository interface {
	Create(lectura *entity.ProcessParameterReading) error
	GetByID(id string) (*entity.ProcessParameterReading, error)
	ListByLote(loteFabricacionID string) ([]entity.ProcessParameterReading, error)
	Update(lectura *entity.ProcessParameterReading) error
}
