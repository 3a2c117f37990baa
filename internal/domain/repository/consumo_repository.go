package repository

import "github.com/cerveceria/produccion-api/internal/domain/entity"

// ConsumptionRepository puerto del registro de consumos de materia prima.
// Solo inserciones; el historial de consumos es el sustrato de la trazabilidad.
type ConsumptionRepository interface {
	Create(registro *entity.ConsumptionRecord) error
	// ListByLote devuelve los consumos del lote en orden cronológico.
	ListByLote(loteFabricacionID string) ([]entity.ConsumptionRecord, error)
}
