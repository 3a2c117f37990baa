package postgres

import (
	"context"
	"fmt"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL.
// Solo inserciones y lecturas; los consumos no se editan ni se borran.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create persiste un registro de consumo.
func (r *ConsumptionRepo) Create(registro *entity.ConsumptionRecord) error {
	query := `
		INSERT INTO consumos_materia_prima (id, lote_fabricacion_id, materia_prima_id, lote_materia_prima_id,
			cantidad_consumida, unidad_medida, etapa_produccion, fecha_registro, registrado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		registro.ID, registro.LoteFabricacionID, registro.MateriaPrimaID, registro.LoteMateriaPrimaID,
		registro.CantidadConsumida, registro.UnidadMedida, registro.EtapaProduccion,
		registro.FechaRegistro, registro.RegistradoPor,
	)
	if err != nil {
		return fmt.Errorf("insert consumo: %w", err)
	}
	return nil
}

// ListByLote lista los consumos del lote en orden cronológico.
func (r *ConsumptionRepo) ListByLote(loteFabricacionID string) ([]entity.ConsumptionRecord, error) {
	query := `
		SELECT id, lote_fabricacion_id, materia_prima_id, lote_materia_prima_id, cantidad_consumida,
			unidad_medida, etapa_produccion, fecha_registro, registrado_por
		FROM consumos_materia_prima WHERE lote_fabricacion_id = $1 ORDER BY fecha_registro`
	rows, err := r.q.Query(context.Background(), query, loteFabricacionID)
	if err != nil {
		return nil, fmt.Errorf("list consumos: %w", err)
	}
	defer rows.Close()

	var out []entity.ConsumptionRecord
	for rows.Next() {
		var c entity.ConsumptionRecord
		if err := rows.Scan(
			&c.ID, &c.LoteFabricacionID, &c.MateriaPrimaID, &c.LoteMateriaPrimaID, &c.CantidadConsumida,
			&c.UnidadMedida, &c.EtapaProduccion, &c.FechaRegistro, &c.RegistradoPor,
		); err != nil {
			return nil, fmt.Errorf("scan consumo: %w", err)
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list consumos: %w", rows.Err())
	}
	return out, nil
}
