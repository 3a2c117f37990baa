package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

var _ repository.ParameterReadingRepository = (*ParameterReadingRepo)(nil)

// ParameterReadingRepo implementación de ParameterReadingRepository sobre PostgreSQL.
type ParameterReadingRepo struct {
	q Querier
}

// NewParameterReadingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewParameterReadingRepository(q Querier) *ParameterReadingRepo {
	return &ParameterReadingRepo{q: q}
}

const lecturaCols = `id, lote_fabricacion_id, etapa_produccion, parametro, valor, unidad_medida,
		en_rango, fecha_medicion, notas, created_at`

// Create persiste una lectura nueva.
func (r *ParameterReadingRepo) Create(lectura *entity.ProcessParameterReading) error {
	query := `
		INSERT INTO parametros_proceso (id, lote_fabricacion_id, etapa_produccion, parametro, valor,
			unidad_medida, en_rango, fecha_medicion, notas, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		lectura.ID, lectura.LoteFabricacionID, lectura.EtapaProduccion, lectura.Parametro, lectura.Valor,
		lectura.UnidadMedida, lectura.EnRango, lectura.FechaMedicion, lectura.Notas, lectura.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lectura: %w", err)
	}
	return nil
}

// GetByID obtiene una lectura por ID.
func (r *ParameterReadingRepo) GetByID(id string) (*entity.ProcessParameterReading, error) {
	query := `SELECT ` + lecturaCols + ` FROM parametros_proceso WHERE id = $1`
	var l entity.ProcessParameterReading
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.LoteFabricacionID, &l.EtapaProduccion, &l.Parametro, &l.Valor,
		&l.UnidadMedida, &l.EnRango, &l.FechaMedicion, &l.Notas, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lectura: %w", err)
	}
	return &l, nil
}

// ListByLote lista las lecturas de un lote en orden cronológico.
func (r *ParameterReadingRepo) ListByLote(loteFabricacionID string) ([]entity.ProcessParameterReading, error) {
	query := `SELECT ` + lecturaCols + ` FROM parametros_proceso WHERE lote_fabricacion_id = $1 ORDER BY fecha_medicion`
	rows, err := r.q.Query(context.Background(), query, loteFabricacionID)
	if err != nil {
		return nil, fmt.Errorf("list lecturas: %w", err)
	}
	defer rows.Close()

	var out []entity.ProcessParameterReading
	for rows.Next() {
		var l entity.ProcessParameterReading
		if err := rows.Scan(
			&l.ID, &l.LoteFabricacionID, &l.EtapaProduccion, &l.Parametro, &l.Valor,
			&l.UnidadMedida, &l.EnRango, &l.FechaMedicion, &l.Notas, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lectura: %w", err)
		}
		out = append(out, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list lecturas: %w", rows.Err())
	}
	return out, nil
}

// Update escribe la corrección de una lectura (EnRango ya recalculado).
func (r *ParameterReadingRepo) Update(lectura *entity.ProcessParameterReading) error {
	query := `
		UPDATE parametros_proceso
		SET etapa_produccion = $2, parametro = $3, valor = $4, unidad_medida = $5, en_rango = $6, notas = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		lectura.ID, lectura.EtapaProduccion, lectura.Parametro, lectura.Valor,
		lectura.UnidadMedida, lectura.EnRango, lectura.Notas,
	)
	if err != nil {
		return fmt.Errorf("update lectura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lectura: %w", pgx.ErrNoRows)
	}
	return nil
}
