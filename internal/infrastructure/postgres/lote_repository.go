package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

var _ repository.ManufacturingLotRepository = (*ManufacturingLotRepo)(nil)

// ManufacturingLotRepo implementación de ManufacturingLotRepository sobre PostgreSQL.
type ManufacturingLotRepo struct {
	q Querier
}

// NewManufacturingLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturingLotRepository(q Querier) *ManufacturingLotRepo {
	return &ManufacturingLotRepo{q: q}
}

const loteCols = `id, orden_produccion_id, codigo_lote, estado, volumen_obtenido, rendimiento_real,
		calificacion_calidad, fecha_inicio, fecha_finalizacion, created_at, updated_at`

// Create persiste un lote nuevo.
func (r *ManufacturingLotRepo) Create(lote *entity.ManufacturingLot) error {
	query := `
		INSERT INTO lotes_fabricacion (id, orden_produccion_id, codigo_lote, estado, volumen_obtenido,
			rendimiento_real, calificacion_calidad, fecha_inicio, fecha_finalizacion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.OrdenProduccionID, lote.CodigoLote, lote.Estado.String(), lote.VolumenObtenido,
		lote.RendimientoReal, lote.CalificacionCalidad, lote.FechaInicio, lote.FechaFinalizacion,
		lote.CreatedAt, lote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *ManufacturingLotRepo) GetByID(id string) (*entity.ManufacturingLot, error) {
	query := `SELECT ` + loteCols + ` FROM lotes_fabricacion WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *ManufacturingLotRepo) GetForUpdate(id string) (*entity.ManufacturingLot, error) {
	query := `SELECT ` + loteCols + ` FROM lotes_fabricacion WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetActivoPorOrden devuelve el lote no terminal de la orden, o nil si no hay.
func (r *ManufacturingLotRepo) GetActivoPorOrden(ordenID string) (*entity.ManufacturingLot, error) {
	query := `SELECT ` + loteCols + `
		FROM lotes_fabricacion
		WHERE orden_produccion_id = $1 AND estado IN ('EnPreparacion', 'EnProceso')
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ordenID))
}

func (r *ManufacturingLotRepo) scanOne(row pgx.Row) (*entity.ManufacturingLot, error) {
	var l entity.ManufacturingLot
	var estado string
	err := row.Scan(
		&l.ID, &l.OrdenProduccionID, &l.CodigoLote, &estado, &l.VolumenObtenido, &l.RendimientoReal,
		&l.CalificacionCalidad, &l.FechaInicio, &l.FechaFinalizacion, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	l.Estado = entity.LotStatus(estado)
	return &l, nil
}

// ListByOrden lista los lotes de una orden, incluidos los cerrados.
func (r *ManufacturingLotRepo) ListByOrden(ordenID string) ([]entity.ManufacturingLot, error) {
	query := `SELECT ` + loteCols + ` FROM lotes_fabricacion WHERE orden_produccion_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var out []entity.ManufacturingLot
	for rows.Next() {
		var l entity.ManufacturingLot
		var estado string
		if err := rows.Scan(
			&l.ID, &l.OrdenProduccionID, &l.CodigoLote, &estado, &l.VolumenObtenido, &l.RendimientoReal,
			&l.CalificacionCalidad, &l.FechaInicio, &l.FechaFinalizacion, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		l.Estado = entity.LotStatus(estado)
		out = append(out, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list lotes: %w", rows.Err())
	}
	return out, nil
}

// UpdateEstadoCAS escribe el lote solo si el estado actual coincide con esperado.
func (r *ManufacturingLotRepo) UpdateEstadoCAS(lote *entity.ManufacturingLot, esperado entity.LotStatus) (bool, error) {
	query := `
		UPDATE lotes_fabricacion
		SET estado = $3, volumen_obtenido = $4, rendimiento_real = $5, calificacion_calidad = $6,
			fecha_inicio = $7, fecha_finalizacion = $8, updated_at = $9
		WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(context.Background(), query,
		lote.ID, esperado.String(), lote.Estado.String(), lote.VolumenObtenido, lote.RendimientoReal,
		lote.CalificacionCalidad, lote.FechaInicio, lote.FechaFinalizacion, lote.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update estado lote: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountByDia cuenta los lotes creados en el día indicado (secuencial del código de lote).
func (r *ManufacturingLotRepo) CountByDia(dia time.Time) (int, error) {
	query := `SELECT count(*) FROM lotes_fabricacion WHERE created_at::date = $1::date`
	var n int
	if err := r.q.QueryRow(context.Background(), query, dia).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lotes: %w", err)
	}
	return n, nil
}

var _ repository.FinishedLotRepository = (*FinishedLotRepo)(nil)

// FinishedLotRepo implementación de FinishedLotRepository sobre PostgreSQL.
type FinishedLotRepo struct {
	q Querier
}

// NewFinishedLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedLotRepository(q Querier) *FinishedLotRepo {
	return &FinishedLotRepo{q: q}
}

const terminadoCols = `id, lote_fabricacion_id, codigo, cantidad, unidad, created_at`

// Create persiste un lote de producto terminado.
func (r *FinishedLotRepo) Create(lote *entity.FinishedLot) error {
	query := `
		INSERT INTO lotes_producto_terminado (id, lote_fabricacion_id, codigo, cantidad, unidad, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.LoteFabricacionID, lote.Codigo, lote.Cantidad, lote.Unidad, lote.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert producto terminado: %w", err)
	}
	return nil
}

// GetByID obtiene un lote de producto terminado por ID.
func (r *FinishedLotRepo) GetByID(id string) (*entity.FinishedLot, error) {
	query := `SELECT ` + terminadoCols + ` FROM lotes_producto_terminado WHERE id = $1`
	var l entity.FinishedLot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.LoteFabricacionID, &l.Codigo, &l.Cantidad, &l.Unidad, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto terminado: %w", err)
	}
	return &l, nil
}

// ListByLoteFabricacion lista los productos terminados de un lote de fabricación.
func (r *FinishedLotRepo) ListByLoteFabricacion(loteFabricacionID string) ([]entity.FinishedLot, error) {
	query := `SELECT ` + terminadoCols + ` FROM lotes_producto_terminado WHERE lote_fabricacion_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, loteFabricacionID)
	if err != nil {
		return nil, fmt.Errorf("list productos terminados: %w", err)
	}
	defer rows.Close()

	var out []entity.FinishedLot
	for rows.Next() {
		var l entity.FinishedLot
		if err := rows.Scan(&l.ID, &l.LoteFabricacionID, &l.Codigo, &l.Cantidad, &l.Unidad, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan producto terminado: %w", err)
		}
		out = append(out, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list productos terminados: %w", rows.Err())
	}
	return out, nil
}
