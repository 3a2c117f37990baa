package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const ordenCols = `id, receta_id, fecha_programada, volumen_programado, unidad_volumen, estado,
		responsable_id, fecha_inicio, fecha_finalizacion, notas, created_at, updated_at`

// Create persiste una orden nueva.
func (r *OrderRepo) Create(orden *entity.ProductionOrder) error {
	query := `
		INSERT INTO ordenes_produccion (id, receta_id, fecha_programada, volumen_programado, unidad_volumen,
			estado, responsable_id, fecha_inicio, fecha_finalizacion, notas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		orden.ID, orden.RecetaID, orden.FechaProgramada, orden.VolumenProgramado, orden.UnidadVolumen,
		orden.Estado.String(), orden.ResponsableID, orden.FechaInicio, orden.FechaFinalizacion,
		orden.Notas, orden.CreatedAt, orden.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert orden: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + ordenCols + ` FROM ordenes_produccion WHERE id = $1`
	var o entity.ProductionOrder
	var estado string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.RecetaID, &o.FechaProgramada, &o.VolumenProgramado, &o.UnidadVolumen, &estado,
		&o.ResponsableID, &o.FechaInicio, &o.FechaFinalizacion, &o.Notas, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	o.Estado = entity.OrderStatus(estado)
	return &o, nil
}

// List lista las órdenes, más recientes primero.
func (r *OrderRepo) List() ([]entity.ProductionOrder, error) {
	query := `SELECT ` + ordenCols + ` FROM ordenes_produccion ORDER BY fecha_programada DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		var estado string
		if err := rows.Scan(
			&o.ID, &o.RecetaID, &o.FechaProgramada, &o.VolumenProgramado, &o.UnidadVolumen, &estado,
			&o.ResponsableID, &o.FechaInicio, &o.FechaFinalizacion, &o.Notas, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		o.Estado = entity.OrderStatus(estado)
		out = append(out, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list ordenes: %w", rows.Err())
	}
	return out, nil
}

// UpdateEstadoCAS escribe estado, fechas y notas solo si el estado actual
// coincide con esperado. Cero filas afectadas significa que otro actor ganó la
// carrera; se devuelve false sin error.
func (r *OrderRepo) UpdateEstadoCAS(orden *entity.ProductionOrder, esperado entity.OrderStatus) (bool, error) {
	query := `
		UPDATE ordenes_produccion
		SET estado = $3, fecha_inicio = $4, fecha_finalizacion = $5, notas = $6, updated_at = $7
		WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(context.Background(), query,
		orden.ID, esperado.String(), orden.Estado.String(),
		orden.FechaInicio, orden.FechaFinalizacion, orden.Notas, orden.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update estado orden: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
