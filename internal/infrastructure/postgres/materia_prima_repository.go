package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL
// (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const materiaPrimaCols = `id, nombre, unidad_medida, stock_actual, stock_minimo, updated_at`

// GetByID obtiene una materia prima por ID.
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + materiaPrimaCols + ` FROM materias_primas WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + materiaPrimaCols + ` FROM materias_primas WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *RawMaterialRepo) scanOne(query, id string) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Nombre, &m.UnidadMedida, &m.StockActual, &m.StockMinimo, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get materia prima: %w", err)
	}
	return &m, nil
}

// List lista las materias primas.
func (r *RawMaterialRepo) List() ([]entity.RawMaterial, error) {
	query := `SELECT ` + materiaPrimaCols + ` FROM materias_primas ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list materias primas: %w", err)
	}
	defer rows.Close()

	var out []entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.Nombre, &m.UnidadMedida, &m.StockActual, &m.StockMinimo, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan materia prima: %w", err)
		}
		out = append(out, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list materias primas: %w", rows.Err())
	}
	return out, nil
}

// UpdateStock escribe el nuevo stock de la materia prima. Llamar con la fila
// bloqueada dentro de la transacción de consumo.
func (r *RawMaterialRepo) UpdateStock(id string, cantidad decimal.Decimal) error {
	query := `UPDATE materias_primas SET stock_actual = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, cantidad)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

var _ repository.RawMaterialLotRepository = (*RawMaterialLotRepo)(nil)

// RawMaterialLotRepo implementación de RawMaterialLotRepository sobre PostgreSQL.
type RawMaterialLotRepo struct {
	q Querier
}

// NewRawMaterialLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialLotRepository(q Querier) *RawMaterialLotRepo {
	return &RawMaterialLotRepo{q: q}
}

const loteMateriaCols = `id, materia_prima_id, codigo, cantidad_disponible, fecha_vencimiento, created_at`

// GetByID obtiene un lote de materia prima por ID.
func (r *RawMaterialLotRepo) GetByID(id string) (*entity.RawMaterialLot, error) {
	query := `SELECT ` + loteMateriaCols + ` FROM materia_prima_lotes WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *RawMaterialLotRepo) GetForUpdate(id string) (*entity.RawMaterialLot, error) {
	query := `SELECT ` + loteMateriaCols + ` FROM materia_prima_lotes WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *RawMaterialLotRepo) scanOne(query, id string) (*entity.RawMaterialLot, error) {
	var l entity.RawMaterialLot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.MateriaPrimaID, &l.Codigo, &l.CantidadDisponible, &l.FechaVencimiento, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote materia prima: %w", err)
	}
	return &l, nil
}

// UpdateCantidad escribe la cantidad disponible del lote.
func (r *RawMaterialLotRepo) UpdateCantidad(id string, cantidad decimal.Decimal) error {
	query := `UPDATE materia_prima_lotes SET cantidad_disponible = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, cantidad)
	if err != nil {
		return fmt.Errorf("update cantidad lote: %w", err)
	}
	return nil
}
