package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cerveceria/produccion-api/internal/application/production"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner.
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunConsumo inicia una transacción con los repos del registro de consumo
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunConsumo(ctx context.Context, fn func(
	loteRepo repository.ManufacturingLotRepository,
	materiaRepo repository.RawMaterialRepository,
	loteMateriaRepo repository.RawMaterialLotRepository,
	consumoRepo repository.ConsumptionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loteRepo := NewManufacturingLotRepository(tx)
	materiaRepo := NewRawMaterialRepository(tx)
	loteMateriaRepo := NewRawMaterialLotRepository(tx)
	consumoRepo := NewConsumptionRepository(tx)

	if err := fn(loteRepo, materiaRepo, loteMateriaRepo, consumoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrden inicia una transacción con los repos del ciclo de vida (orden, lote
// de fabricación y producto terminado) atados a la tx.
func (r *TxRunner) RunOrden(ctx context.Context, fn func(
	ordenRepo repository.OrderRepository,
	loteRepo repository.ManufacturingLotRepository,
	terminadoRepo repository.FinishedLotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ordenRepo := NewOrderRepository(tx)
	loteRepo := NewManufacturingLotRepository(tx)
	terminadoRepo := NewFinishedLotRepository(tx)

	if err := fn(ordenRepo, loteRepo, terminadoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
