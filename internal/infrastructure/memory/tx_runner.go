package memory

import (
	"context"

	"github.com/cerveceria/produccion-api/internal/application/production"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner.
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones en memoria: retiene el mutex del almacén durante todo
// el callback (serializa las transacciones, como el bloqueo de fila en
// PostgreSQL) y restaura un snapshot si el callback falla, para no dejar estado
// parcial.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// RunConsumo ejecuta fn con los repos de consumo atados a la "transacción".
func (r *TxRunner) RunConsumo(ctx context.Context, fn func(
	loteRepo repository.ManufacturingLotRepository,
	materiaRepo repository.RawMaterialRepository,
	loteMateriaRepo repository.RawMaterialLotRepository,
	consumoRepo repository.ConsumptionRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()

	err := fn(
		&ManufacturingLotRepository{base{store: r.store, enTx: true}},
		&RawMaterialRepository{base{store: r.store, enTx: true}},
		&RawMaterialLotRepository{base{store: r.store, enTx: true}},
		&ConsumptionRepository{base{store: r.store, enTx: true}},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// RunOrden ejecuta fn con los repos del ciclo de vida atados a la "transacción".
func (r *TxRunner) RunOrden(ctx context.Context, fn func(
	ordenRepo repository.OrderRepository,
	loteRepo repository.ManufacturingLotRepository,
	terminadoRepo repository.FinishedLotRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()

	err := fn(
		&OrderRepository{base{store: r.store, enTx: true}},
		&ManufacturingLotRepository{base{store: r.store, enTx: true}},
		&FinishedLotRepository{base{store: r.store, enTx: true}},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
