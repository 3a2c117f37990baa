package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// base comparte el almacén entre repositorios. Dentro de una transacción el
// TxRunner ya retiene el mutex; fuera de ella cada operación lo toma sola.
type base struct {
	store *Store
	enTx  bool
}

func (b base) lock() func() {
	if b.enTx {
		return func() {}
	}
	b.store.mu.Lock()
	return b.store.mu.Unlock
}

// Verify interface compliance.
var (
	_ repository.RecipeRepository           = (*RecipeRepository)(nil)
	_ repository.RawMaterialRepository      = (*RawMaterialRepository)(nil)
	_ repository.RawMaterialLotRepository   = (*RawMaterialLotRepository)(nil)
	_ repository.OrderRepository            = (*OrderRepository)(nil)
	_ repository.ManufacturingLotRepository = (*ManufacturingLotRepository)(nil)
	_ repository.FinishedLotRepository      = (*FinishedLotRepository)(nil)
	_ repository.ParameterReadingRepository = (*ParameterReadingRepository)(nil)
	_ repository.ConsumptionRepository      = (*ConsumptionRepository)(nil)
)

// RecipeRepository repositorio de recetas en memoria.
type RecipeRepository struct{ base }

// NewRecipeRepository construye el repositorio sobre el almacén.
func NewRecipeRepository(s *Store) *RecipeRepository {
	return &RecipeRepository{base{store: s}}
}

func (r *RecipeRepository) GetByID(id string) (*entity.Recipe, error) {
	defer r.lock()()
	if receta, ok := r.store.recetas[id]; ok {
		return &receta, nil
	}
	return nil, nil
}

func (r *RecipeRepository) List() ([]entity.Recipe, error) {
	defer r.lock()()
	out := make([]entity.Recipe, 0, len(r.store.recetas))
	for _, receta := range r.store.recetas {
		out = append(out, receta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// RawMaterialRepository repositorio de materias primas en memoria.
type RawMaterialRepository struct{ base }

// NewRawMaterialRepository construye el repositorio sobre el almacén.
func NewRawMaterialRepository(s *Store) *RawMaterialRepository {
	return &RawMaterialRepository{base{store: s}}
}

func (r *RawMaterialRepository) GetByID(id string) (*entity.RawMaterial, error) {
	defer r.lock()()
	if m, ok := r.store.materias[id]; ok {
		return &m, nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex del TxRunner ya
// serializa la transacción completa.
func (r *RawMaterialRepository) GetForUpdate(id string) (*entity.RawMaterial, error) {
	return r.GetByID(id)
}

func (r *RawMaterialRepository) List() ([]entity.RawMaterial, error) {
	defer r.lock()()
	out := make([]entity.RawMaterial, 0, len(r.store.materias))
	for _, m := range r.store.materias {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *RawMaterialRepository) UpdateStock(id string, cantidad decimal.Decimal) error {
	defer r.lock()()
	m, ok := r.store.materias[id]
	if !ok {
		return nil
	}
	m.StockActual = cantidad
	m.UpdatedAt = time.Now()
	r.store.materias[id] = m
	return nil
}

// RawMaterialLotRepository repositorio de lotes de materia prima en memoria.
type RawMaterialLotRepository struct{ base }

// NewRawMaterialLotRepository construye el repositorio sobre el almacén.
func NewRawMaterialLotRepository(s *Store) *RawMaterialLotRepository {
	return &RawMaterialLotRepository{base{store: s}}
}

func (r *RawMaterialLotRepository) GetByID(id string) (*entity.RawMaterialLot, error) {
	defer r.lock()()
	if l, ok := r.store.lotesMateria[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *RawMaterialLotRepository) GetForUpdate(id string) (*entity.RawMaterialLot, error) {
	return r.GetByID(id)
}

func (r *RawMaterialLotRepository) UpdateCantidad(id string, cantidad decimal.Decimal) error {
	defer r.lock()()
	l, ok := r.store.lotesMateria[id]
	if !ok {
		return nil
	}
	l.CantidadDisponible = cantidad
	r.store.lotesMateria[id] = l
	return nil
}

// OrderRepository repositorio de órdenes en memoria.
type OrderRepository struct{ base }

// NewOrderRepository construye el repositorio sobre el almacén.
func NewOrderRepository(s *Store) *OrderRepository {
	return &OrderRepository{base{store: s}}
}

func (r *OrderRepository) Create(orden *entity.ProductionOrder) error {
	defer r.lock()()
	r.store.ordenes[orden.ID] = *orden
	return nil
}

func (r *OrderRepository) GetByID(id string) (*entity.ProductionOrder, error) {
	defer r.lock()()
	if o, ok := r.store.ordenes[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *OrderRepository) List() ([]entity.ProductionOrder, error) {
	defer r.lock()()
	out := make([]entity.ProductionOrder, 0, len(r.store.ordenes))
	for _, o := range r.store.ordenes {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaProgramada.After(out[j].FechaProgramada) })
	return out, nil
}

func (r *OrderRepository) UpdateEstadoCAS(orden *entity.ProductionOrder, esperado entity.OrderStatus) (bool, error) {
	defer r.lock()()
	actual, ok := r.store.ordenes[orden.ID]
	if !ok || actual.Estado != esperado {
		return false, nil
	}
	r.store.ordenes[orden.ID] = *orden
	return true, nil
}

// ManufacturingLotRepository repositorio de lotes de fabricación en memoria.
type ManufacturingLotRepository struct{ base }

// NewManufacturingLotRepository construye el repositorio sobre el almacén.
func NewManufacturingLotRepository(s *Store) *ManufacturingLotRepository {
	return &ManufacturingLotRepository{base{store: s}}
}

func (r *ManufacturingLotRepository) Create(lote *entity.ManufacturingLot) error {
	defer r.lock()()
	r.store.lotes[lote.ID] = *lote
	return nil
}

func (r *ManufacturingLotRepository) GetByID(id string) (*entity.ManufacturingLot, error) {
	defer r.lock()()
	if l, ok := r.store.lotes[id]; ok {
		return &l, nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex del TxRunner ya
// serializa la transacción completa.
func (r *ManufacturingLotRepository) GetForUpdate(id string) (*entity.ManufacturingLot, error) {
	return r.GetByID(id)
}

func (r *ManufacturingLotRepository) GetActivoPorOrden(ordenID string) (*entity.ManufacturingLot, error) {
	defer r.lock()()
	var activo *entity.ManufacturingLot
	for _, l := range r.store.lotes {
		if l.OrdenProduccionID != ordenID {
			continue
		}
		if l.Estado != entity.LotStatusEnPreparacion && l.Estado != entity.LotStatusEnProceso {
			continue
		}
		lote := l
		if activo == nil || lote.CreatedAt.After(activo.CreatedAt) {
			activo = &lote
		}
	}
	return activo, nil
}

func (r *ManufacturingLotRepository) ListByOrden(ordenID string) ([]entity.ManufacturingLot, error) {
	defer r.lock()()
	var out []entity.ManufacturingLot
	for _, l := range r.store.lotes {
		if l.OrdenProduccionID == ordenID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ManufacturingLotRepository) UpdateEstadoCAS(lote *entity.ManufacturingLot, esperado entity.LotStatus) (bool, error) {
	defer r.lock()()
	actual, ok := r.store.lotes[lote.ID]
	if !ok || actual.Estado != esperado {
		return false, nil
	}
	r.store.lotes[lote.ID] = *lote
	return true, nil
}

func (r *ManufacturingLotRepository) CountByDia(dia time.Time) (int, error) {
	defer r.lock()()
	y, m, d := dia.Date()
	n := 0
	for _, l := range r.store.lotes {
		ly, lm, ld := l.CreatedAt.Date()
		if ly == y && lm == m && ld == d {
			n++
		}
	}
	return n, nil
}

// FinishedLotRepository repositorio de productos terminados en memoria.
type FinishedLotRepository struct{ base }

// NewFinishedLotRepository construye el repositorio sobre el almacén.
func NewFinishedLotRepository(s *Store) *FinishedLotRepository {
	return &FinishedLotRepository{base{store: s}}
}

func (r *FinishedLotRepository) Create(lote *entity.FinishedLot) error {
	defer r.lock()()
	r.store.terminados[lote.ID] = *lote
	return nil
}

func (r *FinishedLotRepository) GetByID(id string) (*entity.FinishedLot, error) {
	defer r.lock()()
	if l, ok := r.store.terminados[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *FinishedLotRepository) ListByLoteFabricacion(loteFabricacionID string) ([]entity.FinishedLot, error) {
	defer r.lock()()
	var out []entity.FinishedLot
	for _, l := range r.store.terminados {
		if l.LoteFabricacionID == loteFabricacionID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ParameterReadingRepository repositorio de lecturas de parámetros en memoria.
type ParameterReadingRepository struct{ base }

// NewParameterReadingRepository construye el repositorio sobre el almacén.
func NewParameterReadingRepository(s *Store) *ParameterReadingRepository {
	return &ParameterReadingRepository{base{store: s}}
}

func (r *ParameterReadingRepository) Create(lectura *entity.ProcessParameterReading) error {
	defer r.lock()()
	r.store.lecturas[lectura.ID] = *lectura
	return nil
}

func (r *ParameterReadingRepository) GetByID(id string) (*entity.ProcessParameterReading, error) {
	defer r.lock()()
	if l, ok := r.store.lecturas[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *ParameterReadingRepository) ListByLote(loteFabricacionID string) ([]entity.ProcessParameterReading, error) {
	defer r.lock()()
	var out []entity.ProcessParameterReading
	for _, l := range r.store.lecturas {
		if l.LoteFabricacionID == loteFabricacionID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaMedicion.Before(out[j].FechaMedicion) })
	return out, nil
}

func (r *ParameterReadingRepository) Update(lectura *entity.ProcessParameterReading) error {
	defer r.lock()()
	r.store.lecturas[lectura.ID] = *lectura
	return nil
}

// ConsumptionRepository repositorio de consumos en memoria.
type ConsumptionRepository struct{ base }

// NewConsumptionRepository construye el repositorio sobre el almacén.
func NewConsumptionRepository(s *Store) *ConsumptionRepository {
	return &ConsumptionRepository{base{store: s}}
}

func (r *ConsumptionRepository) Create(registro *entity.ConsumptionRecord) error {
	defer r.lock()()
	r.store.consumos = append(r.store.consumos, *registro)
	return nil
}

func (r *ConsumptionRepository) ListByLote(loteFabricacionID string) ([]entity.ConsumptionRecord, error) {
	defer r.lock()()
	var out []entity.ConsumptionRecord
	for _, c := range r.store.consumos {
		if c.LoteFabricacionID == loteFabricacionID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FechaRegistro.Before(out[j].FechaRegistro) })
	return out, nil
}
