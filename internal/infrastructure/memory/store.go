package memory

import (
	"sync"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
)

// Store almacenamiento en memoria compartido por los repositorios de este
// paquete. Un solo mutex protege todo el estado; el TxRunner lo retiene durante
// la transacción completa, de modo que verificación y escritura son atómicas
// igual que con bloqueo de fila en PostgreSQL.
type Store struct {
	mu sync.Mutex

	recetas      map[string]entity.Recipe
	materias     map[string]entity.RawMaterial
	lotesMateria map[string]entity.RawMaterialLot
	ordenes      map[string]entity.ProductionOrder
	lotes        map[string]entity.ManufacturingLot
	terminados   map[string]entity.FinishedLot
	lecturas     map[string]entity.ProcessParameterReading
	consumos     []entity.ConsumptionRecord
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		recetas:      make(map[string]entity.Recipe),
		materias:     make(map[string]entity.RawMaterial),
		lotesMateria: make(map[string]entity.RawMaterialLot),
		ordenes:      make(map[string]entity.ProductionOrder),
		lotes:        make(map[string]entity.ManufacturingLot),
		terminados:   make(map[string]entity.FinishedLot),
		lecturas:     make(map[string]entity.ProcessParameterReading),
	}
}

// SeedReceta carga una receta (datos de prueba o arranque).
func (s *Store) SeedReceta(r entity.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recetas[r.ID] = r
}

// SeedMateriaPrima carga una materia prima.
func (s *Store) SeedMateriaPrima(m entity.RawMaterial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materias[m.ID] = m
}

// SeedLoteMateriaPrima carga un lote de materia prima.
func (s *Store) SeedLoteMateriaPrima(l entity.RawMaterialLot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lotesMateria[l.ID] = l
}

// snapshot copia el estado mutable para poder restaurarlo si la transacción falla.
func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		materias:     make(map[string]entity.RawMaterial, len(s.materias)),
		lotesMateria: make(map[string]entity.RawMaterialLot, len(s.lotesMateria)),
		ordenes:      make(map[string]entity.ProductionOrder, len(s.ordenes)),
		lotes:        make(map[string]entity.ManufacturingLot, len(s.lotes)),
		terminados:   make(map[string]entity.FinishedLot, len(s.terminados)),
		consumos:     make([]entity.ConsumptionRecord, len(s.consumos)),
	}
	for k, v := range s.materias {
		snap.materias[k] = v
	}
	for k, v := range s.lotesMateria {
		snap.lotesMateria[k] = v
	}
	for k, v := range s.ordenes {
		snap.ordenes[k] = v
	}
	for k, v := range s.lotes {
		snap.lotes[k] = v
	}
	for k, v := range s.terminados {
		snap.terminados[k] = v
	}
	copy(snap.consumos, s.consumos)
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.materias = snap.materias
	s.lotesMateria = snap.lotesMateria
	s.ordenes = snap.ordenes
	s.lotes = snap.lotes
	s.terminados = snap.terminados
	s.consumos = snap.consumos
}

type storeSnapshot struct {
	materias     map[string]entity.RawMaterial
	lotesMateria map[string]entity.RawMaterialLot
	ordenes      map[string]entity.ProductionOrder
	lotes        map[string]entity.ManufacturingLot
	terminados   map[string]entity.FinishedLot
	consumos     []entity.ConsumptionRecord
}
