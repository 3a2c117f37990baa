package production

import (
	"context"
	"fmt"
	"sort"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// TraceabilityUseCase consultas de trazabilidad: qué materias primas entraron a
// un lote de fabricación (directa) y qué lotes de materia prima contribuyeron a
// un producto terminado (inversa). Solo lecturas.
type TraceabilityUseCase struct {
	consumoRepo     repository.ConsumptionRepository
	loteRepo        repository.ManufacturingLotRepository
	terminadoRepo   repository.FinishedLotRepository
	materiaRepo     repository.RawMaterialRepository
	loteMateriaRepo repository.RawMaterialLotRepository
	lecturaRepo     repository.ParameterReadingRepository
}

// NewTraceabilityUseCase construye el caso de uso.
func NewTraceabilityUseCase(
	consumoRepo repository.ConsumptionRepository,
	loteRepo repository.ManufacturingLotRepository,
	terminadoRepo repository.FinishedLotRepository,
	materiaRepo repository.RawMaterialRepository,
	loteMateriaRepo repository.RawMaterialLotRepository,
	lecturaRepo repository.ParameterReadingRepository,
) *TraceabilityUseCase {
	return &TraceabilityUseCase{
		consumoRepo:     consumoRepo,
		loteRepo:        loteRepo,
		terminadoRepo:   terminadoRepo,
		materiaRepo:     materiaRepo,
		loteMateriaRepo: loteMateriaRepo,
		lecturaRepo:     lecturaRepo,
	}
}

// GetTraceability devuelve los consumos del lote y su historial cronológico de
// eventos (ciclo de vida, consumos y lecturas de parámetros).
func (uc *TraceabilityUseCase) GetTraceability(ctx context.Context, loteID string) (*dto.TraceabilityDTO, error) {
	lote, err := uc.loteRepo.GetByID(loteID)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrNotFound
	}
	consumos, err := uc.consumoRepo.ListByLote(loteID)
	if err != nil {
		return nil, err
	}
	lecturas, err := uc.lecturaRepo.ListByLote(loteID)
	if err != nil {
		return nil, err
	}

	out := &dto.TraceabilityDTO{
		LoteFabricacionID: lote.ID,
		CodigoLote:        lote.CodigoLote,
		Consumos:          make([]dto.ConsumptionDTO, 0, len(consumos)),
		Eventos:           make([]dto.TraceEventDTO, 0, len(consumos)+len(lecturas)+3),
	}

	out.Eventos = append(out.Eventos, dto.TraceEventDTO{
		Fecha: lote.CreatedAt, Tipo: "creacion",
		Descripcion: fmt.Sprintf("lote %s creado", lote.CodigoLote),
	})
	if lote.FechaInicio != nil {
		out.Eventos = append(out.Eventos, dto.TraceEventDTO{
			Fecha: *lote.FechaInicio, Tipo: "inicio",
			Descripcion: "inicio de fabricación",
		})
	}
	for i := range consumos {
		c := &consumos[i]
		out.Consumos = append(out.Consumos, dto.FromConsumption(c))
		out.Eventos = append(out.Eventos, dto.TraceEventDTO{
			Fecha: c.FechaRegistro, Tipo: "consumo",
			Descripcion: fmt.Sprintf("consumo de %s %s de materia prima %s", c.CantidadConsumida, c.UnidadMedida, c.MateriaPrimaID),
		})
	}
	for i := range lecturas {
		l := &lecturas[i]
		estado := "en rango"
		if !l.EnRango {
			estado = "fuera de rango"
		}
		out.Eventos = append(out.Eventos, dto.TraceEventDTO{
			Fecha: l.FechaMedicion, Tipo: "parametro",
			Descripcion: fmt.Sprintf("%s = %g %s (%s)", l.Parametro, l.Valor, l.UnidadMedida, estado),
		})
	}
	if lote.FechaFinalizacion != nil {
		tipo := "finalizacion"
		descripcion := "lote finalizado"
		if lote.Estado.String() == "Cancelado" {
			tipo = "cancelacion"
			descripcion = "lote cancelado"
		}
		out.Eventos = append(out.Eventos, dto.TraceEventDTO{
			Fecha: *lote.FechaFinalizacion, Tipo: tipo, Descripcion: descripcion,
		})
	}

	sort.SliceStable(out.Eventos, func(i, j int) bool {
		return out.Eventos[i].Fecha.Before(out.Eventos[j].Fecha)
	})
	return out, nil
}

// GetReverseTraceability recorre desde un lote de producto terminado hacia su
// lote de fabricación y de ahí a cada consumo de materia prima, respondiendo
// qué lotes de materia prima contribuyeron al producto. Acepta también el ID
// del lote de fabricación y resuelve su producto terminado.
func (uc *TraceabilityUseCase) GetReverseTraceability(ctx context.Context, terminadoID string) (*dto.ReverseTraceabilityDTO, error) {
	terminado, err := uc.terminadoRepo.GetByID(terminadoID)
	if err != nil {
		return nil, err
	}
	if terminado == nil {
		terminados, err := uc.terminadoRepo.ListByLoteFabricacion(terminadoID)
		if err != nil {
			return nil, err
		}
		if len(terminados) == 0 {
			return nil, domain.ErrNotFound
		}
		terminado = &terminados[len(terminados)-1]
	}
	lote, err := uc.loteRepo.GetByID(terminado.LoteFabricacionID)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrNotFound
	}
	consumos, err := uc.consumoRepo.ListByLote(lote.ID)
	if err != nil {
		return nil, err
	}

	out := &dto.ReverseTraceabilityDTO{
		LoteProductoTerminadoID: terminado.ID,
		CodigoProductoTerminado: terminado.Codigo,
		LoteFabricacionID:       lote.ID,
		CodigoLoteFabricacion:   lote.CodigoLote,
		MateriasPrimas:          make([]dto.ReverseTraceEntryDTO, 0, len(consumos)),
	}
	for i := range consumos {
		c := &consumos[i]
		entrada := dto.ReverseTraceEntryDTO{
			MateriaPrimaID:     c.MateriaPrimaID,
			LoteMateriaPrimaID: c.LoteMateriaPrimaID,
			CantidadConsumida:  c.CantidadConsumida,
			UnidadMedida:       c.UnidadMedida,
			EtapaProduccion:    c.EtapaProduccion,
			FechaRegistro:      c.FechaRegistro,
		}
		if mp, err := uc.materiaRepo.GetByID(c.MateriaPrimaID); err == nil && mp != nil {
			entrada.Nombre = mp.Nombre
		}
		if c.LoteMateriaPrimaID != nil {
			if lmp, err := uc.loteMateriaRepo.GetByID(*c.LoteMateriaPrimaID); err == nil && lmp != nil {
				entrada.CodigoLoteMateria = lmp.Codigo
			}
		}
		out.MateriasPrimas = append(out.MateriasPrimas, entrada)
	}
	return out, nil
}
