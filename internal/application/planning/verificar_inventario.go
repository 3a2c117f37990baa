package planning

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cerveceria/produccion-api/internal/domain"
	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/production"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// VerifyInventoryUseCase verifica la disponibilidad de inventario para fabricar
// un volumen con una receta. Lectura pura, sin efectos sobre el stock.
type VerifyInventoryUseCase struct {
	recetaRepo  repository.RecipeRepository
	materiaRepo repository.RawMaterialRepository
}

// NewVerifyInventoryUseCase construye el caso de uso.
func NewVerifyInventoryUseCase(recetaRepo repository.RecipeRepository, materiaRepo repository.RawMaterialRepository) *VerifyInventoryUseCase {
	return &VerifyInventoryUseCase{recetaRepo: recetaRepo, materiaRepo: materiaRepo}
}

// CheckAvailability carga la receta y el stock de sus materias primas y calcula
// el reporte de disponibilidad con el servicio de dominio.
func (uc *VerifyInventoryUseCase) CheckAvailability(ctx context.Context, recetaID string, volumen decimal.Decimal) (*production.AvailabilityReport, error) {
	receta, err := uc.recetaRepo.GetByID(recetaID)
	if err != nil {
		return nil, err
	}
	if receta == nil {
		return nil, domain.ErrNotFound
	}
	stocks, err := uc.cargarStocks(receta)
	if err != nil {
		return nil, err
	}
	return production.ComputeAvailability(receta, volumen, stocks)
}

func (uc *VerifyInventoryUseCase) cargarStocks(receta *entity.Recipe) (map[string]*entity.RawMaterial, error) {
	stocks := make(map[string]*entity.RawMaterial, len(receta.Ingredientes))
	for _, ing := range receta.Ingredientes {
		if _, ok := stocks[ing.MateriaPrimaID]; ok {
			continue
		}
		mp, err := uc.materiaRepo.GetByID(ing.MateriaPrimaID)
		if err != nil {
			return nil, err
		}
		if mp != nil {
			stocks[ing.MateriaPrimaID] = mp
		}
	}
	return stocks, nil
}
