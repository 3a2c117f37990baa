package repository

import "github.com/cerveceria/produccion-api/internal/domain/entity"

// RecipeRepository puerto de lectura de recetas con sus ingredientes y etapas.
// Las recetas referenciadas por órdenes son inmutables; este core solo las consulta.
type RecipeRepository interface {
	GetByID(id string) (*entity.Recipe, error)
	List() ([]entity.Recipe, error)
}
