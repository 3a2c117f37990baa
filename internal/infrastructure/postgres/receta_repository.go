package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cerveceria/produccion-api/internal/domain/entity"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByID obtiene una receta con sus ingredientes y etapas.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `
		SELECT id, nombre, estilo, volumen_lote_objetivo, unidad_volumen, version, activa, created_at
		FROM recetas WHERE id = $1`
	var receta entity.Recipe
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&receta.ID, &receta.Nombre, &receta.Estilo, &receta.VolumenLoteObjetivo,
		&receta.UnidadVolumen, &receta.Version, &receta.Activa, &receta.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receta: %w", err)
	}
	if err := r.cargarHijos(&receta); err != nil {
		return nil, err
	}
	return &receta, nil
}

// List lista las recetas con sus ingredientes y etapas.
func (r *RecipeRepo) List() ([]entity.Recipe, error) {
	query := `
		SELECT id, nombre, estilo, volumen_lote_objetivo, unidad_volumen, version, activa, created_at
		FROM recetas ORDER BY nombre, version`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list recetas: %w", err)
	}
	defer rows.Close()

	var recetas []entity.Recipe
	for rows.Next() {
		var receta entity.Recipe
		if err := rows.Scan(
			&receta.ID, &receta.Nombre, &receta.Estilo, &receta.VolumenLoteObjetivo,
			&receta.UnidadVolumen, &receta.Version, &receta.Activa, &receta.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan receta: %w", err)
		}
		recetas = append(recetas, receta)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list recetas: %w", rows.Err())
	}
	for i := range recetas {
		if err := r.cargarHijos(&recetas[i]); err != nil {
			return nil, err
		}
	}
	return recetas, nil
}

func (r *RecipeRepo) cargarHijos(receta *entity.Recipe) error {
	ingQuery := `
		SELECT materia_prima_id, etapa_produccion, cantidad_por_lote, unidad_medida, orden, tiempo_adicion, unidad_tiempo
		FROM receta_ingredientes WHERE receta_id = $1 ORDER BY orden`
	rows, err := r.q.Query(context.Background(), ingQuery, receta.ID)
	if err != nil {
		return fmt.Errorf("list ingredientes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.RecipeIngredient
		var unidadTiempo *string
		if err := rows.Scan(&ing.MateriaPrimaID, &ing.Etapa, &ing.CantidadPorLote, &ing.Unidad, &ing.Orden, &ing.TiempoAdicion, &unidadTiempo); err != nil {
			return fmt.Errorf("scan ingrediente: %w", err)
		}
		if unidadTiempo != nil {
			ing.UnidadTiempo = *unidadTiempo
		}
		receta.Ingredientes = append(receta.Ingredientes, ing)
	}
	if rows.Err() != nil {
		return fmt.Errorf("list ingredientes: %w", rows.Err())
	}

	etQuery := `
		SELECT etapa, duracion_horas, orden, es_preparacion
		FROM receta_etapas WHERE receta_id = $1 ORDER BY orden`
	etRows, err := r.q.Query(context.Background(), etQuery, receta.ID)
	if err != nil {
		return fmt.Errorf("list etapas: %w", err)
	}
	defer etRows.Close()
	for etRows.Next() {
		var et entity.RecipeStage
		if err := etRows.Scan(&et.Etapa, &et.DuracionHoras, &et.Orden, &et.EsPreparacion); err != nil {
			return fmt.Errorf("scan etapa: %w", err)
		}
		receta.Etapas = append(receta.Etapas, et)
	}
	if etRows.Err() != nil {
		return fmt.Errorf("list etapas: %w", etRows.Err())
	}
	return nil
}
