package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cerveceria/produccion-api/internal/application/dto"
	"github.com/cerveceria/produccion-api/internal/domain/repository"
)

// CatalogHandler expone las consultas de catálogo: recetas y materias primas.
type CatalogHandler struct {
	recetas  repository.RecipeRepository
	materias repository.RawMaterialRepository
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(recetas repository.RecipeRepository, materias repository.RawMaterialRepository) *CatalogHandler {
	return &CatalogHandler{recetas: recetas, materias: materias}
}

// ListRecipes godoc
// @Summary      Listar recetas
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/recetas [get]
func (h *CatalogHandler) ListRecipes(c *fiber.Ctx) error {
	recetas, err := h.recetas.List()
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.RecipeResponse, 0, len(recetas))
	for i := range recetas {
		out = append(out, dto.FromRecipe(&recetas[i]))
	}
	return c.JSON(dto.OK(out))
}

// GetRecipe godoc
// @Summary      Obtener receta por ID
// @Tags         catalogo
// @Produce      json
// @Param        id   path      string  true  "ID de la receta"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id} [get]
func (h *CatalogHandler) GetRecipe(c *fiber.Ctx) error {
	receta, err := h.recetas.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OK(dto.FromRecipe(receta)))
}

// ListRawMaterials godoc
// @Summary      Listar materias primas
// @Description  Incluye el indicador bajoMinimo cuando el stock actual está
//	por debajo del mínimo configurado.
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/materias-primas [get]
func (h *CatalogHandler) ListRawMaterials(c *fiber.Ctx) error {
	materias, err := h.materias.List()
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.RawMaterialDTO, 0, len(materias))
	for i := range materias {
		out = append(out, dto.FromRawMaterial(&materias[i]))
	}
	return c.JSON(dto.OK(out))
}
