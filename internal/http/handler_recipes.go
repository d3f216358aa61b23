package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
)

// ListRecipes handles GET /api/recipes requests.
//
// @Summary      List recipes
// @Description  Returns the shared recipe catalog sorted by name.
// @Tags         Recipes
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.Recipe} "Recipes"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/recipes [get]
func (h *Handler) ListRecipes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	builder.SuccessOK(recipes)
}

// GetRecipe handles GET /api/recipes/:name requests.
//
// @Summary      Get recipe
// @Tags         Recipes
// @Produce      json
// @Param        name path string true "Recipe name"
// @Success      200 {object} dto.SuccessResponse{data=model.Recipe} "Recipe"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Recipe not found"
// @Security     BearerAuth
// @Router       /api/recipes/{name} [get]
func (h *Handler) GetRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)

	recipe, err := h.recipes.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(recipe)
}

// SaveRecipe handles PUT /api/recipes/:name requests.
//
// @Summary      Create or replace recipe
// @Description  Stores the recipe under the name from the path. Every ingredient quantity must be positive.
// @Tags         Recipes
// @Accept       json
// @Produce      json
// @Param        name path string true "Recipe name"
// @Param        request body dto.SaveRecipeRequest true "Ingredients and instructions"
// @Success      200 {object} dto.SuccessResponse{data=model.Recipe} "Saved recipe"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid recipe"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Security     BearerAuth
// @Router       /api/recipes/{name} [put]
func (h *Handler) SaveRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := decodeBody[dto.SaveRecipeRequest](c, builder)
	if !ok {
		return
	}

	saved, err := h.recipes.Save(c.Request.Context(), req.ToRecipe(c.Param("name")))
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionRecipeSaved, "Recipe saved", map[string]interface{}{
		"recipe":      saved.Name,
		"ingredients": len(saved.Ingredients),
	})
	builder.SuccessOK(saved)
}

// DeleteRecipe handles DELETE /api/recipes/:name requests.
//
// @Summary      Delete recipe
// @Tags         Recipes
// @Produce      json
// @Param        name path string true "Recipe name"
// @Success      204 "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Recipe not found"
// @Security     BearerAuth
// @Router       /api/recipes/{name} [delete]
func (h *Handler) DeleteRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	if err := h.recipes.Delete(c.Request.Context(), name); err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionRecipeDeleted, "Recipe deleted", map[string]interface{}{
		"recipe": name,
	})
	c.Status(http.StatusNoContent)
}

// ImportRecipes handles POST /api/recipes/import requests.
//
// @Summary      Import recipes
// @Description  Imports a YAML recipe file. Every recipe is validated before any is stored.
// @Tags         Recipes
// @Accept       application/x-yaml
// @Produce      json
// @Success      201 {object} dto.SuccessResponse "Number of imported recipes"
// @Failure      400 {object} dto.ErrorResponse "Bad request - malformed or invalid recipes"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Security     BearerAuth
// @Router       /api/recipes/import [post]
func (h *Handler) ImportRecipes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	n, err := h.recipes.ImportYAML(c.Request.Context(), c.Request.Body)
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionRecipeSaved, "Recipes imported", map[string]interface{}{
		"imported": n,
	})
	builder.SuccessCreated(map[string]int{"imported": n})
}
