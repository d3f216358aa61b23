package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/i18n"
)

// CheckRecipe handles GET /api/cooking/:name requests.
//
// @Summary      Check recipe
// @Description  Compares every ingredient of the recipe with the summed quantity of all lots whose name contains it (case-insensitive) and reports the shortfall.
// @Tags         Cooking
// @Produce      json
// @Param        name path string true "Recipe name"
// @Success      200 {object} dto.SuccessResponse{data=pantry.Availability} "Availability"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Recipe not found"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/cooking/{name} [get]
func (h *Handler) CheckRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)

	avail, err := h.cooking.Check(c.Request.Context(), householdID(c), c.Param("name"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(avail)
}

// CookRecipe handles POST /api/cooking/:name requests.
//
// @Summary      Cook recipe
// @Description  Deducts the recipe's ingredients from stock. The recipe must be cookable; otherwise nothing changes and the response lists the shortfall in details. Supports idempotency via Idempotency-Key header.
// @Tags         Cooking
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        name path string true "Recipe name"
// @Success      200 {object} dto.SuccessResponse{data=pantry.CookResult} "Cooked"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Recipe not found"
// @Failure      409 {object} dto.ErrorResponse "Not cookable or concurrent update"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/cooking/{name} [post]
func (h *Handler) CookRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	result, err := h.cooking.Cook(c.Request.Context(), householdID(c), name)
	if err != nil {
		auditError(c, model.ActionCook, "Cook rejected", err, map[string]interface{}{
			"recipe": name,
		})
		builder.Fail(err)
		return
	}

	audit(c, model.ActionCook, "Recipe cooked", map[string]interface{}{
		"recipe":   name,
		"consumed": result.Consumed,
		"purged":   len(result.Purged),
	})
	builder.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyCooked, result)
}

// Suggestions handles GET /api/cooking/suggestions requests.
//
// @Summary      Near-expiry suggestions
// @Description  Lists lots expiring within the window and the recipes that would use them up.
// @Tags         Cooking
// @Produce      json
// @Param        days query int false "Window in days (default from configuration)"
// @Success      200 {object} dto.SuccessResponse{data=service.SuggestionResult} "Suggestions"
// @Failure      400 {object} dto.ErrorResponse "Bad request - days is not a number"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/cooking/suggestions [get]
func (h *Handler) Suggestions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		days = n
	}

	result, err := h.cooking.Suggestions(c.Request.Context(), householdID(c), days)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(result)
}
