package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/middleware"
	"github.com/guttosm/pantry-service/internal/service"
)

// GetShoppingList handles GET /api/shopping-list requests.
//
// @Summary      Get shopping list
// @Tags         Shopping
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.ShoppingListResponse} "Shopping list"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/shopping-list [get]
func (h *Handler) GetShoppingList(c *gin.Context) {
	builder := NewResponseBuilder(c)

	entries, err := h.pantries.ShoppingList(c.Request.Context(), householdID(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.ShoppingListResponse{Entries: entries})
}

// AddShoppingEntry handles POST /api/shopping-list requests.
//
// @Summary      Add shopping list entry
// @Description  Appends a free-text entry. Manual entries are not deduplicated.
// @Tags         Shopping
// @Accept       json
// @Produce      json
// @Param        request body dto.ShoppingEntryRequest true "Entry"
// @Success      201 {object} dto.SuccessResponse{data=dto.ShoppingListResponse} "Updated list"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/shopping-list [post]
func (h *Handler) AddShoppingEntry(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindBody[dto.ShoppingEntryRequest](c, builder)
	if !ok {
		return
	}

	entries, err := h.pantries.AddShoppingEntry(c.Request.Context(), householdID(c), req.Entry)
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionShoppingAdd, "Shopping list entry added", map[string]interface{}{
		"entry": req.Entry,
	})
	builder.SuccessWithMessage(http.StatusCreated, i18n.SuccessKeyShoppingAdded, dto.ShoppingListResponse{Entries: entries})
}

// RemoveShoppingEntry handles DELETE /api/shopping-list/:index requests.
//
// @Summary      Remove shopping list entry
// @Description  Removes the entry at the zero-based index.
// @Tags         Shopping
// @Produce      json
// @Param        index path int true "Zero-based entry index"
// @Success      200 {object} dto.SuccessResponse{data=dto.ShoppingListResponse} "Removed entry"
// @Failure      400 {object} dto.ErrorResponse "Bad request - index is not a number"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "No entry at index"
// @Security     BearerAuth
// @Router       /api/shopping-list/{index} [delete]
func (h *Handler) RemoveShoppingEntry(c *gin.Context) {
	builder := NewResponseBuilder(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	removed, err := h.pantries.RemoveShoppingEntry(c.Request.Context(), householdID(c), index)
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionShoppingRemove, "Shopping list entry removed", map[string]interface{}{
		"entry": removed,
		"index": index,
	})
	builder.SuccessOK(dto.ShoppingListResponse{Entries: []string{removed}})
}

// AddMissingToShopping handles POST /api/shopping-list/missing/:name requests.
//
// @Summary      Add missing ingredients
// @Description  Appends every ingredient the recipe is short of, with the missing quantity in parentheses. Ingredients already on the list are skipped.
// @Tags         Shopping
// @Produce      json
// @Param        name path string true "Recipe name"
// @Success      200 {object} dto.SuccessResponse{data=dto.ShoppingAddResponse} "Added entries"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Recipe not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent update"
// @Security     BearerAuth
// @Router       /api/shopping-list/missing/{name} [post]
func (h *Handler) AddMissingToShopping(c *gin.Context) {
	builder := NewResponseBuilder(c)
	recipe := c.Param("name")

	resp, err := h.pantries.AddMissingToShopping(c.Request.Context(), householdID(c), recipe)
	if err != nil {
		builder.Fail(err)
		return
	}

	if len(resp.Added) == 0 {
		builder.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyShoppingExists, resp)
		return
	}
	audit(c, model.ActionShoppingAdd, "Missing ingredients added to shopping list", map[string]interface{}{
		"recipe": recipe,
		"added":  resp.Added,
	})
	builder.SuccessWithMessage(http.StatusOK, i18n.SuccessKeyShoppingAdded, resp)
}

// ShoppingListPDF handles GET /api/shopping-list/report.pdf requests.
//
// @Summary      Download shopping list
// @Description  Renders the shopping list as an A4 PDF.
// @Tags         Shopping
// @Produce      application/pdf
// @Success      200 {file} binary "PDF document"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - reports disabled"
// @Security     BearerAuth
// @Router       /api/shopping-list/report.pdf [get]
func (h *Handler) ShoppingListPDF(c *gin.Context) {
	builder := NewResponseBuilder(c)
	if h.reports == nil {
		builder.Fail(service.ErrReportSinkNotConfigured)
		return
	}

	title := i18n.GetTranslator().Translate(i18n.ReportKeyShoppingTitle, i18n.GetLocale(c))
	doc, err := h.reports.ShoppingListPDF(c.Request.Context(), householdID(c), title)
	if err != nil {
		builder.Fail(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping-list.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// ExportShoppingList handles POST /api/shopping-list/report requests.
//
// @Summary      Export shopping list
// @Description  Renders the shopping list as a PDF and stores it in the configured report sink (directory or S3 bucket).
// @Tags         Shopping
// @Produce      json
// @Success      201 {object} dto.SuccessResponse{data=dto.ReportExportResponse} "Stored location"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - no report sink"
// @Security     BearerAuth
// @Router       /api/shopping-list/report [post]
func (h *Handler) ExportShoppingList(c *gin.Context) {
	builder := NewResponseBuilder(c)
	if h.reports == nil {
		builder.Fail(service.ErrReportSinkNotConfigured)
		return
	}

	title := i18n.GetTranslator().Translate(i18n.ReportKeyShoppingTitle, i18n.GetLocale(c))
	location, err := h.reports.ExportShoppingList(c.Request.Context(), householdID(c),
		c.GetString(middleware.ContextHouseholdName), title)
	if err != nil {
		if !errors.Is(err, service.ErrReportSinkNotConfigured) {
			auditError(c, model.ActionReportExported, "Shopping list export failed", err, nil)
		}
		builder.Fail(err)
		return
	}

	audit(c, model.ActionReportExported, "Shopping list exported", map[string]interface{}{
		"location": location,
	})
	builder.SuccessWithMessage(http.StatusCreated, i18n.SuccessKeyReportExported, dto.ReportExportResponse{Location: location})
}
