package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/metrics"
	"github.com/guttosm/pantry-service/internal/middleware"
	"github.com/guttosm/pantry-service/internal/service"
)

// Handler provides HTTP handlers for the pantry, shopping list, cooking and
// recipe routes of the authenticated household.
type Handler struct {
	pantries service.PantryService
	cooking  service.CookingService
	recipes  service.RecipeService
	reports  service.ReportService
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithReportService enables the shopping list PDF routes.
func WithReportService(reports service.ReportService) HandlerOption {
	return func(h *Handler) {
		h.reports = reports
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(pantries service.PantryService, cooking service.CookingService, recipes service.RecipeService, opts ...HandlerOption) *Handler {
	h := &Handler{
		pantries: pantries,
		cooking:  cooking,
		recipes:  recipes,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// householdID returns the household authenticated by JWTAuth.
func householdID(c *gin.Context) string {
	return c.GetString(middleware.ContextHouseholdID)
}

// loggingService returns the audit sink placed on the context by the router.
func loggingService(c *gin.Context) service.LoggingService {
	if v, exists := c.Get("logging_service"); exists {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}

func audit(c *gin.Context, action, message string, fields map[string]interface{}) {
	middleware.AuditLog(loggingService(c), c, action, message, fields)
}

func auditError(c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	middleware.AuditLogError(loggingService(c), c, action, message, err, fields)
}

// GetPantry handles GET /api/pantry requests.
//
// @Summary      Get pantry
// @Description  Returns the household's stock grouped by storage location. Each lot carries the days until expiry and a traffic-light status (expired, critical, warning, fresh, none).
// @Tags         Pantry
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.PantryView} "Pantry"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/pantry [get]
func (h *Handler) GetPantry(c *gin.Context) {
	builder := NewResponseBuilder(c)

	view, err := h.pantries.Get(c.Request.Context(), householdID(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(view)
}

// AddLot handles POST /api/pantry/lots requests.
//
// @Summary      Add stock lot
// @Description  Adds a lot to the pantry. Lots with the same name are never merged. Supports idempotency via Idempotency-Key header.
// @Tags         Pantry
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.AddLotRequest true "Lot"
// @Success      201 {object} dto.SuccessResponse{data=model.Lot} "Lot added"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent update"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/pantry/lots [post]
func (h *Handler) AddLot(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := decodeBody[dto.AddLotRequest](c, builder)
	if !ok {
		return
	}

	lot, err := req.Validate()
	if err != nil {
		metrics.RecordPantryOperation("add_lot", "validation_error")
		builder.Fail(err)
		return
	}

	added, err := h.pantries.AddLot(c.Request.Context(), householdID(c), lot)
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionLotAdded, "Lot added", map[string]interface{}{
		"lot_id":   added.ID,
		"name":     added.Name,
		"quantity": added.Quantity,
		"location": added.Location,
	})
	builder.SuccessWithMessage(http.StatusCreated, i18n.SuccessKeyLotAdded, added)
}

// RemoveLot handles DELETE /api/pantry/lots/:id requests.
//
// @Summary      Remove stock lot
// @Description  Deletes a lot entered by mistake. The discard statistics are not touched.
// @Tags         Pantry
// @Produce      json
// @Param        id path string true "Lot ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Lot} "Removed lot"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Lot not found"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/pantry/lots/{id} [delete]
func (h *Handler) RemoveLot(c *gin.Context) {
	builder := NewResponseBuilder(c)

	lot, err := h.pantries.RemoveLot(c.Request.Context(), householdID(c), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionLotRemoved, "Lot removed", map[string]interface{}{
		"lot_id": lot.ID,
		"name":   lot.Name,
	})
	builder.SuccessOK(lot)
}

// DiscardLot handles POST /api/pantry/lots/:id/discard requests.
//
// @Summary      Discard stock lot
// @Description  Deletes a lot that was thrown away and increments the discarded counter.
// @Tags         Pantry
// @Produce      json
// @Param        id path string true "Lot ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Lot} "Discarded lot"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Lot not found"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/pantry/lots/{id}/discard [post]
func (h *Handler) DiscardLot(c *gin.Context) {
	builder := NewResponseBuilder(c)

	lot, err := h.pantries.DiscardLot(c.Request.Context(), householdID(c), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionLotDiscarded, "Lot discarded", map[string]interface{}{
		"lot_id":   lot.ID,
		"name":     lot.Name,
		"quantity": lot.Quantity,
	})
	builder.SuccessOK(lot)
}

// Decrement handles POST /api/pantry/decrement requests.
//
// @Summary      Take stock out
// @Description  Removes an amount from every lot whose name contains the given name (case-insensitive), draining lots in the configured deduction order. Lots reaching zero are purged. The part that could not be taken is returned as unsatisfied. Supports idempotency via Idempotency-Key header.
// @Tags         Pantry
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.DecrementRequest true "Name and amount"
// @Success      200 {object} dto.SuccessResponse{data=pantry.Deduction} "Deduction"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent update"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - store failing"
// @Security     BearerAuth
// @Router       /api/pantry/decrement [post]
func (h *Handler) Decrement(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := decodeBody[dto.DecrementRequest](c, builder)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		metrics.RecordPantryOperation("decrement", "validation_error")
		builder.Fail(err)
		return
	}

	result, err := h.pantries.Decrement(c.Request.Context(), householdID(c), req.Name, req.Amount)
	if err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionDecrement, "Stock decremented", map[string]interface{}{
		"name":        req.Name,
		"requested":   result.Requested,
		"unsatisfied": result.Unsatisfied,
		"purged":      len(result.Purged),
	})
	builder.SuccessOK(result)
}
