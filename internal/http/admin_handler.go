package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/service"
)

// AdminHandler provides HTTP handlers for household administration.
type AdminHandler struct {
	admin service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListHouseholds handles GET /api/admin/households requests.
//
// @Summary      List households
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Page size (default 100, max 500)"
// @Param        skip query int false "Households to skip"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.HouseholdResponse} "Households"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid paging"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Security     BearerAuth
// @Router       /api/admin/households [get]
func (h *AdminHandler) ListHouseholds(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit, err := queryInt64(c, "limit")
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	skip, err := queryInt64(c, "skip")
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	households, err := h.admin.ListHouseholds(c.Request.Context(), limit, skip)
	if err != nil {
		builder.Fail(err)
		return
	}

	resp := make([]dto.HouseholdResponse, 0, len(households))
	for _, hh := range households {
		resp = append(resp, dto.NewHouseholdResponse(hh))
	}
	builder.SuccessOK(resp)
}

// HouseholdPantry handles GET /api/admin/households/:name/pantry requests.
//
// @Summary      View household pantry
// @Tags         Admin
// @Produce      json
// @Param        name path string true "Household name"
// @Success      200 {object} dto.SuccessResponse{data=dto.PantryView} "Pantry"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      404 {object} dto.ErrorResponse "Household not found"
// @Security     BearerAuth
// @Router       /api/admin/households/{name}/pantry [get]
func (h *AdminHandler) HouseholdPantry(c *gin.Context) {
	builder := NewResponseBuilder(c)

	view, err := h.admin.HouseholdPantry(c.Request.Context(), c.Param("name"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(view)
}

// ResetPassword handles PUT /api/admin/households/:name/password requests.
//
// @Summary      Reset household password
// @Description  Sets a new password and revokes the household's refresh tokens.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        name path string true "Household name"
// @Param        request body dto.ResetPasswordRequest true "New password"
// @Success      204 "Password reset"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid password"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      404 {object} dto.ErrorResponse "Household not found"
// @Security     BearerAuth
// @Router       /api/admin/households/{name}/password [put]
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	req, ok := bindBody[dto.ResetPasswordRequest](c, builder)
	if !ok {
		return
	}

	if err := h.admin.ResetPassword(c.Request.Context(), name, req.Password); err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionAdmin, "Household password reset", map[string]interface{}{
		"target": name,
	})
	c.Status(http.StatusNoContent)
}

// DeactivateHousehold handles POST /api/admin/households/:name/deactivate requests.
//
// @Summary      Deactivate household
// @Description  Blocks further logins and revokes refresh tokens. Data is kept.
// @Tags         Admin
// @Produce      json
// @Param        name path string true "Household name"
// @Success      204 "Deactivated"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      404 {object} dto.ErrorResponse "Household not found"
// @Security     BearerAuth
// @Router       /api/admin/households/{name}/deactivate [post]
func (h *AdminHandler) DeactivateHousehold(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	if err := h.admin.DeactivateHousehold(c.Request.Context(), name); err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionAdmin, "Household deactivated", map[string]interface{}{
		"target": name,
	})
	c.Status(http.StatusNoContent)
}

// DeleteHousehold handles DELETE /api/admin/households/:name requests.
//
// @Summary      Delete household
// @Description  Removes the household together with its pantry and tokens.
// @Tags         Admin
// @Produce      json
// @Param        name path string true "Household name"
// @Success      204 "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      404 {object} dto.ErrorResponse "Household not found"
// @Security     BearerAuth
// @Router       /api/admin/households/{name} [delete]
func (h *AdminHandler) DeleteHousehold(c *gin.Context) {
	builder := NewResponseBuilder(c)
	name := c.Param("name")

	if err := h.admin.DeleteHousehold(c.Request.Context(), name); err != nil {
		builder.Fail(err)
		return
	}

	audit(c, model.ActionAdmin, "Household deleted", map[string]interface{}{
		"target": name,
	})
	c.Status(http.StatusNoContent)
}

// ListLogs handles GET /api/admin/logs requests.
//
// @Summary      Browse audit trail
// @Description  Returns stored request and audit entries, newest first. Entries are only stored with MongoDB; otherwise the page is empty.
// @Tags         Admin
// @Produce      json
// @Param        household query string false "Household name"
// @Param        action query string false "Action type, e.g. cook"
// @Param        level query string false "Log level"
// @Param        since query string false "RFC 3339 start time"
// @Param        until query string false "RFC 3339 end time"
// @Param        limit query int false "Page size (default 50, max 500)"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.LogPage} "Audit entries"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Security     BearerAuth
// @Router       /api/admin/logs [get]
func (h *AdminHandler) ListLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)
	opts, err := logQuery(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	logs := loggingService(c)
	if logs == nil {
		builder.SuccessOK(dto.LogPage{Entries: []model.LogEntry{}, Limit: opts.Limit, Skip: opts.Skip})
		return
	}
	entries, err := logs.QueryLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	total, err := logs.CountLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.LogPage{Entries: entries, Total: total, Limit: opts.Limit, Skip: opts.Skip})
}

func logQuery(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		HouseholdName: c.Query("household"),
		ActionType:    c.Query("action"),
		Level:         c.Query("level"),
	}
	limit, err := queryInt64(c, "limit")
	if err != nil {
		return opts, err
	}
	skip, err := queryInt64(c, "skip")
	if err != nil {
		return opts, err
	}
	opts.Limit, opts.Skip = int(limit), int(skip)
	for key, dst := range map[string]**time.Time{"since": &opts.StartTime, "until": &opts.EndTime} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, err
		}
		*dst = &t
	}
	return opts, nil
}

func queryInt64(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
