package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/pantry-service/internal/circuitbreaker"
	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/middleware"
	"github.com/guttosm/pantry-service/internal/pantry"
	"github.com/guttosm/pantry-service/internal/repository"
	"github.com/guttosm/pantry-service/internal/repository/document"
	"github.com/guttosm/pantry-service/internal/service"
)

func newTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	middleware.RequestID()(c)
	return c, w
}

func TestResponseBuilder_Success(t *testing.T) {
	tests := []struct {
		name        string
		write       func(*ResponseBuilder)
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "ok",
			write:      func(b *ResponseBuilder) { b.SuccessOK(dto.ShoppingListResponse{Entries: []string{"Butter"}}) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "created",
			write:      func(b *ResponseBuilder) { b.SuccessCreated(map[string]string{"id": "lot-1"}) },
			wantStatus: http.StatusCreated,
		},
		{
			name: "with message",
			write: func(b *ResponseBuilder) {
				b.SuccessWithMessage(http.StatusCreated, i18n.SuccessKeyLotAdded, map[string]string{"id": "lot-1"})
			},
			wantStatus:  http.StatusCreated,
			wantMessage: "Lot added",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodPost, "")

			tt.write(NewResponseBuilder(c))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp dto.SuccessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotNil(t, resp.Data)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, middleware.GetRequestID(c), resp.RequestID)
			assert.False(t, resp.Timestamp.IsZero())
		})
	}
}

func TestResponseBuilder_ErrorLocalized(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "")
	c.Request.Header.Set("Accept-Language", "de-DE,de;q=0.9")

	NewResponseBuilder(c).Error(http.StatusNotFound, i18n.ErrKeyLotNotFound, pantry.ErrLotNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error)
	assert.Equal(t, i18n.GetTranslator().Translate(i18n.ErrKeyLotNotFound, "de"), resp.Message)
	assert.NotEmpty(t, resp.RequestID)
	require.Len(t, c.Errors, 1)
}

func TestResponseBuilder_Fail(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectStatus int
		expectCode   string
	}{
		{"validation", &dto.ValidationError{Field: "amount", Message: "must be greater than zero"}, http.StatusBadRequest, dto.ErrCodeInvalidRequest},
		{"invalid lot", fmt.Errorf("%w: quantity must be positive", pantry.ErrInvalidLot), http.StatusBadRequest, dto.ErrCodeInvalidRequest},
		{"malformed recipe file", fmt.Errorf("%w: yaml: line 2", service.ErrMalformedRecipeFile), http.StatusBadRequest, dto.ErrCodeInvalidRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"lot not found", pantry.ErrLotNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"recipe not found", service.ErrRecipeNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"shopping index", service.ErrShoppingIndex, http.StatusNotFound, dto.ErrCodeNotFound},
		{"household exists", service.ErrHouseholdExists, http.StatusConflict, dto.ErrCodeConflict},
		{"version conflict after retries", fmt.Errorf("cook after 4 attempts: %w", repository.ErrVersionConflict), http.StatusConflict, dto.ErrCodeConflict},
		{"insufficient stock", pantry.ErrInsufficientStock, http.StatusConflict, dto.ErrCodeConflict},
		{"storage deadline", fmt.Errorf("load pantry: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, dto.ErrCodeTimeout},
		{"circuit open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, dto.ErrCodeUnavailable},
		{"backend unavailable", fmt.Errorf("save dataset: %w", document.ErrBackendUnavailable), http.StatusServiceUnavailable, dto.ErrCodeUnavailable},
		{"mongo network error", mongo.CommandError{Labels: []string{"NetworkError"}}, http.StatusServiceUnavailable, dto.ErrCodeUnavailable},
		{"no report sink", service.ErrReportSinkNotConfigured, http.StatusServiceUnavailable, dto.ErrCodeUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodPost, "")

			NewResponseBuilder(c).Fail(tt.err)

			assert.Equal(t, tt.expectStatus, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestResponseBuilder_FailShortfall(t *testing.T) {
	c, w := newTestContext(http.MethodPost, "")

	err := &pantry.ShortfallError{
		Recipe:    "Pfannkuchen",
		Shortfall: map[string]float64{"Eier": 1, "Milch": 0.5},
	}
	NewResponseBuilder(c).Fail(fmt.Errorf("cook: %w", err))

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeNotCookable, resp.Error)
	assert.Equal(t, map[string]interface{}{"Eier": 1.0, "Milch": 0.5}, resp.Details)
	assert.NotEmpty(t, resp.RequestID)
}
