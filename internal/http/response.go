package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
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

// ResponseBuilder writes the JSON envelopes of the API, localized for the
// request's Accept-Language.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

func (b *ResponseBuilder) translate(key string) string {
	return i18n.GetTranslator().Translate(key, i18n.GetLocale(b.c))
}

// Success writes data in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	})
}

// SuccessOK writes data with 200.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes data with 201.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// SuccessWithMessage writes data together with a translated confirmation.
func (b *ResponseBuilder) SuccessWithMessage(statusCode int, messageKey string, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		Message:   b.translate(messageKey),
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	})
}

// Error aborts with the error code for statusCode and the translated
// message. err is attached to the context for ErrorHandler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, dto.NewError(dto.ErrCodeFromStatus(statusCode), b.translate(messageKey)), err)
}

// ErrorWithMessage aborts with a message that is already final, such as a
// validation error naming its field.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, dto.NewError(dto.ErrCodeFromStatus(statusCode), message), err)
}

// ErrorWithDetails aborts with an explicit code and details.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, code, messageKey string, details map[string]interface{}, err error) {
	b.abort(statusCode, dto.NewError(code, b.translate(messageKey)).WithDetails(details), err)
}

func (b *ResponseBuilder) abort(statusCode int, resp dto.ErrorResponse, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp.WithRequestID(middleware.GetRequestID(b.c)))
}

// errorMapping pairs a sentinel error with its HTTP status and message key.
type errorMapping struct {
	target error
	status int
	key    string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{pantry.ErrInvalidLot, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
	{pantry.ErrInvalidAmount, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
	{service.ErrInvalidRecipe, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
	{service.ErrInvalidEntry, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
	{service.ErrMalformedRecipeFile, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials},
	{service.ErrInvalidToken, http.StatusUnauthorized, i18n.ErrKeyInvalidToken},
	{pantry.ErrLotNotFound, http.StatusNotFound, i18n.ErrKeyLotNotFound},
	{service.ErrRecipeNotFound, http.StatusNotFound, i18n.ErrKeyRecipeNotFound},
	{service.ErrHouseholdNotFound, http.StatusNotFound, i18n.ErrKeyHouseholdNotFound},
	{service.ErrShoppingIndex, http.StatusNotFound, i18n.ErrKeyShoppingIndex},
	{pantry.ErrInsufficientStock, http.StatusConflict, i18n.ErrKeyInsufficientStock},
	{repository.ErrVersionConflict, http.StatusConflict, i18n.ErrKeyVersionConflict},
	{service.ErrHouseholdExists, http.StatusConflict, i18n.ErrKeyHouseholdExists},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
	{circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyStoreUnavailable},
	{document.ErrBackendUnavailable, http.StatusServiceUnavailable, i18n.ErrKeyStoreUnavailable},
	{service.ErrReportSinkNotConfigured, http.StatusServiceUnavailable, i18n.ErrKeyReportUnavailable},
}

// Fail maps err to an HTTP error response. Validation errors carry their
// field message; shortfalls carry the missing quantities as details.
func (b *ResponseBuilder) Fail(err error) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		b.ErrorWithMessage(http.StatusBadRequest, validationErr.Error(), err)
		return
	}

	var shortfall *pantry.ShortfallError
	if errors.As(err, &shortfall) {
		details := make(map[string]interface{}, len(shortfall.Shortfall))
		for name, missing := range shortfall.Shortfall {
			details[name] = missing
		}
		b.ErrorWithDetails(http.StatusConflict, dto.ErrCodeNotCookable, i18n.ErrKeyNotCookable, details, err)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			b.Error(m.status, m.key, err)
			return
		}
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		b.Error(http.StatusServiceUnavailable, i18n.ErrKeyStoreUnavailable, err)
		return
	}
	b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}
