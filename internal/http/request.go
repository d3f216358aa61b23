package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/i18n"
)

// validator is implemented by request DTOs that check and normalize
// themselves.
type validator interface {
	Validate() error
}

// decodeBody decodes the JSON body into a T. On failure it writes a 400
// and reports false.
func decodeBody[T any](c *gin.Context, b *ResponseBuilder) (*T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return nil, false
	}
	return &req, true
}

// bindBody is decodeBody followed by Validate when *T implements it.
func bindBody[T any](c *gin.Context, b *ResponseBuilder) (*T, bool) {
	req, ok := decodeBody[T](c, b)
	if !ok {
		return nil, false
	}
	if v, isValidator := any(req).(validator); isValidator {
		if err := v.Validate(); err != nil {
			b.Fail(err)
			return nil, false
		}
	}
	return req, true
}
