// Package middleware provides JWT authentication middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/service"
)

// Context keys set by JWTAuth.
const (
	ContextHouseholdID    = "household_id"
	ContextHouseholdName  = "household_name"
	ContextHouseholdRoles = "household_roles"
	ContextClaims         = "household_claims"
)

// JWTAuth returns a middleware that validates JWT tokens.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, key := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, key)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		// Store household information in context
		c.Set(ContextHouseholdID, claims.HouseholdID)
		c.Set(ContextHouseholdName, claims.Name)
		c.Set(ContextHouseholdRoles, claims.Roles)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>". On failure it
// returns the translation key describing the problem.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", i18n.ErrKeyTokenRequired
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", i18n.ErrKeyInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", i18n.ErrKeyTokenRequired
	}
	return token, ""
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}

// ClaimsFromContext returns the claims stored by JWTAuth.
func ClaimsFromContext(c *gin.Context) (*dto.Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*dto.Claims)
	return claims, ok && claims != nil
}
