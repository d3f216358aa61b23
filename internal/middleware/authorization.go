// Package middleware provides authorization middleware based on roles and permissions.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/service"
)

// AuthorizationConfig configures authorization requirements for a route.
type AuthorizationConfig struct {
	// RequiredRoles lists role names allowed to access the route.
	// If empty, any authenticated household can access.
	RequiredRoles []string
	// RequiredPermissions lists permissions granted through roles.
	// The household must hold at least one of them.
	RequiredPermissions []string
	// RequireAllPermissions if true, the household must hold ALL permissions.
	RequireAllPermissions bool
}

// RequireAuthorization returns a middleware that checks if the household has the required roles/permissions.
// This middleware must be used after JWTAuth middleware.
func RequireAuthorization(cfg AuthorizationConfig, roleService service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			abortUnauthorized(c, i18n.ErrKeyUnauthorized)
			return
		}

		if len(cfg.RequiredRoles) > 0 && !hasAnyRole(claims, cfg.RequiredRoles) {
			abortForbidden(c)
			return
		}

		if len(cfg.RequiredPermissions) > 0 {
			granted := make(map[string]bool)
			if roleService != nil {
				roles, err := roleService.FindByNames(c.Request.Context(), claims.Roles)
				if err != nil {
					log.Warn().Err(err).
						Str("household_id", claims.HouseholdID).
						Msg("Failed to load roles for authorization")
				}
				for _, role := range roles {
					if role == nil || !role.Active {
						continue
					}
					for _, p := range role.Permissions {
						granted[p] = true
					}
				}
			}

			if !permitted(granted, cfg.RequiredPermissions, cfg.RequireAllPermissions) {
				abortForbidden(c)
				return
			}
		}

		c.Next()
	}
}

func hasAnyRole(claims *dto.Claims, roles []string) bool {
	for _, r := range roles {
		if claims.HasRole(r) {
			return true
		}
	}
	return false
}

func permitted(granted map[string]bool, required []string, all bool) bool {
	for _, p := range required {
		if granted[p] && !all {
			return true
		}
		if !granted[p] && all {
			return false
		}
	}
	return all
}

func abortForbidden(c *gin.Context) {
	message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeForbidden, message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusForbidden, errorResp)
}
