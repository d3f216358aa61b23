package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/middleware"
	"github.com/guttosm/pantry-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService),
		authService: authService,
	}
}

// RegisterPublicRoutes registers public authentication routes.
// These routes don't require authentication.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
		auth.POST("/register", r.handler.Register)
		auth.POST("/refresh", r.handler.RefreshToken)
	}
}

// RegisterProtectedRoutes registers protected authentication routes.
func (r *AuthRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, _ *RouterConfig) {
	protected.POST("/auth/logout", r.handler.Logout)
}

// GetProtectedGroup returns a router group with JWT auth applied, followed
// by the optional middleware enabled in cfg. Rate limiting and idempotency
// key on the household id JWTAuth puts on the context.
func (r *AuthRoutes) GetProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService))

	if cfg.RateLimit > 0 {
		householdLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(householdLimiter.HouseholdRateLimit())
	}

	if cfg.EnableIdempotency {
		protected.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}

	if cfg.RequestTimeout > 0 {
		protected.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	return protected
}
