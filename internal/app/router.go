// Package app provides router configuration.
package app

import (
	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/http"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(
		services.Pantry,
		services.Cooking,
		services.Recipes,
		http.WithReportService(services.Reports),
	)

	healthHandler := http.NewHealthHandler()
	for _, cb := range db.CircuitBreakers {
		healthHandler.RegisterCircuitBreaker(cb.Name(), cb)
	}
	if db.Ping != nil {
		healthHandler.RegisterChecker(db.Backend, http.HealthCheckFunc(db.Ping))
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableIdempotency: true,
		RequestTimeout:    cfg.Server.RequestTimeout,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    db.LoggingService,
		AuthService:       services.Auth,
		RoleService:       services.Roles,
		AdminService:      services.Admin,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
