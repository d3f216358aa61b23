// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/http"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/middleware"
)

// tokenCleanupInterval is how often expired refresh and blacklist tokens
// are removed.
const tokenCleanupInterval = time.Hour

// Application is the wired service.
type Application struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents

	stopCleanup context.CancelFunc
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(ctx context.Context, cfg config.Config) (*Application, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)
	i18n.SetFallbackLocale(cfg.Server.Language)

	db, err := InitializeDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	services, err := InitializeServices(ctx, cfg, db)
	if err != nil {
		return nil, errors.Join(err, db.Close(ctx))
	}

	if err := initializeDefaultRolesAndAdmin(ctx, services.Roles, services.Admin, cfg.Auth); err != nil {
		return nil, errors.Join(err, db.Close(ctx))
	}
	seedRecipes(ctx, services.Recipes, cfg.Recipes.SeedFile)

	if db.LoggingService != nil {
		middleware.InitAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents := InitializeRouter(services, db, cfg)
	router := http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)

	cleanupCtx, stop := context.WithCancel(context.Background())
	go cleanupTokens(cleanupCtx, db.TokenRepo, tokenCleanupInterval)

	return &Application{
		Router:      router,
		Services:    services,
		Database:    db,
		stopCleanup: stop,
	}, nil
}

// Close stops background work, flushes pending audit entries and closes
// the storage connection.
func (a *Application) Close(ctx context.Context) error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	middleware.StopAsyncLogger()
	return a.Database.Close(ctx)
}

type tokenCleaner interface {
	CleanupExpired(ctx context.Context) error
}

func cleanupTokens(ctx context.Context, repo tokenCleaner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := repo.CleanupExpired(runCtx); err != nil {
				log.Warn().Err(err).Msg("Failed to clean up expired tokens")
			}
			cancel()
		}
	}
}
