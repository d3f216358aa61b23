// Package app provides storage initialization and setup.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/circuitbreaker"
	"github.com/guttosm/pantry-service/internal/metrics"
	"github.com/guttosm/pantry-service/internal/repository"
	"github.com/guttosm/pantry-service/internal/repository/document"
	"github.com/guttosm/pantry-service/internal/service"
)

// DatabaseComponents holds the repositories of the selected storage
// backend and what is needed to monitor and close it.
type DatabaseComponents struct {
	Backend        string
	PantryRepo     repository.PantryRepositoryInterface
	RecipeRepo     repository.RecipeRepositoryInterface
	HouseholdRepo  repository.HouseholdRepositoryInterface
	RoleRepo       repository.RoleRepositoryInterface
	TokenRepo      repository.TokenRepositoryInterface
	LoggingService service.LoggingService
	// CircuitBreakers are exposed on /readyz by name.
	CircuitBreakers []*circuitbreaker.CircuitBreaker
	// Ping reports whether the backend is reachable.
	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}

// InitializeDatabase connects the configured storage. MongoDB is used when
// enabled, otherwise the document store on the file or HTTP backend.
// Audit logs are only persisted with MongoDB.
func InitializeDatabase(ctx context.Context, cfg config.Config) (*DatabaseComponents, error) {
	if cfg.Database.Enabled {
		return initializeMongoDB(ctx, cfg.Database)
	}
	return initializeDocumentStore(cfg)
}

func initializeMongoDB(ctx context.Context, cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	pantriesCB := newCircuitBreaker(cfg, "mongodb-pantries")
	recipesCB := newCircuitBreaker(cfg, "mongodb-recipes")
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		Backend:         "mongodb",
		PantryRepo:      repository.NewPantryRepositoryWithCircuitBreaker(repository.NewPantryRepository(db), pantriesCB),
		RecipeRepo:      repository.NewRecipeRepositoryWithCircuitBreaker(repository.NewRecipeRepository(db), recipesCB),
		HouseholdRepo:   repository.NewHouseholdRepository(db.Database),
		RoleRepo:        repository.NewRoleRepository(db.Database),
		TokenRepo:       repository.NewTokenRepository(db.Database),
		LoggingService:  service.NewLoggingService(logsRepo),
		CircuitBreakers: []*circuitbreaker.CircuitBreaker{pantriesCB, recipesCB, logsCB},
		Ping:            db.HealthCheck,
		Close:           db.Close,
	}, nil
}

func initializeDocumentStore(cfg config.Config) (*DatabaseComponents, error) {
	backend, err := NewDocumentBackend(cfg.Store)
	if err != nil {
		return nil, err
	}
	store := document.NewStore(backend)

	log.Info().Str("backend", cfg.Store.Backend).Msg("Using document store")

	pantriesCB := newCircuitBreaker(cfg.Database, "store-pantries")
	recipesCB := newCircuitBreaker(cfg.Database, "store-recipes")

	// The store has no connection to close.
	return &DatabaseComponents{
		Backend:         cfg.Store.Backend,
		PantryRepo:      repository.NewPantryRepositoryWithCircuitBreaker(document.NewPantryRepository(store), pantriesCB),
		RecipeRepo:      repository.NewRecipeRepositoryWithCircuitBreaker(document.NewRecipeRepository(store), recipesCB),
		HouseholdRepo:   document.NewHouseholdRepository(store),
		RoleRepo:        document.NewRoleRepository(store),
		TokenRepo:       document.NewTokenRepository(store),
		CircuitBreakers: []*circuitbreaker.CircuitBreaker{pantriesCB, recipesCB},
		Ping:            store.Ping,
		Close:           func(context.Context) error { return nil },
	}, nil
}

// NewDocumentBackend creates the document backend named in cfg.
func NewDocumentBackend(cfg config.StoreConfig) (document.Backend, error) {
	switch cfg.Backend {
	case config.StoreBackendFile:
		return document.NewFileBackend(cfg.Path), nil
	case config.StoreBackendHTTP:
		return document.NewHTTPBackend(cfg.URL, cfg.Token, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// newCircuitBreaker creates a breaker that ignores domain outcomes and
// publishes its state as a metric.
func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsExpected:       repository.IsDomainError,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}
