// Package repository provides circuit breaker wrappers for store operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/pantry-service/internal/circuitbreaker"
	"github.com/guttosm/pantry-service/internal/domain/model"
)

// IsDomainError reports errors that describe the data rather than the
// backend. Breakers built for repositories should not count them.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrVersionConflict)
}

// PantryRepositoryWithCircuitBreaker wraps a pantry repository with circuit breaker protection.
type PantryRepositoryWithCircuitBreaker struct {
	repo           PantryRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPantryRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewPantryRepositoryWithCircuitBreaker(repo PantryRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PantryRepositoryWithCircuitBreaker {
	return &PantryRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get returns the household's pantry.
func (r *PantryRepositoryWithCircuitBreaker) Get(ctx context.Context, householdID string) (*model.Pantry, error) {
	var result *model.Pantry
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, householdID)
		return cbErr
	})
	return result, err
}

// Create inserts a pantry.
func (r *PantryRepositoryWithCircuitBreaker) Create(ctx context.Context, pantry *model.Pantry) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, pantry)
	})
}

// PushLot appends a lot.
func (r *PantryRepositoryWithCircuitBreaker) PushLot(ctx context.Context, householdID string, lot model.Lot) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.PushLot(ctx, householdID, lot)
	})
}

// PullLot removes a lot.
func (r *PantryRepositoryWithCircuitBreaker) PullLot(ctx context.Context, householdID, lotID string, reason PullReason) (*model.Lot, error) {
	var result *model.Lot
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.PullLot(ctx, householdID, lotID, reason)
		return cbErr
	})
	return result, err
}

// PushShoppingEntry appends a shopping list entry.
func (r *PantryRepositoryWithCircuitBreaker) PushShoppingEntry(ctx context.Context, householdID, entry string, unique bool) (bool, error) {
	var added bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		added, cbErr = r.repo.PushShoppingEntry(ctx, householdID, entry, unique)
		return cbErr
	})
	return added, err
}

// Replace writes the full pantry with a version check.
func (r *PantryRepositoryWithCircuitBreaker) Replace(ctx context.Context, pantry *model.Pantry) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Replace(ctx, pantry)
	})
}

// Delete removes the household's pantry.
func (r *PantryRepositoryWithCircuitBreaker) Delete(ctx context.Context, householdID string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, householdID)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PantryRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// RecipeRepositoryWithCircuitBreaker wraps a recipe repository with circuit breaker protection.
type RecipeRepositoryWithCircuitBreaker struct {
	repo           RecipeRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewRecipeRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewRecipeRepositoryWithCircuitBreaker(repo RecipeRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *RecipeRepositoryWithCircuitBreaker {
	return &RecipeRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// List returns the recipe catalog.
func (r *RecipeRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.Recipe, error) {
	var result []model.Recipe
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx)
		return cbErr
	})
	return result, err
}

// FindByName returns a recipe by name.
func (r *RecipeRepositoryWithCircuitBreaker) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	var result *model.Recipe
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByName(ctx, name)
		return cbErr
	})
	return result, err
}

// Upsert creates or replaces a recipe.
func (r *RecipeRepositoryWithCircuitBreaker) Upsert(ctx context.Context, recipe *model.Recipe) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, recipe)
	})
}

// Delete removes a recipe.
func (r *RecipeRepositoryWithCircuitBreaker) Delete(ctx context.Context, name string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, name)
	})
}

// Count returns the number of recipes.
func (r *RecipeRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *RecipeRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. Audit writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. Dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	var result []model.LogEntry
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the number of matching log entries.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
