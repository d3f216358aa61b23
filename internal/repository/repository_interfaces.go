// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/pantry-service/internal/domain/model"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("record already exists")
	// ErrVersionConflict is returned by Replace when the stored pantry
	// changed since it was read.
	ErrVersionConflict = errors.New("pantry was modified concurrently")
)

// PullReason tells PullLot how to account for a removed lot.
type PullReason int

const (
	// PullRemoved deletes the lot without touching stats (data-entry correction).
	PullRemoved PullReason = iota
	// PullDiscarded deletes the lot and counts it as discarded.
	PullDiscarded
)

// HouseholdRepositoryInterface defines the interface for household repository operations.
type HouseholdRepositoryInterface interface {
	Create(ctx context.Context, household *model.Household) error
	FindByName(ctx context.Context, name string) (*model.Household, error)
	FindByID(ctx context.Context, id string) (*model.Household, error)
	Update(ctx context.Context, household *model.Household) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, skip int64) ([]*model.Household, error)
}

// RoleRepositoryInterface defines the interface for role repository operations.
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *model.Role) error
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindByNames(ctx context.Context, names []string) ([]*model.Role, error)
	List(ctx context.Context) ([]*model.Role, error)
}

// TokenRepositoryInterface defines the interface for token repository operations.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindByToken(ctx context.Context, tokenString string) (*model.Token, error)
	DeleteByToken(ctx context.Context, tokenString string) error
	DeleteByHouseholdID(ctx context.Context, householdID string, tokenType string) error
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
	CleanupExpired(ctx context.Context) error
}

// PantryRepositoryInterface is the narrow per-household pantry API.
// Single-element changes are applied atomically by the store; anything
// else goes through Replace, which only succeeds when Version still
// matches the stored document.
type PantryRepositoryInterface interface {
	// Get returns nil, nil when the household has no pantry.
	Get(ctx context.Context, householdID string) (*model.Pantry, error)
	Create(ctx context.Context, pantry *model.Pantry) error
	PushLot(ctx context.Context, householdID string, lot model.Lot) error
	// PullLot removes a lot by id and returns it; ErrNotFound when absent.
	PullLot(ctx context.Context, householdID, lotID string, reason PullReason) (*model.Lot, error)
	// PushShoppingEntry appends entry; with unique set it is skipped when
	// already present and added reports false.
	PushShoppingEntry(ctx context.Context, householdID, entry string, unique bool) (added bool, err error)
	// Replace writes pantry if its Version matches and bumps Version.
	Replace(ctx context.Context, pantry *model.Pantry) error
	Delete(ctx context.Context, householdID string) error
}

// RecipeRepositoryInterface defines the recipe catalog operations.
type RecipeRepositoryInterface interface {
	List(ctx context.Context) ([]model.Recipe, error)
	// FindByName returns nil, nil when the recipe does not exist.
	FindByName(ctx context.Context, name string) (*model.Recipe, error)
	Upsert(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, name string) error
	Count(ctx context.Context) (int64, error)
}

// LogsRepositoryInterface stores request and audit entries.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	// Query returns matching entries, newest first.
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}
