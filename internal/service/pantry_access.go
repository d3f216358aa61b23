package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/metrics"
	"github.com/guttosm/pantry-service/internal/pantry"
	"github.com/guttosm/pantry-service/internal/repository"
)

// PantryOptions configures the pantry and cooking services.
type PantryOptions struct {
	// NearExpiryDays is the default window for suggestions.
	NearExpiryDays int
	// Order is the lot deduction order for decrement and cook.
	Order pantry.DeductionOrder
	// ConflictRetries bounds how often a read-modify-write is retried after
	// a version conflict.
	ConflictRetries int
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// DefaultPantryOptions returns insertion-order deduction, a 7 day window
// and 3 retries.
func DefaultPantryOptions() PantryOptions {
	return PantryOptions{
		NearExpiryDays:  pantry.DefaultNearExpiryDays,
		Order:           pantry.OrderInsertion,
		ConflictRetries: 3,
		Now:             time.Now,
	}
}

// NewPantryOptionsFromConfig creates PantryOptions from config.PantryConfig.
func NewPantryOptionsFromConfig(cfg config.PantryConfig) (PantryOptions, error) {
	order, err := pantry.ParseDeductionOrder(cfg.DeductionOrder)
	if err != nil {
		return PantryOptions{}, err
	}
	return PantryOptions{
		NearExpiryDays:  cfg.NearExpiryDays,
		Order:           order,
		ConflictRetries: cfg.ConflictRetries,
		Now:             time.Now,
	}, nil
}

// pantryAccess is the read-modify-write helper shared by the pantry and
// cooking services.
type pantryAccess struct {
	repo repository.PantryRepositoryInterface
	opts PantryOptions
}

func newPantryAccess(repo repository.PantryRepositoryInterface, opts PantryOptions) pantryAccess {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ConflictRetries < 0 {
		opts.ConflictRetries = 0
	}
	return pantryAccess{repo: repo, opts: opts}
}

func (a pantryAccess) today() time.Time {
	return pantry.DateOf(a.opts.Now())
}

func (a pantryAccess) inventory(p *model.Pantry) *pantry.Inventory {
	return pantry.NewInventory(p.Lots,
		pantry.WithDeductionOrder(a.opts.Order),
		pantry.WithClock(a.opts.Now),
	)
}

// load returns the household's pantry, creating an empty one on first use.
func (a pantryAccess) load(ctx context.Context, householdID string) (*model.Pantry, error) {
	if a.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	p, err := a.repo.Get(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	p = model.NewPantry(householdID)
	err = a.repo.Create(ctx, p)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, repository.ErrDuplicate):
		// created concurrently
		p, err = a.repo.Get(ctx, householdID)
		if err == nil && p == nil {
			err = repository.ErrNotFound
		}
		return p, err
	default:
		return nil, err
	}
}

// update applies fn to a fresh copy of the pantry and stores it with
// Replace, retrying on version conflicts. When fn reports no change the
// pantry is returned without a write.
func (a pantryAccess) update(ctx context.Context, householdID, op string, fn func(p *model.Pantry) (bool, error)) (*model.Pantry, error) {
	for attempt := 0; ; attempt++ {
		p, err := a.load(ctx, householdID)
		if err != nil {
			return nil, err
		}
		changed, err := fn(p)
		if err != nil || !changed {
			return p, err
		}

		err = a.repo.Replace(ctx, p)
		if err == nil {
			metrics.RecordPantryOperation(op, "success")
			return p, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			metrics.RecordPantryOperation(op, "error")
			return nil, err
		}

		metrics.RecordStoreConflict("pantry")
		if attempt >= a.opts.ConflictRetries || ctx.Err() != nil {
			metrics.RecordPantryOperation(op, "conflict")
			return nil, fmt.Errorf("%s after %d attempts: %w", op, attempt+1, err)
		}
		log.Debug().
			Str("household_id", householdID).
			Str("operation", op).
			Int("attempt", attempt+1).
			Msg("Pantry changed concurrently, retrying")
	}
}
