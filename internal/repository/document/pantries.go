package document

import (
	"context"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

// PantryRepository implements repository.PantryRepositoryInterface. Writes
// from other processes sharing the backend are detected through the
// backend revision, see Store.update.
type PantryRepository struct {
	store *Store
}

// NewPantryRepository creates a pantry repository on store.
func NewPantryRepository(store *Store) *PantryRepository {
	return &PantryRepository{store: store}
}

// Get returns a copy of the household's pantry, or nil, nil.
func (r *PantryRepository) Get(ctx context.Context, householdID string) (*model.Pantry, error) {
	var found *model.Pantry
	err := r.store.view(ctx, func(ds *Dataset) error {
		if i := ds.pantryIndex(householdID); i >= 0 {
			found = ds.Pantries[i].Clone()
		}
		return nil
	})
	return found, err
}

// Create adds a pantry at version 1.
func (r *PantryRepository) Create(ctx context.Context, pantry *model.Pantry) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		if ds.pantryIndex(pantry.HouseholdID) >= 0 {
			return repository.ErrDuplicate
		}
		pantry.Version = 1
		pantry.UpdatedAt = r.store.now()
		ds.Pantries = append(ds.Pantries, *pantry.Clone())
		return nil
	})
}

// PushLot appends a lot.
func (r *PantryRepository) PushLot(ctx context.Context, householdID string, lot model.Lot) error {
	return r.mutate(ctx, householdID, func(p *model.Pantry) error {
		p.Lots = append(p.Lots, *cloneLot(lot))
		return nil
	})
}

// PullLot removes the lot with lotID and returns it.
func (r *PantryRepository) PullLot(ctx context.Context, householdID, lotID string, reason repository.PullReason) (*model.Lot, error) {
	var pulled *model.Lot
	err := r.mutate(ctx, householdID, func(p *model.Pantry) error {
		for i := range p.Lots {
			if p.Lots[i].ID != lotID {
				continue
			}
			pulled = cloneLot(p.Lots[i])
			p.Lots = append(p.Lots[:i], p.Lots[i+1:]...)
			if reason == repository.PullDiscarded {
				p.Stats.Discarded++
			}
			return nil
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return pulled, nil
}

// PushShoppingEntry appends entry, skipping it when unique and present.
func (r *PantryRepository) PushShoppingEntry(ctx context.Context, householdID, entry string, unique bool) (bool, error) {
	added := false
	err := r.store.update(ctx, func(ds *Dataset) error {
		added = false
		i := ds.pantryIndex(householdID)
		if i < 0 {
			return repository.ErrNotFound
		}
		p := &ds.Pantries[i]
		if unique {
			for _, e := range p.ShoppingList {
				if e == entry {
					return nil
				}
			}
		}
		p.ShoppingList = append(p.ShoppingList, entry)
		p.Version++
		p.UpdatedAt = r.store.now()
		added = true
		return nil
	})
	return added, err
}

// Replace stores pantry when its version matches the stored one.
func (r *PantryRepository) Replace(ctx context.Context, pantry *model.Pantry) error {
	next := pantry.Clone()
	err := r.store.update(ctx, func(ds *Dataset) error {
		i := ds.pantryIndex(pantry.HouseholdID)
		if i < 0 || ds.Pantries[i].Version != pantry.Version {
			return repository.ErrVersionConflict
		}
		next.Version = pantry.Version + 1
		next.UpdatedAt = r.store.now()
		ds.Pantries[i] = *next
		return nil
	})
	if err != nil {
		return err
	}
	pantry.Version = next.Version
	pantry.UpdatedAt = next.UpdatedAt
	return nil
}

// Delete removes the household's pantry; missing pantries are ignored.
func (r *PantryRepository) Delete(ctx context.Context, householdID string) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		if i := ds.pantryIndex(householdID); i >= 0 {
			ds.Pantries = append(ds.Pantries[:i], ds.Pantries[i+1:]...)
		}
		return nil
	})
}

func (r *PantryRepository) mutate(ctx context.Context, householdID string, fn func(p *model.Pantry) error) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		i := ds.pantryIndex(householdID)
		if i < 0 {
			return repository.ErrNotFound
		}
		p := &ds.Pantries[i]
		if err := fn(p); err != nil {
			return err
		}
		p.Version++
		p.UpdatedAt = r.store.now()
		return nil
	})
}

func cloneLot(l model.Lot) *model.Lot {
	if l.Expiry != nil {
		exp := *l.Expiry
		l.Expiry = &exp
	}
	return &l
}
