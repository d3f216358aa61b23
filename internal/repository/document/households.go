package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

// HouseholdRepository implements repository.HouseholdRepositoryInterface.
type HouseholdRepository struct {
	store *Store
}

// NewHouseholdRepository creates a household repository on store.
func NewHouseholdRepository(store *Store) *HouseholdRepository {
	return &HouseholdRepository{store: store}
}

// Create adds a household. Names are unique and case-sensitive.
func (r *HouseholdRepository) Create(ctx context.Context, household *model.Household) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		if ds.householdIndex(byName(household.Name)) >= 0 {
			return repository.ErrDuplicate
		}
		now := r.store.now()
		household.CreatedAt = now
		household.UpdatedAt = now
		if household.ID == "" {
			household.ID = uuid.NewString()
		}
		ds.Households = append(ds.Households, recordFromModel(household))
		return nil
	})
}

// FindByName returns nil, nil when no household has that name.
func (r *HouseholdRepository) FindByName(ctx context.Context, name string) (*model.Household, error) {
	return r.find(ctx, byName(name))
}

// FindByID returns nil, nil when the id is unknown.
func (r *HouseholdRepository) FindByID(ctx context.Context, id string) (*model.Household, error) {
	return r.find(ctx, func(h HouseholdRecord) bool { return h.ID == id })
}

func (r *HouseholdRepository) find(ctx context.Context, match func(HouseholdRecord) bool) (*model.Household, error) {
	var found *model.Household
	err := r.store.view(ctx, func(ds *Dataset) error {
		if i := ds.householdIndex(match); i >= 0 {
			found = ds.Households[i].toModel()
		}
		return nil
	})
	return found, err
}

// Update stores the mutable fields of a household.
func (r *HouseholdRepository) Update(ctx context.Context, household *model.Household) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		i := ds.householdIndex(func(h HouseholdRecord) bool { return h.ID == household.ID })
		if i < 0 {
			return repository.ErrNotFound
		}
		household.UpdatedAt = r.store.now()
		rec := &ds.Households[i]
		rec.Password = household.Password
		rec.PasswordScheme = household.PasswordScheme
		rec.Roles = append([]string(nil), household.Roles...)
		rec.Active = household.Active
		rec.UpdatedAt = household.UpdatedAt
		return nil
	})
}

// Delete removes a household record.
func (r *HouseholdRepository) Delete(ctx context.Context, id string) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		i := ds.householdIndex(func(h HouseholdRecord) bool { return h.ID == id })
		if i < 0 {
			return repository.ErrNotFound
		}
		ds.Households = append(ds.Households[:i], ds.Households[i+1:]...)
		return nil
	})
}

// List returns households sorted by name without password hashes.
func (r *HouseholdRepository) List(ctx context.Context, limit, skip int64) ([]*model.Household, error) {
	var out []*model.Household
	err := r.store.view(ctx, func(ds *Dataset) error {
		sorted := append([]HouseholdRecord(nil), ds.Households...)
		sortRecords(sorted)
		for i, rec := range sorted {
			if int64(i) < skip {
				continue
			}
			if limit > 0 && int64(len(out)) >= limit {
				break
			}
			h := rec.toModel()
			h.Password = ""
			out = append(out, h)
		}
		return nil
	})
	return out, err
}

func byName(name string) func(HouseholdRecord) bool {
	return func(h HouseholdRecord) bool { return h.Name == name }
}
