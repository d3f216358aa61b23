package document

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

// RoleRepository implements repository.RoleRepositoryInterface.
type RoleRepository struct {
	store *Store
}

// NewRoleRepository creates a role repository on store.
func NewRoleRepository(store *Store) *RoleRepository {
	return &RoleRepository{store: store}
}

// Create adds a role; names are unique.
func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		if ds.roleIndex(role.Name) >= 0 {
			return repository.ErrDuplicate
		}
		role.CreatedAt = r.store.now()
		role.UpdatedAt = role.CreatedAt
		if role.ID == "" {
			role.ID = uuid.NewString()
		}
		ds.Roles = append(ds.Roles, *role)
		return nil
	})
}

// FindByName returns nil, nil when the role does not exist.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	roles, err := r.FindByNames(ctx, []string{name})
	if err != nil || len(roles) == 0 {
		return nil, err
	}
	return roles[0], nil
}

// FindByNames returns the roles whose names are listed, sorted by name.
func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]*model.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	return r.find(ctx, func(role model.Role) bool { return want[role.Name] })
}

// List returns every role sorted by name.
func (r *RoleRepository) List(ctx context.Context) ([]*model.Role, error) {
	return r.find(ctx, func(model.Role) bool { return true })
}

func (r *RoleRepository) find(ctx context.Context, match func(model.Role) bool) ([]*model.Role, error) {
	var out []*model.Role
	err := r.store.view(ctx, func(ds *Dataset) error {
		for _, role := range ds.Roles {
			if match(role) {
				role := role
				role.Permissions = append([]string(nil), role.Permissions...)
				out = append(out, &role)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// TokenRepository implements repository.TokenRepositoryInterface.
type TokenRepository struct {
	store *Store
}

// NewTokenRepository creates a token repository on store.
func NewTokenRepository(store *Store) *TokenRepository {
	return &TokenRepository{store: store}
}

// Create stores a token; token strings are unique.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		for _, t := range ds.Tokens {
			if t.Token == token.Token {
				return repository.ErrDuplicate
			}
		}
		token.CreatedAt = r.store.now()
		if token.ID == "" {
			token.ID = uuid.NewString()
		}
		ds.Tokens = append(ds.Tokens, *token)
		return nil
	})
}

// FindByToken returns nil, nil when the token is unknown.
func (r *TokenRepository) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	var found *model.Token
	err := r.store.view(ctx, func(ds *Dataset) error {
		for _, t := range ds.Tokens {
			if t.Token == tokenString {
				t := t
				found = &t
				return nil
			}
		}
		return nil
	})
	return found, err
}

// DeleteByToken removes a token.
func (r *TokenRepository) DeleteByToken(ctx context.Context, tokenString string) error {
	return r.remove(ctx, func(t model.Token) bool { return t.Token == tokenString })
}

// DeleteByHouseholdID removes every token of tokenType for a household.
func (r *TokenRepository) DeleteByHouseholdID(ctx context.Context, householdID string, tokenType string) error {
	return r.remove(ctx, func(t model.Token) bool {
		return t.HouseholdID == householdID && t.Type == tokenType
	})
}

// IsBlacklisted reports whether tokenString was revoked.
func (r *TokenRepository) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	found, err := r.FindByToken(ctx, tokenString)
	if err != nil || found == nil {
		return false, err
	}
	return found.Type == model.TokenTypeBlacklist, nil
}

// CleanupExpired removes tokens past their expiry.
func (r *TokenRepository) CleanupExpired(ctx context.Context) error {
	now := r.store.now()
	return r.remove(ctx, func(t model.Token) bool { return t.ExpiresAt.Before(now) })
}

func (r *TokenRepository) remove(ctx context.Context, match func(model.Token) bool) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		kept := ds.Tokens[:0]
		for _, t := range ds.Tokens {
			if !match(t) {
				kept = append(kept, t)
			}
		}
		ds.Tokens = kept
		return nil
	})
}
