package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

// Permission names granted through roles.
const (
	PermPantryRead      = "pantry:read"
	PermPantryWrite     = "pantry:write"
	PermRecipesWrite    = "recipes:write"
	PermHouseholdsRead  = "households:read"
	PermHouseholdsWrite = "households:write"
)

// DefaultRoles returns the built-in member and admin roles.
func DefaultRoles() []*model.Role {
	member := []string{PermPantryRead, PermPantryWrite, PermRecipesWrite}
	return []*model.Role{
		{
			Name:        model.RoleMember,
			Description: "Household member with access to its own pantry",
			Permissions: member,
			Active:      true,
		},
		{
			Name:        model.RoleAdmin,
			Description: "Administrator managing all households",
			Permissions: append(append([]string{}, member...), PermHouseholdsRead, PermHouseholdsWrite),
			Active:      true,
		},
	}
}

// RoleService provides role-related operations.
type RoleService interface {
	FindByNames(ctx context.Context, names []string) ([]*model.Role, error)
	// EnsureDefaultRoles creates the built-in roles that do not exist yet.
	EnsureDefaultRoles(ctx context.Context) error
}

// RoleServiceImpl implements RoleService.
type RoleServiceImpl struct {
	roleRepo repository.RoleRepositoryInterface
}

// NewRoleService creates a new role service.
func NewRoleService(roleRepo repository.RoleRepositoryInterface) RoleService {
	return &RoleServiceImpl{
		roleRepo: roleRepo,
	}
}

func (s *RoleServiceImpl) FindByNames(ctx context.Context, names []string) ([]*model.Role, error) {
	if s.roleRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.roleRepo.FindByNames(ctx, names)
}

func (s *RoleServiceImpl) EnsureDefaultRoles(ctx context.Context) error {
	if s.roleRepo == nil {
		return ErrRepositoryNotConfigured
	}
	for _, role := range DefaultRoles() {
		existing, err := s.roleRepo.FindByName(ctx, role.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.roleRepo.Create(ctx, role); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		log.Info().Str("role", role.Name).Msg("Created default role")
	}
	return nil
}
