package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

// AdminService provides household management for holders of the admin role.
type AdminService interface {
	ListHouseholds(ctx context.Context, limit, skip int64) ([]*model.Household, error)
	HouseholdPantry(ctx context.Context, name string) (*dto.PantryView, error)
	ResetPassword(ctx context.Context, name, password string) error
	DeactivateHousehold(ctx context.Context, name string) error
	// DeleteHousehold removes the household, its pantry and its tokens.
	DeleteHousehold(ctx context.Context, name string) error
	// EnsureAdmin creates an admin household when none with name exists yet.
	EnsureAdmin(ctx context.Context, name, password string) (bool, error)
}

// AdminServiceImpl implements AdminService.
type AdminServiceImpl struct {
	householdRepo repository.HouseholdRepositoryInterface
	pantryRepo    repository.PantryRepositoryInterface
	tokenRepo     repository.TokenRepositoryInterface
	pantries      PantryService
}

// NewAdminService creates a new admin service.
func NewAdminService(
	householdRepo repository.HouseholdRepositoryInterface,
	pantryRepo repository.PantryRepositoryInterface,
	tokenRepo repository.TokenRepositoryInterface,
	pantries PantryService,
) AdminService {
	return &AdminServiceImpl{
		householdRepo: householdRepo,
		pantryRepo:    pantryRepo,
		tokenRepo:     tokenRepo,
		pantries:      pantries,
	}
}

func (s *AdminServiceImpl) ListHouseholds(ctx context.Context, limit, skip int64) ([]*model.Household, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.householdRepo.List(ctx, limit, skip)
}

func (s *AdminServiceImpl) HouseholdPantry(ctx context.Context, name string) (*dto.PantryView, error) {
	household, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.pantries.Get(ctx, household.ID)
}

// ResetPassword sets a new bcrypt password and revokes refresh tokens.
func (s *AdminServiceImpl) ResetPassword(ctx context.Context, name, password string) error {
	household, err := s.find(ctx, name)
	if err != nil {
		return err
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	household.Password = hashed
	household.PasswordScheme = model.SchemeBcrypt
	if err := s.update(ctx, household); err != nil {
		return err
	}
	return s.tokenRepo.DeleteByHouseholdID(ctx, household.ID, model.TokenTypeRefresh)
}

func (s *AdminServiceImpl) DeactivateHousehold(ctx context.Context, name string) error {
	household, err := s.find(ctx, name)
	if err != nil {
		return err
	}
	household.Active = false
	if err := s.update(ctx, household); err != nil {
		return err
	}
	return s.tokenRepo.DeleteByHouseholdID(ctx, household.ID, model.TokenTypeRefresh)
}

func (s *AdminServiceImpl) DeleteHousehold(ctx context.Context, name string) error {
	household, err := s.find(ctx, name)
	if err != nil {
		return err
	}
	if err := s.tokenRepo.DeleteByHouseholdID(ctx, household.ID, model.TokenTypeRefresh); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}
	if err := s.pantryRepo.Delete(ctx, household.ID); err != nil {
		return fmt.Errorf("delete pantry: %w", err)
	}
	err = s.householdRepo.Delete(ctx, household.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHouseholdNotFound
	}
	return err
}

func (s *AdminServiceImpl) EnsureAdmin(ctx context.Context, name, password string) (bool, error) {
	if name == "" || password == "" {
		return false, nil
	}
	existing, err := s.householdRepo.FindByName(ctx, name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if !existing.HasRole(model.RoleAdmin) {
			log.Warn().Str("household", name).Msg("Bootstrap admin name is taken by a household without the admin role")
		}
		return false, nil
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &model.Household{
		ID:             uuid.NewString(),
		Name:           name,
		Password:       hashed,
		PasswordScheme: model.SchemeBcrypt,
		Roles:          []string{model.RoleMember, model.RoleAdmin},
		Active:         true,
	}
	if err := s.householdRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	if err := s.pantryRepo.Create(ctx, model.NewPantry(admin.ID)); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return true, fmt.Errorf("create admin pantry: %w", err)
	}
	return true, nil
}

func (s *AdminServiceImpl) find(ctx context.Context, name string) (*model.Household, error) {
	household, err := s.householdRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, ErrHouseholdNotFound
	}
	return household, nil
}

func (s *AdminServiceImpl) update(ctx context.Context, household *model.Household) error {
	err := s.householdRepo.Update(ctx, household)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHouseholdNotFound
	}
	return err
}
