package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown household, a wrong
	// password and an inactive household alike.
	ErrInvalidCredentials = errors.New("invalid household name or password")
	// ErrHouseholdExists is returned when trying to register an existing household.
	ErrHouseholdExists = errors.New("household already exists")
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned when token is blacklisted.
	ErrTokenBlacklisted = errors.New("token is blacklisted")
)

// AuthService provides authentication operations.
type AuthService interface {
	Login(ctx context.Context, name, password string) (*dto.TokenPair, *model.Household, error)
	Register(ctx context.Context, name, password string) (*dto.TokenPair, *model.Household, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	InvalidateToken(ctx context.Context, tokenString string) error
	InvalidateHouseholdTokens(ctx context.Context, householdID string) error
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// AuthServiceImpl implements AuthService.
// It handles household authentication and delegates token operations to TokenService.
type AuthServiceImpl struct {
	householdRepo repository.HouseholdRepositoryInterface
	roleRepo      repository.RoleRepositoryInterface
	pantryRepo    repository.PantryRepositoryInterface
	tokenService  TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	householdRepo repository.HouseholdRepositoryInterface,
	roleRepo repository.RoleRepositoryInterface,
	tokenRepo repository.TokenRepositoryInterface,
	pantryRepo repository.PantryRepositoryInterface,
	authConfig config.AuthConfig,
) AuthService {
	tokenService := NewTokenService(tokenRepo, NewTokenConfigFromAuthConfig(authConfig))
	return NewAuthServiceWithTokenService(householdRepo, roleRepo, pantryRepo, tokenService)
}

// NewAuthServiceWithTokenService creates a new authentication service with an existing TokenService.
func NewAuthServiceWithTokenService(
	householdRepo repository.HouseholdRepositoryInterface,
	roleRepo repository.RoleRepositoryInterface,
	pantryRepo repository.PantryRepositoryInterface,
	tokenService TokenService,
) AuthService {
	return &AuthServiceImpl{
		householdRepo: householdRepo,
		roleRepo:      roleRepo,
		pantryRepo:    pantryRepo,
		tokenService:  tokenService,
	}
}

// Login authenticates a household and returns JWT tokens. Households
// still carrying a legacy SHA-256 password hash are moved to bcrypt on the
// first successful login.
func (s *AuthServiceImpl) Login(ctx context.Context, name, password string) (*dto.TokenPair, *model.Household, error) {
	household, err := s.householdRepo.FindByName(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find household by name: %w", err)
	}
	if household == nil || !household.Active {
		return nil, nil, ErrInvalidCredentials
	}

	ok, upgrade := VerifyPassword(household, password)
	if !ok {
		return nil, nil, ErrInvalidCredentials
	}
	if upgrade {
		s.upgradePassword(ctx, household, password)
	}

	if err := s.tokenService.InvalidateHouseholdTokens(ctx, household.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to invalidate existing tokens: %w", err)
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, household)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return tokenPair, household, nil
}

func (s *AuthServiceImpl) upgradePassword(ctx context.Context, household *model.Household, password string) {
	hashed, err := HashPassword(password)
	if err != nil {
		log.Warn().Err(err).Str("household", household.Name).Msg("Failed to hash password for upgrade")
		return
	}
	household.Password = hashed
	household.PasswordScheme = model.SchemeBcrypt
	if err := s.householdRepo.Update(ctx, household); err != nil {
		log.Warn().Err(err).Str("household", household.Name).Msg("Failed to upgrade legacy password hash")
		return
	}
	log.Info().Str("household", household.Name).Msg("Upgraded legacy password hash")
}

// Register creates a household with the member role and an empty pantry.
func (s *AuthServiceImpl) Register(ctx context.Context, name, password string) (*dto.TokenPair, *model.Household, error) {
	existing, err := s.householdRepo.FindByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrHouseholdExists
	}

	memberRole, err := s.roleRepo.FindByName(ctx, model.RoleMember)
	if err != nil {
		return nil, nil, err
	}
	if memberRole == nil {
		return nil, nil, errors.New("member role not found - please ensure default roles are initialized")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	household := &model.Household{
		ID:             uuid.NewString(),
		Name:           name,
		Password:       hashed,
		PasswordScheme: model.SchemeBcrypt,
		Roles:          []string{memberRole.Name},
		Active:         true,
	}
	if err := s.householdRepo.Create(ctx, household); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrHouseholdExists
		}
		return nil, nil, err
	}

	if err := s.pantryRepo.Create(ctx, model.NewPantry(household.ID)); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, nil, fmt.Errorf("failed to create pantry: %w", err)
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, household)
	if err != nil {
		return nil, nil, err
	}

	return tokenPair, household, nil
}

// RefreshToken exchanges a stored refresh token for a new token pair.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenService.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Type != model.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	household, err := s.householdRepo.FindByID(ctx, claims.HouseholdID)
	if err != nil {
		return nil, err
	}
	if household == nil || !household.Active {
		return nil, ErrInvalidCredentials
	}

	if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to delete old refresh token: %w", err)
	}

	return s.tokenService.GenerateTokenPair(ctx, household)
}

func (s *AuthServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(ctx, tokenString)
}

func (s *AuthServiceImpl) InvalidateToken(ctx context.Context, tokenString string) error {
	return s.tokenService.InvalidateAccessToken(ctx, tokenString)
}

func (s *AuthServiceImpl) InvalidateHouseholdTokens(ctx context.Context, householdID string) error {
	return s.tokenService.InvalidateHouseholdTokens(ctx, householdID)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error

	if accessToken != "" {
		if err := s.tokenService.InvalidateAccessToken(ctx, accessToken); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate access token during logout")
			errs = append(errs, fmt.Errorf("invalidate access token: %w", err))
		}
	}

	if refreshToken != "" {
		if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
			log.Warn().Err(err).Msg("failed to delete refresh token during logout")
			errs = append(errs, fmt.Errorf("delete refresh token: %w", err))
		}
	}

	return errors.Join(errs...)
}
