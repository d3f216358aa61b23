package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/mocks"
	"github.com/guttosm/pantry-service/internal/repository"
	"github.com/guttosm/pantry-service/internal/service"
)

// testAuthConfig returns a config.AuthConfig for testing.
func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecretKey:     "your-secret-key-change-in-production",
		JWTRefreshSecret: "your-refresh-secret-key-change-in-production",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	}
}

type authMocks struct {
	households *mocks.MockHouseholdRepositoryInterface
	roles      *mocks.MockRoleRepositoryInterface
	tokens     *mocks.MockTokenRepositoryInterface
	pantries   *mocks.MockPantryRepositoryInterface
}

func newAuthService() (service.AuthService, authMocks) {
	m := authMocks{
		households: new(mocks.MockHouseholdRepositoryInterface),
		roles:      new(mocks.MockRoleRepositoryInterface),
		tokens:     new(mocks.MockTokenRepositoryInterface),
		pantries:   new(mocks.MockPantryRepositoryInterface),
	}
	return service.NewAuthService(m.households, m.roles, m.tokens, m.pantries, testAuthConfig()), m
}

func bcryptHousehold(t *testing.T, name, password string, active bool) *model.Household {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.Household{
		ID:             "hh-" + name,
		Name:           name,
		Password:       string(hashed),
		PasswordScheme: model.SchemeBcrypt,
		Roles:          []string{model.RoleMember},
		Active:         active,
	}
}

func legacyHousehold(name, password string) *model.Household {
	sum := sha256.Sum256([]byte(password))
	return &model.Household{
		ID:             "hh-" + name,
		Name:           name,
		Password:       hex.EncodeToString(sum[:]),
		PasswordScheme: model.SchemeLegacySHA256,
		Roles:          []string{model.RoleMember},
		Active:         true,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		household     string
		password      string
		setupMocks    func(*testing.T, authMocks)
		expectedError error
		wantUpgrade   bool
	}{
		{
			name:      "successful login",
			household: "Meier",
			password:  "geheim1",
			setupMocks: func(t *testing.T, m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(bcryptHousehold(t, "Meier", "geheim1", true), nil)
				m.tokens.On("DeleteByHouseholdID", mock.Anything, "hh-Meier", model.TokenTypeRefresh).Return(nil)
				m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
			},
		},
		{
			name:      "legacy hash is upgraded",
			household: "Schulz",
			password:  "abc",
			setupMocks: func(t *testing.T, m authMocks) {
				m.households.On("FindByName", mock.Anything, "Schulz").Return(legacyHousehold("Schulz", "abc"), nil)
				m.households.On("Update", mock.Anything, mock.MatchedBy(func(h *model.Household) bool {
					return h.PasswordScheme == model.SchemeBcrypt &&
						bcrypt.CompareHashAndPassword([]byte(h.Password), []byte("abc")) == nil
				})).Return(nil)
				m.tokens.On("DeleteByHouseholdID", mock.Anything, "hh-Schulz", model.TokenTypeRefresh).Return(nil)
				m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
			},
			wantUpgrade: true,
		},
		{
			name:      "failed upgrade still logs in",
			household: "Schulz",
			password:  "abc",
			setupMocks: func(t *testing.T, m authMocks) {
				m.households.On("FindByName", mock.Anything, "Schulz").Return(legacyHousehold("Schulz", "abc"), nil)
				m.households.On("Update", mock.Anything, mock.Anything).Return(errors.New("write failed"))
				m.tokens.On("DeleteByHouseholdID", mock.Anything, "hh-Schulz", model.TokenTypeRefresh).Return(nil)
				m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
			},
		},
		{
			name:      "wrong legacy password",
			household: "Schulz",
			password:  "abd",
			setupMocks: func(t *testing.T, m authMocks) {
				m.households.On("FindByName", mock.Anything, "Schulz").Return(legacyHousehold("Schulz", "abc"), nil)
			},
			expectedError: service.ErrInvalidCredentials,
		},
		{
			name:      "household not found",
			household: "Nobody",
			password:  "geheim1",
			setupMocks: func(t *testing.T, m authMocks) {
				m.households.On("FindByName", mock.Anything, "Nobody").Return(nil, nil)
			},
			expectedError: service.ErrInvalidCredentials,
		},
		{
			name:      "household inactive",
			household: "Meier",
			password:  "geheim1",
			setupMocks: func(t *testing.T, m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(bcryptHousehold(t, "Meier", "geheim1", false), nil)
			},
			expectedError: service.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			household: "Meier",
			password:  "falsch",
			setupMocks: func(t *testing.T, m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(bcryptHousehold(t, "Meier", "geheim1", true), nil)
			},
			expectedError: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService, m := newAuthService()
			tt.setupMocks(t, m)

			tokenPair, household, err := authService.Login(context.Background(), tt.household, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tokenPair)
				assert.Nil(t, household)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tokenPair.AccessToken)
				assert.NotEmpty(t, tokenPair.RefreshToken)
				assert.Equal(t, tt.household, household.Name)
				if tt.wantUpgrade {
					assert.Equal(t, model.SchemeBcrypt, household.PasswordScheme)
				}
			}
			m.households.AssertExpectations(t)
			m.tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	memberRole := &model.Role{ID: "role-member", Name: model.RoleMember, Active: true}

	tests := []struct {
		name          string
		setupMocks    func(authMocks)
		expectedError error
		wantErr       bool
	}{
		{
			name: "successful registration",
			setupMocks: func(m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(nil, nil)
				m.roles.On("FindByName", mock.Anything, model.RoleMember).Return(memberRole, nil)
				m.households.On("Create", mock.Anything, mock.MatchedBy(func(h *model.Household) bool {
					return h.ID != "" && h.Active && h.PasswordScheme == model.SchemeBcrypt &&
						len(h.Roles) == 1 && h.Roles[0] == model.RoleMember
				})).Return(nil)
				m.pantries.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Pantry) bool {
					return p.HouseholdID != "" && len(p.Lots) == 0
				})).Return(nil)
				m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
			},
		},
		{
			name: "existing pantry is kept",
			setupMocks: func(m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(nil, nil)
				m.roles.On("FindByName", mock.Anything, model.RoleMember).Return(memberRole, nil)
				m.households.On("Create", mock.Anything, mock.Anything).Return(nil)
				m.pantries.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
				m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
			},
		},
		{
			name: "household exists",
			setupMocks: func(m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(&model.Household{ID: "hh-1", Name: "Meier"}, nil)
			},
			expectedError: service.ErrHouseholdExists,
		},
		{
			name: "registered concurrently",
			setupMocks: func(m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(nil, nil)
				m.roles.On("FindByName", mock.Anything, model.RoleMember).Return(memberRole, nil)
				m.households.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
			},
			expectedError: service.ErrHouseholdExists,
		},
		{
			name: "member role missing",
			setupMocks: func(m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(nil, nil)
				m.roles.On("FindByName", mock.Anything, model.RoleMember).Return(nil, nil)
			},
			wantErr: true,
		},
		{
			name: "pantry creation fails",
			setupMocks: func(m authMocks) {
				m.households.On("FindByName", mock.Anything, "Meier").Return(nil, nil)
				m.roles.On("FindByName", mock.Anything, model.RoleMember).Return(memberRole, nil)
				m.households.On("Create", mock.Anything, mock.Anything).Return(nil)
				m.pantries.On("Create", mock.Anything, mock.Anything).Return(errors.New("store down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService, m := newAuthService()
			tt.setupMocks(m)

			tokenPair, household, err := authService.Register(context.Background(), "Meier", "geheim1")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, household)
			case tt.wantErr:
				assert.Error(t, err)
				assert.Nil(t, tokenPair)
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, tokenPair.AccessToken)
				assert.Equal(t, "Meier", household.Name)
				assert.NotEqual(t, "geheim1", household.Password)
			}
			m.households.AssertExpectations(t)
			m.roles.AssertExpectations(t)
			m.pantries.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	cfg := testAuthConfig()
	tokenRepo := new(mocks.MockTokenRepositoryInterface)
	tokenService := service.NewTokenService(tokenRepo, service.NewTokenConfigFromAuthConfig(cfg))
	household := &model.Household{ID: "hh-1", Name: "Meier", Roles: []string{model.RoleMember}, Active: true}

	tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
	pair, err := tokenService.GenerateTokenPair(context.Background(), household)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		setupMocks func(*mocks.MockTokenRepositoryInterface, *mocks.MockHouseholdRepositoryInterface)
		wantErr    error
	}{
		{
			name:  "successful refresh",
			token: pair.RefreshToken,
			setupMocks: func(tokens *mocks.MockTokenRepositoryInterface, households *mocks.MockHouseholdRepositoryInterface) {
				tokens.On("FindByToken", mock.Anything, pair.RefreshToken).Return(&model.Token{
					HouseholdID: "hh-1",
					Token:       pair.RefreshToken,
					Type:        model.TokenTypeRefresh,
					ExpiresAt:   time.Now().Add(time.Hour),
				}, nil)
				households.On("FindByID", mock.Anything, "hh-1").Return(household, nil)
				tokens.On("DeleteByToken", mock.Anything, pair.RefreshToken).Return(nil)
				tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
			},
		},
		{
			name:       "malformed token",
			token:      "not-a-jwt",
			setupMocks: func(*mocks.MockTokenRepositoryInterface, *mocks.MockHouseholdRepositoryInterface) {},
			wantErr:    service.ErrInvalidToken,
		},
		{
			name:  "access token is not a refresh token",
			token: pair.AccessToken,
			setupMocks: func(*mocks.MockTokenRepositoryInterface, *mocks.MockHouseholdRepositoryInterface) {
			},
			wantErr: service.ErrInvalidToken,
		},
		{
			name:  "revoked refresh token",
			token: pair.RefreshToken,
			setupMocks: func(tokens *mocks.MockTokenRepositoryInterface, _ *mocks.MockHouseholdRepositoryInterface) {
				tokens.On("FindByToken", mock.Anything, pair.RefreshToken).Return(nil, nil)
			},
			wantErr: service.ErrInvalidToken,
		},
		{
			name:  "household deactivated",
			token: pair.RefreshToken,
			setupMocks: func(tokens *mocks.MockTokenRepositoryInterface, households *mocks.MockHouseholdRepositoryInterface) {
				tokens.On("FindByToken", mock.Anything, pair.RefreshToken).Return(&model.Token{
					Token:     pair.RefreshToken,
					Type:      model.TokenTypeRefresh,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
				households.On("FindByID", mock.Anything, "hh-1").Return(&model.Household{ID: "hh-1", Active: false}, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(mocks.MockTokenRepositoryInterface)
			households := new(mocks.MockHouseholdRepositoryInterface)
			tt.setupMocks(tokens, households)
			authService := service.NewAuthService(households, new(mocks.MockRoleRepositoryInterface), tokens,
				new(mocks.MockPantryRepositoryInterface), cfg)

			newPair, err := authService.RefreshToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, newPair)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)
			tokens.AssertExpectations(t)
			households.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	tests := []struct {
		name       string
		access     string
		refresh    string
		setupMocks func(*mocks.MockTokenService)
		wantErr    bool
	}{
		{
			name:    "revokes both tokens",
			access:  "access",
			refresh: "refresh",
			setupMocks: func(m *mocks.MockTokenService) {
				m.On("InvalidateAccessToken", mock.Anything, "access").Return(nil)
				m.On("DeleteRefreshToken", mock.Anything, "refresh").Return(nil)
			},
		},
		{
			name:    "access token only",
			access:  "access",
			refresh: "",
			setupMocks: func(m *mocks.MockTokenService) {
				m.On("InvalidateAccessToken", mock.Anything, "access").Return(nil)
			},
		},
		{
			name:    "errors are joined",
			access:  "access",
			refresh: "refresh",
			setupMocks: func(m *mocks.MockTokenService) {
				m.On("InvalidateAccessToken", mock.Anything, "access").Return(service.ErrInvalidToken)
				m.On("DeleteRefreshToken", mock.Anything, "refresh").Return(errors.New("store down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenService := new(mocks.MockTokenService)
			tt.setupMocks(tokenService)
			authService := service.NewAuthServiceWithTokenService(nil, nil, nil, tokenService)

			err := authService.Logout(context.Background(), tt.access, tt.refresh)

			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidToken)
			} else {
				assert.NoError(t, err)
			}
			tokenService.AssertExpectations(t)
		})
	}
}
