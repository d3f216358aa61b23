//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/mocks"
)

func TestRequireAuthorization(t *testing.T) {
	gin.SetMode(gin.TestMode)

	memberRole := &model.Role{Name: model.RoleMember, Permissions: []string{"pantry:read", "pantry:write"}, Active: true}
	adminRole := &model.Role{Name: model.RoleAdmin, Permissions: []string{"households:read", "households:write"}, Active: true}

	tests := []struct {
		name           string
		claims         interface{}
		config         AuthorizationConfig
		setupMocks     func(*mocks.MockRoleService)
		expectedStatus int
	}{
		{
			name:           "no claims returns unauthorized",
			config:         AuthorizationConfig{},
			setupMocks:     func(*mocks.MockRoleService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid claims type returns unauthorized",
			claims:         "invalid",
			config:         AuthorizationConfig{},
			setupMocks:     func(*mocks.MockRoleService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no requirements allows access",
			claims:         &dto.Claims{HouseholdID: "hh-1"},
			config:         AuthorizationConfig{},
			setupMocks:     func(*mocks.MockRoleService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "household has required role",
			claims:         &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleAdmin}},
			config:         AuthorizationConfig{RequiredRoles: []string{model.RoleAdmin}},
			setupMocks:     func(*mocks.MockRoleService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "household missing required role",
			claims:         &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleMember}},
			config:         AuthorizationConfig{RequiredRoles: []string{model.RoleAdmin}},
			setupMocks:     func(*mocks.MockRoleService) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "any permission granted",
			claims: &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleMember}},
			config: AuthorizationConfig{RequiredPermissions: []string{"pantry:write", "households:write"}},
			setupMocks: func(rs *mocks.MockRoleService) {
				rs.On("FindByNames", mock.Anything, []string{model.RoleMember}).Return([]*model.Role{memberRole}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "all permissions required but one missing",
			claims: &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleMember}},
			config: AuthorizationConfig{
				RequiredPermissions:   []string{"pantry:write", "households:write"},
				RequireAllPermissions: true,
			},
			setupMocks: func(rs *mocks.MockRoleService) {
				rs.On("FindByNames", mock.Anything, []string{model.RoleMember}).Return([]*model.Role{memberRole}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "all permissions across roles",
			claims: &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleMember, model.RoleAdmin}},
			config: AuthorizationConfig{
				RequiredPermissions:   []string{"pantry:write", "households:write"},
				RequireAllPermissions: true,
			},
			setupMocks: func(rs *mocks.MockRoleService) {
				rs.On("FindByNames", mock.Anything, []string{model.RoleMember, model.RoleAdmin}).
					Return([]*model.Role{memberRole, adminRole}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "inactive role grants nothing",
			claims: &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleAdmin}},
			config: AuthorizationConfig{RequiredPermissions: []string{"households:read"}},
			setupMocks: func(rs *mocks.MockRoleService) {
				inactive := *adminRole
				inactive.Active = false
				rs.On("FindByNames", mock.Anything, []string{model.RoleAdmin}).Return([]*model.Role{&inactive}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "role lookup failure denies",
			claims: &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleMember}},
			config: AuthorizationConfig{RequiredPermissions: []string{"pantry:read"}},
			setupMocks: func(rs *mocks.MockRoleService) {
				rs.On("FindByNames", mock.Anything, []string{model.RoleMember}).Return(nil, errors.New("store unavailable"))
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roleService := new(mocks.MockRoleService)
			tt.setupMocks(roleService)

			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.claims != nil {
					c.Set(ContextClaims, tt.claims)
				}
				c.Next()
			})
			router.Use(RequireAuthorization(tt.config, roleService))
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			roleService.AssertExpectations(t)
		})
	}
}

func TestRequireAuthorization_NilRoleService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextClaims, &dto.Claims{HouseholdID: "hh-1", Roles: []string{model.RoleAdmin}})
	})
	router.Use(RequireAuthorization(AuthorizationConfig{RequiredPermissions: []string{"households:read"}}, nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
