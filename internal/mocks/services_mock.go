// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/pantry"
	"github.com/guttosm/pantry-service/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, name, password string) (*dto.TokenPair, *model.Household, error) {
	args := m.Called(ctx, name, password)
	var pair *dto.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*dto.TokenPair)
	}
	var household *model.Household
	if args.Get(1) != nil {
		household = args.Get(1).(*model.Household)
	}
	return pair, household, args.Error(2)
}

func (m *MockAuthService) Register(ctx context.Context, name, password string) (*dto.TokenPair, *model.Household, error) {
	args := m.Called(ctx, name, password)
	var pair *dto.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*dto.TokenPair)
	}
	var household *model.Household
	if args.Get(1) != nil {
		household = args.Get(1).(*model.Household)
	}
	return pair, household, args.Error(2)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockAuthService) InvalidateToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockAuthService) InvalidateHouseholdTokens(ctx context.Context, householdID string) error {
	args := m.Called(ctx, householdID)
	return args.Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) Get(ctx context.Context, householdID string) (*dto.PantryView, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PantryView), args.Error(1)
}

func (m *MockPantryService) AddLot(ctx context.Context, householdID string, lot model.Lot) (model.Lot, error) {
	args := m.Called(ctx, householdID, lot)
	return args.Get(0).(model.Lot), args.Error(1)
}

func (m *MockPantryService) RemoveLot(ctx context.Context, householdID, lotID string) (*model.Lot, error) {
	args := m.Called(ctx, householdID, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lot), args.Error(1)
}

func (m *MockPantryService) DiscardLot(ctx context.Context, householdID, lotID string) (*model.Lot, error) {
	args := m.Called(ctx, householdID, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lot), args.Error(1)
}

func (m *MockPantryService) Decrement(ctx context.Context, householdID, name string, amount float64) (pantry.Deduction, error) {
	args := m.Called(ctx, householdID, name, amount)
	return args.Get(0).(pantry.Deduction), args.Error(1)
}

func (m *MockPantryService) ShoppingList(ctx context.Context, householdID string) ([]string, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPantryService) AddShoppingEntry(ctx context.Context, householdID, entry string) ([]string, error) {
	args := m.Called(ctx, householdID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPantryService) RemoveShoppingEntry(ctx context.Context, householdID string, index int) (string, error) {
	args := m.Called(ctx, householdID, index)
	return args.String(0), args.Error(1)
}

func (m *MockPantryService) AddMissingToShopping(ctx context.Context, householdID, recipeName string) (*dto.ShoppingAddResponse, error) {
	args := m.Called(ctx, householdID, recipeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ShoppingAddResponse), args.Error(1)
}

type MockCookingService struct {
	mock.Mock
}

func (m *MockCookingService) Check(ctx context.Context, householdID, recipeName string) (pantry.Availability, error) {
	args := m.Called(ctx, householdID, recipeName)
	return args.Get(0).(pantry.Availability), args.Error(1)
}

func (m *MockCookingService) Cook(ctx context.Context, householdID, recipeName string) (pantry.CookResult, error) {
	args := m.Called(ctx, householdID, recipeName)
	return args.Get(0).(pantry.CookResult), args.Error(1)
}

func (m *MockCookingService) Suggestions(ctx context.Context, householdID string, days int) (*service.SuggestionResult, error) {
	args := m.Called(ctx, householdID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SuggestionResult), args.Error(1)
}

type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Get(ctx context.Context, name string) (*model.Recipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Save(ctx context.Context, recipe model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRecipeService) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	args := m.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (m *MockRecipeService) SeedIfEmpty(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListHouseholds(ctx context.Context, limit, skip int64) ([]*model.Household, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Household), args.Error(1)
}

func (m *MockAdminService) HouseholdPantry(ctx context.Context, name string) (*dto.PantryView, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PantryView), args.Error(1)
}

func (m *MockAdminService) ResetPassword(ctx context.Context, name, password string) error {
	args := m.Called(ctx, name, password)
	return args.Error(0)
}

func (m *MockAdminService) DeactivateHousehold(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockAdminService) DeleteHousehold(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockAdminService) EnsureAdmin(ctx context.Context, name, password string) (bool, error) {
	args := m.Called(ctx, name, password)
	return args.Bool(0), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ShoppingListPDF(ctx context.Context, householdID, title string) ([]byte, error) {
	args := m.Called(ctx, householdID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) ExportShoppingList(ctx context.Context, householdID, householdName, title string) (string, error) {
	args := m.Called(ctx, householdID, householdName, title)
	return args.String(0), args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) FindByNames(ctx context.Context, names []string) ([]*model.Role, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Role), args.Error(1)
}

func (m *MockRoleService) EnsureDefaultRoles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateTokenPair(ctx context.Context, household *model.Household) (*dto.TokenPair, error) {
	args := m.Called(ctx, household)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*dto.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockTokenService) InvalidateAccessToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenService) InvalidateHouseholdTokens(ctx context.Context, householdID string) error {
	args := m.Called(ctx, householdID)
	return args.Error(0)
}

func (m *MockTokenService) DeleteRefreshToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenService) FindRefreshToken(ctx context.Context, tokenString string) (*model.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

var (
	_ service.AuthService    = (*MockAuthService)(nil)
	_ service.PantryService  = (*MockPantryService)(nil)
	_ service.CookingService = (*MockCookingService)(nil)
	_ service.RecipeService  = (*MockRecipeService)(nil)
	_ service.AdminService   = (*MockAdminService)(nil)
	_ service.ReportService  = (*MockReportService)(nil)
	_ service.LoggingService = (*MockLoggingService)(nil)
	_ service.RoleService    = (*MockRoleService)(nil)
	_ service.TokenService   = (*MockTokenService)(nil)
)
