// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

type MockHouseholdRepositoryInterface struct {
	mock.Mock
}

func (m *MockHouseholdRepositoryInterface) Create(ctx context.Context, household *model.Household) error {
	args := m.Called(ctx, household)
	return args.Error(0)
}

func (m *MockHouseholdRepositoryInterface) FindByName(ctx context.Context, name string) (*model.Household, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Household), args.Error(1)
}

func (m *MockHouseholdRepositoryInterface) FindByID(ctx context.Context, id string) (*model.Household, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Household), args.Error(1)
}

func (m *MockHouseholdRepositoryInterface) Update(ctx context.Context, household *model.Household) error {
	args := m.Called(ctx, household)
	return args.Error(0)
}

func (m *MockHouseholdRepositoryInterface) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHouseholdRepositoryInterface) List(ctx context.Context, limit, skip int64) ([]*model.Household, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Household), args.Error(1)
}

type MockRoleRepositoryInterface struct {
	mock.Mock
}

func (m *MockRoleRepositoryInterface) Create(ctx context.Context, role *model.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepositoryInterface) FindByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepositoryInterface) FindByNames(ctx context.Context, names []string) ([]*model.Role, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Role), args.Error(1)
}

func (m *MockRoleRepositoryInterface) List(ctx context.Context) ([]*model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Role), args.Error(1)
}

type MockTokenRepositoryInterface struct {
	mock.Mock
}

func (m *MockTokenRepositoryInterface) Create(ctx context.Context, token *model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepositoryInterface) DeleteByToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) DeleteByHouseholdID(ctx context.Context, householdID string, tokenType string) error {
	args := m.Called(ctx, householdID, tokenType)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	args := m.Called(ctx, tokenString)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepositoryInterface) CleanupExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPantryRepositoryInterface struct {
	mock.Mock
}

func (m *MockPantryRepositoryInterface) Get(ctx context.Context, householdID string) (*model.Pantry, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pantry), args.Error(1)
}

func (m *MockPantryRepositoryInterface) Create(ctx context.Context, pantry *model.Pantry) error {
	args := m.Called(ctx, pantry)
	return args.Error(0)
}

func (m *MockPantryRepositoryInterface) PushLot(ctx context.Context, householdID string, lot model.Lot) error {
	args := m.Called(ctx, householdID, lot)
	return args.Error(0)
}

func (m *MockPantryRepositoryInterface) PullLot(ctx context.Context, householdID, lotID string, reason repository.PullReason) (*model.Lot, error) {
	args := m.Called(ctx, householdID, lotID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lot), args.Error(1)
}

func (m *MockPantryRepositoryInterface) PushShoppingEntry(ctx context.Context, householdID, entry string, unique bool) (bool, error) {
	args := m.Called(ctx, householdID, entry, unique)
	return args.Bool(0), args.Error(1)
}

func (m *MockPantryRepositoryInterface) Replace(ctx context.Context, pantry *model.Pantry) error {
	args := m.Called(ctx, pantry)
	return args.Error(0)
}

func (m *MockPantryRepositoryInterface) Delete(ctx context.Context, householdID string) error {
	args := m.Called(ctx, householdID)
	return args.Error(0)
}

type MockRecipeRepositoryInterface struct {
	mock.Mock
}

func (m *MockRecipeRepositoryInterface) List(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepositoryInterface) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepositoryInterface) Upsert(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepositoryInterface) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRecipeRepositoryInterface) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type MockLogsRepositoryInterface struct {
	mock.Mock
}

func (m *MockLogsRepositoryInterface) Create(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogsRepositoryInterface) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLogsRepositoryInterface) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLogsRepositoryInterface) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
