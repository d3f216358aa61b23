package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/mocks"
	"github.com/guttosm/pantry-service/internal/pantry"
	"github.com/guttosm/pantry-service/internal/service"
)

func newCookingFixture(t *testing.T) (service.CookingService, service.PantryService, docRepos) {
	repos := newDocRepos(t)
	opts := testPantryOptions()
	return service.NewCookingService(repos.pantries, repos.recipes, opts),
		service.NewPantryService(repos.pantries, repos.recipes, opts),
		repos
}

func TestCookingService_Check(t *testing.T) {
	cooking, pantries, repos := newCookingFixture(t)
	saveRecipe(t, repos, "Pfannkuchen", map[string]float64{"Mehl": 250, "Eier": 3, "Milch": 0.5})
	addLots(t, pantries, household,
		model.Lot{Name: "Weizenmehl", Quantity: 200, Unit: "g", Location: model.LocationPantryShelf},
		model.Lot{Name: "Dinkelmehl", Quantity: 100, Unit: "g", Location: model.LocationPantryShelf},
		model.Lot{Name: "Eier", Quantity: 2, Unit: "Stk", Location: model.LocationFridge},
	)

	avail, err := cooking.Check(context.Background(), household, "Pfannkuchen")
	require.NoError(t, err)

	assert.False(t, avail.Cookable)
	assert.InDelta(t, 300.0, avail.Available["Mehl"], 1e-9)
	assert.Equal(t, map[string]float64{"Eier": 1, "Milch": 0.5}, avail.Shortfall)

	_, err = cooking.Check(context.Background(), household, "Unbekannt")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestCookingService_Cook(t *testing.T) {
	t.Run("deducts ingredients and counts purged lots", func(t *testing.T) {
		cooking, pantries, repos := newCookingFixture(t)
		saveRecipe(t, repos, "Rührei", map[string]float64{"Eier": 3, "Butter": 10})
		addLots(t, pantries, household,
			model.Lot{Name: "Eier", Quantity: 2, Unit: "Stk", Location: model.LocationFridge},
			model.Lot{Name: "Eier", Quantity: 6, Unit: "Stk", Location: model.LocationFridge},
			model.Lot{Name: "Butter", Quantity: 250, Unit: "g", Location: model.LocationFridge},
		)

		result, err := cooking.Cook(context.Background(), household, "Rührei")
		require.NoError(t, err)
		assert.Equal(t, "Rührei", result.Recipe)
		assert.Equal(t, map[string]float64{"Eier": 3, "Butter": 10}, result.Consumed)
		require.Len(t, result.Purged, 1)
		assert.Zero(t, result.Purged[0].Quantity)

		stored, err := repos.pantries.Get(context.Background(), household)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Stats.Consumed)
		require.Len(t, stored.Lots, 2)
		assert.InDelta(t, 5.0, stored.Lots[0].Quantity, 1e-9)
		assert.InDelta(t, 240.0, stored.Lots[1].Quantity, 1e-9)
	})

	t.Run("shortfall leaves stock untouched", func(t *testing.T) {
		cooking, pantries, repos := newCookingFixture(t)
		saveRecipe(t, repos, "Pfannkuchen", map[string]float64{"Mehl": 250, "Eier": 3})
		addLots(t, pantries, household,
			model.Lot{Name: "Mehl", Quantity: 1000, Unit: "g", Location: model.LocationPantryShelf},
		)
		before, err := repos.pantries.Get(context.Background(), household)
		require.NoError(t, err)

		_, err = cooking.Cook(context.Background(), household, "Pfannkuchen")

		var shortfall *pantry.ShortfallError
		require.True(t, errors.As(err, &shortfall))
		assert.ErrorIs(t, err, pantry.ErrNotCookable)
		assert.Equal(t, map[string]float64{"Eier": 3}, shortfall.Shortfall)

		after, err := repos.pantries.Get(context.Background(), household)
		require.NoError(t, err)
		assert.Equal(t, before.Version, after.Version)
		assert.InDelta(t, 1000.0, after.Lots[0].Quantity, 1e-9)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		cooking, _, _ := newCookingFixture(t)
		_, err := cooking.Cook(context.Background(), household, "Unbekannt")
		assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	})

	t.Run("recipe lookup fails", func(t *testing.T) {
		recipes := new(mocks.MockRecipeRepositoryInterface)
		boom := errors.New("catalog unavailable")
		recipes.On("FindByName", mock.Anything, "Rührei").Return(nil, boom)
		cooking := service.NewCookingService(new(mocks.MockPantryRepositoryInterface), recipes, testPantryOptions())

		_, err := cooking.Cook(context.Background(), household, "Rührei")
		assert.ErrorIs(t, err, boom)
		recipes.AssertExpectations(t)
	})
}

func TestCookingService_Suggestions(t *testing.T) {
	cooking, pantries, repos := newCookingFixture(t)
	saveRecipe(t, repos, "Pfannkuchen", map[string]float64{"Mehl": 250, "Milch": 0.5})
	saveRecipe(t, repos, "Spinatlasagne", map[string]float64{"Blattspinat": 400, "Lasagneplatten": 250})
	saveRecipe(t, repos, "Reis mit Ei", map[string]float64{"Reis": 200, "Eier": 2})
	addLots(t, pantries, household,
		model.Lot{Name: "Milch", Quantity: 1, Unit: "L", Location: model.LocationFridge, Expiry: day(2)},
		model.Lot{Name: "Spinat", Quantity: 300, Unit: "g", Location: model.LocationFridge, Expiry: day(5)},
		model.Lot{Name: "Reis", Quantity: 1000, Unit: "g", Location: model.LocationPantryShelf, Expiry: day(60)},
		model.Lot{Name: "Salz", Quantity: 500, Unit: "g", Location: model.LocationSpiceCabinet},
	)

	tests := []struct {
		name        string
		days        int
		wantDays    int
		wantNear    []string
		wantRecipes []string
	}{
		{
			name:        "default window",
			days:        0,
			wantDays:    pantry.DefaultNearExpiryDays,
			wantNear:    []string{"Milch", "Spinat"},
			wantRecipes: []string{"Pfannkuchen", "Spinatlasagne"},
		},
		{
			name:        "narrow window",
			days:        3,
			wantDays:    3,
			wantNear:    []string{"Milch"},
			wantRecipes: []string{"Pfannkuchen"},
		},
		{
			name:        "wide window",
			days:        90,
			wantDays:    90,
			wantNear:    []string{"Milch", "Spinat", "Reis"},
			wantRecipes: []string{"Pfannkuchen", "Reis mit Ei", "Spinatlasagne"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := cooking.Suggestions(context.Background(), household, tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, result.Days)

			near := make([]string, 0, len(result.NearExpiry))
			for _, l := range result.NearExpiry {
				near = append(near, l.Name)
			}
			assert.Equal(t, tt.wantNear, near)

			recipes := make([]string, 0, len(result.Recipes))
			for _, s := range result.Recipes {
				recipes = append(recipes, s.Recipe)
			}
			assert.Equal(t, tt.wantRecipes, recipes)
		})
	}
}

func TestCookingService_SuggestionsEmpty(t *testing.T) {
	cooking, _, _ := newCookingFixture(t)

	result, err := cooking.Suggestions(context.Background(), household, 7)
	require.NoError(t, err)
	assert.NotNil(t, result.NearExpiry)
	assert.NotNil(t, result.Recipes)
	assert.Empty(t, result.Recipes)
}
