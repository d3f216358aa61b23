package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository/document"
	"github.com/guttosm/pantry-service/internal/service"
)

var testNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

type docRepos struct {
	pantries *document.PantryRepository
	recipes  *document.RecipeRepository
}

// newDocRepos returns repositories backed by an in-memory document store.
func newDocRepos(t *testing.T) docRepos {
	t.Helper()
	store := document.NewStore(document.NewFileBackendFs(afero.NewMemMapFs(), "/data/pantry.json"))
	return docRepos{
		pantries: document.NewPantryRepository(store),
		recipes:  document.NewRecipeRepository(store),
	}
}

func testPantryOptions() service.PantryOptions {
	opts := service.DefaultPantryOptions()
	opts.Now = func() time.Time { return testNow }
	return opts
}

func day(offset int) *time.Time {
	d := time.Date(testNow.Year(), testNow.Month(), testNow.Day()+offset, 0, 0, 0, 0, time.UTC)
	return &d
}

func addLots(t *testing.T, svc service.PantryService, householdID string, lots ...model.Lot) []model.Lot {
	t.Helper()
	out := make([]model.Lot, 0, len(lots))
	for _, lot := range lots {
		added, err := svc.AddLot(context.Background(), householdID, lot)
		require.NoError(t, err)
		out = append(out, added)
	}
	return out
}

func saveRecipe(t *testing.T, repos docRepos, name string, ingredients map[string]float64) {
	t.Helper()
	require.NoError(t, repos.recipes.Upsert(context.Background(), &model.Recipe{Name: name, Ingredients: ingredients}))
}
