package document

import (
	"context"
	"sort"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

// RecipeRepository implements repository.RecipeRepositoryInterface.
type RecipeRepository struct {
	store *Store
}

// NewRecipeRepository creates a recipe repository on store.
func NewRecipeRepository(store *Store) *RecipeRepository {
	return &RecipeRepository{store: store}
}

// List returns the catalog sorted by name.
func (r *RecipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	var out []model.Recipe
	err := r.store.view(ctx, func(ds *Dataset) error {
		out = make([]model.Recipe, 0, len(ds.Recipes))
		for _, recipe := range ds.Recipes {
			out = append(out, cloneRecipe(recipe))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// FindByName returns nil, nil when the recipe does not exist.
func (r *RecipeRepository) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	var found *model.Recipe
	err := r.store.view(ctx, func(ds *Dataset) error {
		if i := ds.recipeIndex(name); i >= 0 {
			recipe := cloneRecipe(ds.Recipes[i])
			found = &recipe
		}
		return nil
	})
	return found, err
}

// Upsert creates or replaces a recipe.
func (r *RecipeRepository) Upsert(ctx context.Context, recipe *model.Recipe) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		recipe.UpdatedAt = r.store.now()
		stored := cloneRecipe(*recipe)
		if i := ds.recipeIndex(recipe.Name); i >= 0 {
			ds.Recipes[i] = stored
			return nil
		}
		ds.Recipes = append(ds.Recipes, stored)
		return nil
	})
}

// Delete removes a recipe.
func (r *RecipeRepository) Delete(ctx context.Context, name string) error {
	return r.store.update(ctx, func(ds *Dataset) error {
		i := ds.recipeIndex(name)
		if i < 0 {
			return repository.ErrNotFound
		}
		ds.Recipes = append(ds.Recipes[:i], ds.Recipes[i+1:]...)
		return nil
	})
}

// Count returns the catalog size.
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.view(ctx, func(ds *Dataset) error {
		n = int64(len(ds.Recipes))
		return nil
	})
	return n, err
}

func cloneRecipe(r model.Recipe) model.Recipe {
	ingredients := make(map[string]float64, len(r.Ingredients))
	for k, v := range r.Ingredients {
		ingredients[k] = v
	}
	r.Ingredients = ingredients
	return r
}
