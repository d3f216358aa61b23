package service_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/mocks"
	"github.com/guttosm/pantry-service/internal/service"
)

const recipeYAML = `recipes:
  - name: Pfannkuchen
    ingredients:
      Mehl: 250
      Milch: 0.5
      Eier: 3
    instructions: Alles verrühren und ausbacken.
  - name: " Rührei "
    ingredients:
      Eier: 3
      Butter: 10
`

func TestValidateRecipe(t *testing.T) {
	tests := []struct {
		name    string
		recipe  model.Recipe
		wantErr bool
	}{
		{name: "valid", recipe: model.Recipe{Name: " Toast ", Ingredients: map[string]float64{" Brot ": 2}}},
		{name: "no name", recipe: model.Recipe{Ingredients: map[string]float64{"Brot": 2}}, wantErr: true},
		{name: "no ingredients", recipe: model.Recipe{Name: "Toast"}, wantErr: true},
		{name: "zero quantity", recipe: model.Recipe{Name: "Toast", Ingredients: map[string]float64{"Brot": 0}}, wantErr: true},
		{name: "NaN quantity", recipe: model.Recipe{Name: "Toast", Ingredients: map[string]float64{"Brot": math.NaN()}}, wantErr: true},
		{name: "blank ingredient", recipe: model.Recipe{Name: "Toast", Ingredients: map[string]float64{" ": 1}}, wantErr: true},
		{name: "duplicate after trim", recipe: model.Recipe{Name: "Toast", Ingredients: map[string]float64{"Brot": 1, "Brot ": 2}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := tt.recipe
			err := service.ValidateRecipe(&recipe)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidRecipe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Toast", recipe.Name)
			assert.Equal(t, map[string]float64{"Brot": 2}, recipe.Ingredients)
		})
	}
}

func TestRecipeService_SaveGetDelete(t *testing.T) {
	repos := newDocRepos(t)
	svc := service.NewRecipeService(repos.recipes, afero.NewMemMapFs())
	ctx := context.Background()

	saved, err := svc.Save(ctx, model.Recipe{Name: "Toast", Ingredients: map[string]float64{"Brot": 2}})
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	_, err = svc.Save(ctx, model.Recipe{Name: "Leer"})
	assert.ErrorIs(t, err, service.ErrInvalidRecipe)

	got, err := svc.Get(ctx, " Toast ")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Ingredients["Brot"])

	require.NoError(t, svc.Delete(ctx, "Toast"))
	assert.ErrorIs(t, svc.Delete(ctx, "Toast"), service.ErrRecipeNotFound)
	_, err = svc.Get(ctx, "Toast")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestRecipeService_ImportYAML(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   error
		wantNames []string
	}{
		{name: "valid file", input: recipeYAML, wantCount: 2, wantNames: []string{"Pfannkuchen", "Rührei"}},
		{name: "empty input", input: "", wantNames: []string{}},
		{
			name:      "one invalid recipe rejects the file",
			input:     recipeYAML + "  - name: Kaputt\n    ingredients:\n      Wasser: -1\n",
			wantErr:   service.ErrInvalidRecipe,
			wantNames: []string{},
		},
		{
			name:      "duplicate names",
			input:     recipeYAML + "  - name: Pfannkuchen\n    ingredients:\n      Mehl: 1\n",
			wantErr:   service.ErrInvalidRecipe,
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newDocRepos(t)
			svc := service.NewRecipeService(repos.recipes, nil)

			n, err := svc.ImportYAML(context.Background(), strings.NewReader(tt.input))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCount, n)
			}
			recipes, err := svc.List(context.Background())
			require.NoError(t, err)
			names := make([]string, 0, len(recipes))
			for _, r := range recipes {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestRecipeService_ImportYAMLMalformed(t *testing.T) {
	repos := newDocRepos(t)
	svc := service.NewRecipeService(repos.recipes, nil)

	_, err := svc.ImportYAML(context.Background(), strings.NewReader("recipes: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse recipe file")
}

func TestRecipeService_SeedIfEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/seed/recipes.yaml", []byte(recipeYAML), 0o644))

	t.Run("seeds an empty catalog once", func(t *testing.T) {
		repos := newDocRepos(t)
		svc := service.NewRecipeService(repos.recipes, fs)

		n, err := svc.SeedIfEmpty(context.Background(), "/seed/recipes.yaml")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = svc.SeedIfEmpty(context.Background(), "/seed/recipes.yaml")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("no path", func(t *testing.T) {
		svc := service.NewRecipeService(nil, fs)
		n, err := svc.SeedIfEmpty(context.Background(), "")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("missing file", func(t *testing.T) {
		repos := newDocRepos(t)
		svc := service.NewRecipeService(repos.recipes, fs)
		_, err := svc.SeedIfEmpty(context.Background(), "/seed/missing.yaml")
		assert.Error(t, err)
	})

	t.Run("count fails", func(t *testing.T) {
		repo := new(mocks.MockRecipeRepositoryInterface)
		boom := errors.New("store unavailable")
		repo.On("Count", mock.Anything).Return(int64(0), boom)
		svc := service.NewRecipeService(repo, fs)

		_, err := svc.SeedIfEmpty(context.Background(), "/seed/recipes.yaml")
		assert.ErrorIs(t, err, boom)
	})
}
