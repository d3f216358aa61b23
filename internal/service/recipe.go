package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/repository"
)

// RecipeService manages the recipe catalog shared by all households.
type RecipeService interface {
	List(ctx context.Context) ([]model.Recipe, error)
	Get(ctx context.Context, name string) (*model.Recipe, error)
	Save(ctx context.Context, recipe model.Recipe) (*model.Recipe, error)
	Delete(ctx context.Context, name string) error
	// ImportYAML validates every recipe in r before storing any of them.
	ImportYAML(ctx context.Context, r io.Reader) (int, error)
	// SeedIfEmpty imports path when the catalog has no recipes yet.
	SeedIfEmpty(ctx context.Context, path string) (int, error)
}

// RecipeFile is the YAML layout read by ImportYAML.
//
//	recipes:
//	  - name: Pfannkuchen
//	    ingredients:
//	      Mehl: 250
//	      Milch: 0.5
//	    instructions: Alles verrühren.
type RecipeFile struct {
	Recipes []model.Recipe `yaml:"recipes"`
}

// RecipeServiceImpl implements RecipeService.
type RecipeServiceImpl struct {
	repo repository.RecipeRepositoryInterface
	fs   afero.Fs
}

// NewRecipeService creates a new recipe service. fs is used to read seed
// files; nil means the OS filesystem.
func NewRecipeService(repo repository.RecipeRepositoryInterface, fs afero.Fs) RecipeService {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &RecipeServiceImpl{repo: repo, fs: fs}
}

func (s *RecipeServiceImpl) List(ctx context.Context) ([]model.Recipe, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx)
}

func (s *RecipeServiceImpl) Get(ctx context.Context, name string) (*model.Recipe, error) {
	return findRecipe(ctx, s.repo, strings.TrimSpace(name))
}

// Save creates or replaces a recipe after validating it.
func (s *RecipeServiceImpl) Save(ctx context.Context, recipe model.Recipe) (*model.Recipe, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := ValidateRecipe(&recipe); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeServiceImpl) Delete(ctx context.Context, name string) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	err := s.repo.Delete(ctx, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRecipeNotFound
	}
	return err
}

func (s *RecipeServiceImpl) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}

	var file RecipeFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %w", ErrMalformedRecipeFile, err)
	}

	seen := make(map[string]bool, len(file.Recipes))
	for i := range file.Recipes {
		if err := ValidateRecipe(&file.Recipes[i]); err != nil {
			return 0, fmt.Errorf("recipe %d: %w", i+1, err)
		}
		name := file.Recipes[i].Name
		if seen[name] {
			return 0, fmt.Errorf("%w: duplicate recipe %q", ErrInvalidRecipe, name)
		}
		seen[name] = true
	}

	for i := range file.Recipes {
		if err := s.repo.Upsert(ctx, &file.Recipes[i]); err != nil {
			return i, fmt.Errorf("store recipe %q: %w", file.Recipes[i].Name, err)
		}
	}
	return len(file.Recipes), nil
}

func (s *RecipeServiceImpl) SeedIfEmpty(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Debug().Int64("recipes", count).Msg("Recipe catalog not empty, skipping seed")
		return 0, nil
	}

	f, err := s.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open recipe seed: %w", err)
	}
	defer f.Close()

	n, err := s.ImportYAML(ctx, f)
	if err != nil {
		return n, err
	}
	log.Info().Int("recipes", n).Str("file", path).Msg("Seeded recipe catalog")
	return n, nil
}

// ValidateRecipe trims names and checks that the recipe has at least one
// ingredient and only positive quantities.
func ValidateRecipe(recipe *model.Recipe) error {
	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}
	if len(recipe.Ingredients) == 0 {
		return fmt.Errorf("%w: %s has no ingredients", ErrInvalidRecipe, recipe.Name)
	}

	cleaned := make(map[string]float64, len(recipe.Ingredients))
	for name, qty := range recipe.Ingredients {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("%w: %s has an unnamed ingredient", ErrInvalidRecipe, recipe.Name)
		}
		if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
			return fmt.Errorf("%w: %s needs a positive quantity of %s", ErrInvalidRecipe, recipe.Name, name)
		}
		if _, dup := cleaned[name]; dup {
			return fmt.Errorf("%w: %s lists %s twice", ErrInvalidRecipe, recipe.Name, name)
		}
		cleaned[name] = qty
	}
	recipe.Ingredients = cleaned
	recipe.Instructions = strings.TrimSpace(recipe.Instructions)
	return nil
}
