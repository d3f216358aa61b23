package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/metrics"
	"github.com/guttosm/pantry-service/internal/pantry"
	"github.com/guttosm/pantry-service/internal/repository"
)

// SuggestionResult lists near-expiry stock and the recipes that use it.
type SuggestionResult struct {
	Days       int                 `json:"days" example:"7"`
	NearExpiry []model.Lot         `json:"near_expiry"`
	Recipes    []pantry.Suggestion `json:"recipes"`
}

// CookingService checks and cooks recipes against a household's stock.
type CookingService interface {
	Check(ctx context.Context, householdID, recipeName string) (pantry.Availability, error)
	// Cook deducts the recipe's ingredients. It fails with a
	// *pantry.ShortfallError when the stock does not cover the recipe.
	Cook(ctx context.Context, householdID, recipeName string) (pantry.CookResult, error)
	// Suggestions returns recipes using lots that expire within days;
	// days <= 0 selects the configured default.
	Suggestions(ctx context.Context, householdID string, days int) (*SuggestionResult, error)
}

// CookingServiceImpl implements CookingService.
type CookingServiceImpl struct {
	access     pantryAccess
	recipeRepo repository.RecipeRepositoryInterface
}

// NewCookingService creates a new cooking service.
func NewCookingService(
	pantryRepo repository.PantryRepositoryInterface,
	recipeRepo repository.RecipeRepositoryInterface,
	opts PantryOptions,
) CookingService {
	return &CookingServiceImpl{
		access:     newPantryAccess(pantryRepo, opts),
		recipeRepo: recipeRepo,
	}
}

func (s *CookingServiceImpl) Check(ctx context.Context, householdID, recipeName string) (pantry.Availability, error) {
	recipe, err := findRecipe(ctx, s.recipeRepo, recipeName)
	if err != nil {
		return pantry.Availability{}, err
	}
	p, err := s.access.load(ctx, householdID)
	if err != nil {
		return pantry.Availability{}, err
	}
	return pantry.CanCook(*recipe, p.Lots), nil
}

func (s *CookingServiceImpl) Cook(ctx context.Context, householdID, recipeName string) (result pantry.CookResult, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordCook(time.Since(start), cookOutcome(err))
	}()

	recipe, err := findRecipe(ctx, s.recipeRepo, recipeName)
	if err != nil {
		return pantry.CookResult{}, err
	}

	_, err = s.access.update(ctx, householdID, "cook", func(p *model.Pantry) (bool, error) {
		inv := s.access.inventory(p)
		res, err := pantry.Cook(*recipe, inv)
		if err != nil {
			return false, err
		}
		result = res
		p.Lots = inv.Lots()
		p.Stats.Consumed += len(res.Purged)
		return true, nil
	})
	if err != nil {
		return pantry.CookResult{}, err
	}
	return result, nil
}

func cookOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, pantry.ErrNotCookable), errors.Is(err, pantry.ErrInsufficientStock):
		return "not_cookable"
	case errors.Is(err, repository.ErrVersionConflict):
		return "conflict"
	default:
		return "error"
	}
}

func (s *CookingServiceImpl) Suggestions(ctx context.Context, householdID string, days int) (*SuggestionResult, error) {
	if days <= 0 {
		days = s.access.opts.NearExpiryDays
	}
	p, err := s.access.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if s.recipeRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	recipes, err := s.recipeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.access.today()
	result := &SuggestionResult{
		Days:       days,
		NearExpiry: pantry.NearExpiry(p.Lots, today, days),
		Recipes:    pantry.SuggestRecipes(recipes, p.Lots, today, days),
	}
	if result.NearExpiry == nil {
		result.NearExpiry = []model.Lot{}
	}
	if result.Recipes == nil {
		result.Recipes = []pantry.Suggestion{}
	}
	return result, nil
}
