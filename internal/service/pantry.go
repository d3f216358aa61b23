package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/metrics"
	"github.com/guttosm/pantry-service/internal/pantry"
	"github.com/guttosm/pantry-service/internal/repository"
)

// PantryService provides stock and shopping list operations for one household.
type PantryService interface {
	Get(ctx context.Context, householdID string) (*dto.PantryView, error)
	AddLot(ctx context.Context, householdID string, lot model.Lot) (model.Lot, error)
	// RemoveLot deletes a lot entered by mistake; stats are not touched.
	RemoveLot(ctx context.Context, householdID, lotID string) (*model.Lot, error)
	// DiscardLot deletes a lot that was thrown away and counts it.
	DiscardLot(ctx context.Context, householdID, lotID string) (*model.Lot, error)
	Decrement(ctx context.Context, householdID, name string, amount float64) (pantry.Deduction, error)
	ShoppingList(ctx context.Context, householdID string) ([]string, error)
	AddShoppingEntry(ctx context.Context, householdID, entry string) ([]string, error)
	RemoveShoppingEntry(ctx context.Context, householdID string, index int) (string, error)
	// AddMissingToShopping appends every ingredient the recipe is short of,
	// with the missing quantity in parentheses. Ingredients already on the
	// list are skipped.
	AddMissingToShopping(ctx context.Context, householdID, recipeName string) (*dto.ShoppingAddResponse, error)
}

// PantryServiceImpl implements PantryService.
type PantryServiceImpl struct {
	access     pantryAccess
	recipeRepo repository.RecipeRepositoryInterface
}

// NewPantryService creates a new pantry service.
func NewPantryService(
	pantryRepo repository.PantryRepositoryInterface,
	recipeRepo repository.RecipeRepositoryInterface,
	opts PantryOptions,
) PantryService {
	return &PantryServiceImpl{
		access:     newPantryAccess(pantryRepo, opts),
		recipeRepo: recipeRepo,
	}
}

// Get returns the pantry grouped by location with expiry annotations.
func (s *PantryServiceImpl) Get(ctx context.Context, householdID string) (*dto.PantryView, error) {
	p, err := s.access.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return BuildPantryView(p, s.access.today()), nil
}

// BuildPantryView groups the pantry's lots by location in display order.
// Within a location lots keep their stored order.
func BuildPantryView(p *model.Pantry, today time.Time) *dto.PantryView {
	view := &dto.PantryView{
		HouseholdID:  p.HouseholdID,
		Locations:    []dto.LocationGroup{},
		ShoppingList: append([]string{}, p.ShoppingList...),
		Stats:        p.Stats,
		Version:      p.Version,
	}

	byLocation := make(map[model.Location][]dto.LotView)
	for _, lot := range p.Lots {
		loc := lot.Location
		if !loc.Valid() {
			loc = model.LocationOther
		}
		lv := dto.LotView{Lot: lot, Status: string(pantry.ExpiryStatus(lot, today))}
		if days, ok := pantry.DaysUntilExpiry(lot, today); ok {
			lv.DaysUntilExpiry = &days
		}
		byLocation[loc] = append(byLocation[loc], lv)
	}
	for _, loc := range model.Locations {
		if lots := byLocation[loc]; len(lots) > 0 {
			view.Locations = append(view.Locations, dto.LocationGroup{Location: loc, Lots: lots})
		}
	}
	return view
}

// AddLot validates the lot, assigns its id and appends it.
func (s *PantryServiceImpl) AddLot(ctx context.Context, householdID string, lot model.Lot) (model.Lot, error) {
	p, err := s.access.load(ctx, householdID)
	if err != nil {
		return model.Lot{}, err
	}
	added, err := s.access.inventory(p).Add(lot)
	if err != nil {
		return model.Lot{}, err
	}
	if err := s.access.repo.PushLot(ctx, householdID, added); err != nil {
		metrics.RecordPantryOperation("add_lot", "error")
		return model.Lot{}, err
	}
	metrics.RecordPantryOperation("add_lot", "success")
	return added, nil
}

func (s *PantryServiceImpl) RemoveLot(ctx context.Context, householdID, lotID string) (*model.Lot, error) {
	return s.pull(ctx, householdID, lotID, repository.PullRemoved, "remove_lot")
}

func (s *PantryServiceImpl) DiscardLot(ctx context.Context, householdID, lotID string) (*model.Lot, error) {
	return s.pull(ctx, householdID, lotID, repository.PullDiscarded, "discard_lot")
}

func (s *PantryServiceImpl) pull(ctx context.Context, householdID, lotID string, reason repository.PullReason, op string) (*model.Lot, error) {
	if s.access.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	lot, err := s.access.repo.PullLot(ctx, householdID, lotID, reason)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordPantryOperation(op, "not_found")
		return nil, pantry.ErrLotNotFound
	}
	if err != nil {
		metrics.RecordPantryOperation(op, "error")
		return nil, err
	}
	metrics.RecordPantryOperation(op, "success")
	return lot, nil
}

// Decrement takes amount out of lots whose name contains name. Purged lots
// count as consumed. When nothing matches the pantry is not written and the
// whole amount is reported as unsatisfied.
func (s *PantryServiceImpl) Decrement(ctx context.Context, householdID, name string, amount float64) (pantry.Deduction, error) {
	var result pantry.Deduction
	_, err := s.access.update(ctx, householdID, "decrement", func(p *model.Pantry) (bool, error) {
		inv := s.access.inventory(p)
		d, err := inv.Decrement(name, amount)
		if err != nil {
			return false, err
		}
		result = d
		if len(d.Touched) == 0 {
			return false, nil
		}
		p.Lots = inv.Lots()
		p.Stats.Consumed += len(d.Purged)
		return true, nil
	})
	if err != nil {
		return pantry.Deduction{}, err
	}
	return result, nil
}

func (s *PantryServiceImpl) ShoppingList(ctx context.Context, householdID string) ([]string, error) {
	p, err := s.access.load(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return p.ShoppingList, nil
}

// AddShoppingEntry appends entry. Manual entries are not deduplicated.
func (s *PantryServiceImpl) AddShoppingEntry(ctx context.Context, householdID, entry string) ([]string, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil, ErrInvalidEntry
	}
	if _, err := s.access.load(ctx, householdID); err != nil {
		return nil, err
	}
	if _, err := s.access.repo.PushShoppingEntry(ctx, householdID, entry, false); err != nil {
		return nil, err
	}
	metrics.RecordPantryOperation("shopping_add", "success")
	return s.ShoppingList(ctx, householdID)
}

// RemoveShoppingEntry deletes the entry at index and returns it.
func (s *PantryServiceImpl) RemoveShoppingEntry(ctx context.Context, householdID string, index int) (string, error) {
	var removed string
	_, err := s.access.update(ctx, householdID, "shopping_remove", func(p *model.Pantry) (bool, error) {
		if index < 0 || index >= len(p.ShoppingList) {
			return false, ErrShoppingIndex
		}
		removed = p.ShoppingList[index]
		p.ShoppingList = append(p.ShoppingList[:index], p.ShoppingList[index+1:]...)
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return removed, nil
}

func (s *PantryServiceImpl) AddMissingToShopping(ctx context.Context, householdID, recipeName string) (*dto.ShoppingAddResponse, error) {
	recipe, err := findRecipe(ctx, s.recipeRepo, recipeName)
	if err != nil {
		return nil, err
	}

	resp := &dto.ShoppingAddResponse{Added: []string{}}
	p, err := s.access.update(ctx, householdID, "shopping_missing", func(p *model.Pantry) (bool, error) {
		resp.Added = resp.Added[:0]
		avail := pantry.CanCook(*recipe, p.Lots)
		for _, name := range recipe.IngredientNames() {
			missing, short := avail.Shortfall[name]
			if !short || onShoppingList(p.ShoppingList, name) {
				continue
			}
			entry := ShoppingEntry(name, missing)
			p.ShoppingList = append(p.ShoppingList, entry)
			resp.Added = append(resp.Added, entry)
		}
		return len(resp.Added) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	resp.Entries = p.ShoppingList
	return resp, nil
}

// ShoppingEntry formats an ingredient with its missing quantity, e.g. "Eier (4)".
func ShoppingEntry(name string, missing float64) string {
	return fmt.Sprintf("%s (%s)", name, decimal.NewFromFloat(missing).String())
}

// onShoppingList reports whether name is already on the list, with or
// without a quantity hint.
func onShoppingList(list []string, name string) bool {
	for _, entry := range list {
		base := entry
		if i := strings.LastIndex(entry, " ("); i > 0 && strings.HasSuffix(entry, ")") {
			base = entry[:i]
		}
		if strings.EqualFold(strings.TrimSpace(base), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func findRecipe(ctx context.Context, repo repository.RecipeRepositoryInterface, name string) (*model.Recipe, error) {
	if repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	recipe, err := repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}
