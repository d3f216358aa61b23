package pantry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var (
	// ErrNotCookable is the sentinel wrapped by ShortfallError.
	ErrNotCookable = errors.New("recipe cannot be cooked from current stock")
	// ErrInsufficientStock is returned by Cook when ingredients that match
	// the same lots together need more than those lots hold.
	ErrInsufficientStock = errors.New("insufficient stock for overlapping ingredients")
)

// ShortfallError is returned by Cook when the recipe is not satisfiable.
type ShortfallError struct {
	Recipe    string
	Shortfall map[string]float64
}

func (e *ShortfallError) Error() string {
	names := make([]string, 0, len(e.Shortfall))
	for name := range e.Shortfall {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%s)", name, decimal.NewFromFloat(e.Shortfall[name]).String())
	}
	return fmt.Sprintf("recipe %q cannot be cooked, missing %s", e.Recipe, strings.Join(parts, ", "))
}

func (e *ShortfallError) Unwrap() error {
	return ErrNotCookable
}

// fold normalises a name for caseless comparison.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Matches reports whether a lot named lotName supplies ingredient: the
// folded lot name must contain the folded ingredient name. The match is
// deliberately loose, so "Ei" also matches "Eis".
func Matches(ingredient, lotName string) bool {
	ing := fold(ingredient)
	if ing == "" {
		return false
	}
	return strings.Contains(fold(lotName), ing)
}

// overlaps reports whether either name contains the other after folding.
func overlaps(a, b string) bool {
	fa, fb := fold(a), fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}

func stockOf(name string, lots []model.Lot) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lots {
		if Matches(name, l.Name) && l.Quantity > 0 {
			sum = sum.Add(decimal.NewFromFloat(l.Quantity))
		}
	}
	return sum
}

// IngredientStock sums the quantities of every lot matching name. Units
// are not converted.
func IngredientStock(name string, lots []model.Lot) float64 {
	return stockOf(name, lots).InexactFloat64()
}

// Availability is the result of CanCook.
type Availability struct {
	Recipe    string             `json:"recipe"`
	Cookable  bool               `json:"cookable"`
	Available map[string]float64 `json:"available"`
	// Shortfall holds required minus available, only for ingredients in deficit.
	Shortfall map[string]float64 `json:"shortfall"`
}

// CanCook checks every ingredient of recipe against lots without mutating
// them. An ingredient is satisfied when available >= required.
func CanCook(recipe model.Recipe, lots []model.Lot) Availability {
	a := Availability{
		Recipe:    recipe.Name,
		Cookable:  true,
		Available: make(map[string]float64, len(recipe.Ingredients)),
		Shortfall: make(map[string]float64),
	}
	for _, name := range recipe.IngredientNames() {
		required := decimal.NewFromFloat(recipe.Ingredients[name])
		available := stockOf(name, lots)
		a.Available[name] = available.InexactFloat64()
		if available.LessThan(required) {
			a.Cookable = false
			a.Shortfall[name] = required.Sub(available).InexactFloat64()
		}
	}
	return a
}

// CookResult describes a committed cook.
type CookResult struct {
	Recipe   string             `json:"recipe"`
	Consumed map[string]float64 `json:"consumed"`
	Touched  []string           `json:"touched"`
	Purged   []model.Lot        `json:"purged"`
}

// Cook deducts the recipe's ingredients from inv. The recipe must pass
// CanCook, otherwise a *ShortfallError is returned. Ingredients are
// processed in name order, each draining matching lots in the inventory's
// deduction order; lots left at or below zero are purged. The deduction is
// computed on a copy and only committed when every ingredient was fully
// covered, so a failed Cook leaves inv untouched.
func Cook(recipe model.Recipe, inv *Inventory) (CookResult, error) {
	avail := CanCook(recipe, inv.lots)
	if !avail.Cookable {
		return CookResult{}, &ShortfallError{Recipe: recipe.Name, Shortfall: avail.Shortfall}
	}

	work := inv.clone()
	result := CookResult{
		Recipe:   recipe.Name,
		Consumed: make(map[string]float64, len(recipe.Ingredients)),
	}
	seen := make(map[string]bool)
	for _, name := range recipe.IngredientNames() {
		need := decimal.NewFromFloat(recipe.Ingredients[name])
		if !need.IsPositive() {
			continue
		}
		remaining, touched := work.drain(name, need)
		if remaining.IsPositive() {
			return CookResult{}, fmt.Errorf("%w: %s short by %s", ErrInsufficientStock, name, remaining.String())
		}
		result.Consumed[name] = need.InexactFloat64()
		for _, id := range touched {
			if !seen[id] {
				seen[id] = true
				result.Touched = append(result.Touched, id)
			}
		}
	}
	result.Purged = work.purge(nil)

	inv.lots = work.lots
	return result, nil
}

// Suggestion is a recipe that would use up near-expiry stock.
type Suggestion struct {
	Recipe string `json:"recipe"`
	// Ingredients lists the recipe ingredients that overlap near-expiry lots.
	Ingredients []string `json:"ingredients"`
	// Lots lists the names of the near-expiry lots involved.
	Lots []string `json:"lots"`
}

// SuggestRecipes returns recipes whose ingredient names overlap the name
// of any lot expiring within days of today. Overlap is a case-insensitive
// substring match in either direction. Recipes keep their input order.
func SuggestRecipes(recipes []model.Recipe, lots []model.Lot, today time.Time, days int) []Suggestion {
	near := NearExpiry(lots, today, days)
	if len(near) == 0 {
		return nil
	}

	var out []Suggestion
	for _, r := range recipes {
		var s Suggestion
		lotSeen := make(map[string]bool)
		for _, ing := range r.IngredientNames() {
			hit := false
			for _, l := range near {
				if !overlaps(ing, l.Name) {
					continue
				}
				hit = true
				if !lotSeen[l.Name] {
					lotSeen[l.Name] = true
					s.Lots = append(s.Lots, l.Name)
				}
			}
			if hit {
				s.Ingredients = append(s.Ingredients, ing)
			}
		}
		if len(s.Ingredients) > 0 {
			s.Recipe = r.Name
			out = append(out, s)
		}
	}
	return out
}
