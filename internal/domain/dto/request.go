// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"math"
	"strings"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
)

// DateLayout is the wire format of expiry dates.
const DateLayout = "2006-01-02"

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// AddLotRequest represents the JSON request body for adding a stock lot.
//
// Location accepts the canonical names as well as the labels used by older
// data files (e.g. "Kühlschrank").
//
// @Description Request to add a stock lot to the pantry
// @Example {"name": "Milch", "quantity": 1.5, "unit": "L", "location": "fridge", "expiry": "2026-02-01"}
type AddLotRequest struct {
	Name     string  `json:"name" binding:"required" example:"Milch"`
	Quantity float64 `json:"quantity" binding:"required" example:"1.5"`
	Unit     string  `json:"unit" binding:"required" example:"L"`
	Location string  `json:"location" binding:"required" example:"fridge"`
	// Expiry is an optional best-before date in YYYY-MM-DD format.
	Expiry string `json:"expiry,omitempty" example:"2026-02-01"`
} // @name AddLotRequest

// Validate checks the request and returns the lot it describes.
func (r *AddLotRequest) Validate() (model.Lot, error) {
	lot := model.Lot{
		Name: strings.TrimSpace(r.Name),
		Unit: strings.TrimSpace(r.Unit),
	}
	if lot.Name == "" {
		return model.Lot{}, &ValidationError{Field: "name", Message: "name is required"}
	}
	if !positive(r.Quantity) {
		return model.Lot{}, &ValidationError{Field: "quantity", Message: "must be greater than zero"}
	}
	lot.Quantity = r.Quantity
	if lot.Unit == "" {
		return model.Lot{}, &ValidationError{Field: "unit", Message: "unit is required"}
	}
	loc, ok := model.ParseLocation(strings.TrimSpace(r.Location))
	if !ok {
		return model.Lot{}, &ValidationError{Field: "location", Message: "unknown location"}
	}
	lot.Location = loc
	if r.Expiry != "" {
		exp, err := time.Parse(DateLayout, r.Expiry)
		if err != nil {
			return model.Lot{}, &ValidationError{Field: "expiry", Message: "must be a date in YYYY-MM-DD format"}
		}
		lot.Expiry = &exp
	}
	return lot, nil
}

// DecrementRequest represents the JSON request body for taking stock out.
//
// @Description Request to remove an amount of an item across matching lots
// @Example {"name": "Mehl", "amount": 300}
type DecrementRequest struct {
	Name   string  `json:"name" binding:"required" example:"Mehl"`
	Amount float64 `json:"amount" binding:"required" example:"300"`
} // @name DecrementRequest

// Validate performs custom validation on the request.
func (r *DecrementRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if !positive(r.Amount) {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	return nil
}

// SaveRecipeRequest represents the JSON request body for creating or
// replacing a recipe. The recipe name comes from the path.
//
// @Description Recipe ingredients and instructions
// @Example {"ingredients": {"Mehl": 250, "Milch": 0.5, "Eier": 3}, "instructions": "Alles verrühren."}
type SaveRecipeRequest struct {
	Ingredients  map[string]float64 `json:"ingredients" binding:"required"`
	Instructions string             `json:"instructions,omitempty"`
} // @name SaveRecipeRequest

// ToRecipe returns the recipe described by the request.
func (r *SaveRecipeRequest) ToRecipe(name string) model.Recipe {
	ingredients := make(map[string]float64, len(r.Ingredients))
	for k, v := range r.Ingredients {
		ingredients[strings.TrimSpace(k)] = v
	}
	return model.Recipe{
		Name:         strings.TrimSpace(name),
		Ingredients:  ingredients,
		Instructions: strings.TrimSpace(r.Instructions),
	}
}

// ShoppingEntryRequest represents the JSON request body for adding a
// shopping list entry.
//
// @Description Free-text shopping list entry
// @Example {"entry": "Butter"}
type ShoppingEntryRequest struct {
	Entry string `json:"entry" binding:"required" example:"Butter"`
} // @name ShoppingEntryRequest

// Validate performs custom validation on the request.
func (r *ShoppingEntryRequest) Validate() error {
	r.Entry = strings.TrimSpace(r.Entry)
	if r.Entry == "" {
		return &ValidationError{Field: "entry", Message: "entry is required"}
	}
	return nil
}

func positive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
