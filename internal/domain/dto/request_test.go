package dto

import (
	"math"
	"testing"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLotRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   AddLotRequest
		wantField string
		validate  func(*testing.T, model.Lot)
	}{
		{
			name:    "valid request with expiry",
			request: AddLotRequest{Name: " Milch ", Quantity: 1.5, Unit: "L", Location: "fridge", Expiry: "2026-02-01"},
			validate: func(t *testing.T, lot model.Lot) {
				assert.Equal(t, "Milch", lot.Name)
				assert.Equal(t, model.LocationFridge, lot.Location)
				require.NotNil(t, lot.Expiry)
				assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *lot.Expiry)
			},
		},
		{
			name:    "legacy location label",
			request: AddLotRequest{Name: "Zimt", Quantity: 1, Unit: "Packung", Location: "Gewürzschrank"},
			validate: func(t *testing.T, lot model.Lot) {
				assert.Equal(t, model.LocationSpiceCabinet, lot.Location)
				assert.Nil(t, lot.Expiry)
			},
		},
		{
			name:      "missing name",
			request:   AddLotRequest{Quantity: 1, Unit: "g", Location: "fridge"},
			wantField: "name",
		},
		{
			name:      "zero quantity",
			request:   AddLotRequest{Name: "Mehl", Unit: "g", Location: "fridge"},
			wantField: "quantity",
		},
		{
			name:      "NaN quantity",
			request:   AddLotRequest{Name: "Mehl", Quantity: math.NaN(), Unit: "g", Location: "fridge"},
			wantField: "quantity",
		},
		{
			name:      "missing unit",
			request:   AddLotRequest{Name: "Mehl", Quantity: 1, Location: "fridge"},
			wantField: "unit",
		},
		{
			name:      "unknown location",
			request:   AddLotRequest{Name: "Mehl", Quantity: 1, Unit: "g", Location: "garage"},
			wantField: "location",
		},
		{
			name:      "bad expiry",
			request:   AddLotRequest{Name: "Mehl", Quantity: 1, Unit: "g", Location: "fridge", Expiry: "01.02.2026"},
			wantField: "expiry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot, err := tt.request.Validate()
			if tt.wantField != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			tt.validate(t, lot)
		})
	}
}

func TestDecrementRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   DecrementRequest
		wantError bool
	}{
		{name: "valid", request: DecrementRequest{Name: "Mehl", Amount: 300}},
		{name: "blank name", request: DecrementRequest{Name: " ", Amount: 1}, wantError: true},
		{name: "negative amount", request: DecrementRequest{Name: "Mehl", Amount: -1}, wantError: true},
		{name: "infinite amount", request: DecrementRequest{Name: "Mehl", Amount: math.Inf(1)}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveRecipeRequest_ToRecipe(t *testing.T) {
	r := SaveRecipeRequest{
		Ingredients:  map[string]float64{" Mehl ": 250, "Milch": 0.5},
		Instructions: "  Verrühren. ",
	}
	recipe := r.ToRecipe(" Pfannkuchen ")

	assert.Equal(t, "Pfannkuchen", recipe.Name)
	assert.Equal(t, map[string]float64{"Mehl": 250, "Milch": 0.5}, recipe.Ingredients)
	assert.Equal(t, "Verrühren.", recipe.Instructions)
}

func TestShoppingEntryRequest_Validate(t *testing.T) {
	r := ShoppingEntryRequest{Entry: "  Butter "}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "Butter", r.Entry)

	empty := ShoppingEntryRequest{Entry: "  "}
	assert.Error(t, empty.Validate())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "quantity", Message: "must be greater than zero"}
	assert.Equal(t, "quantity: must be greater than zero", err.Error())
}
