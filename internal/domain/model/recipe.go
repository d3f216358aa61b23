package model

import (
	"sort"
	"time"
)

// Recipe lives in the catalog shared by all households, keyed by Name.
//
// @Description Recipe with required ingredient quantities
type Recipe struct {
	// Name is the unique catalog key.
	Name string `bson:"_id" json:"name" yaml:"name" example:"Pfannkuchen"`
	// Ingredients maps ingredient name to required quantity.
	Ingredients map[string]float64 `bson:"ingredients" json:"ingredients" yaml:"ingredients"`
	// Instructions is optional free text.
	Instructions string    `bson:"instructions,omitempty" json:"instructions,omitempty" yaml:"instructions,omitempty"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at" yaml:"-"`
}

// IngredientNames returns the ingredient names in a stable order.
func (r Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for name := range r.Ingredients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
