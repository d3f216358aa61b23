package model

import (
	"time"
)

// Location is one of the fixed storage places a lot can live in.
type Location string

// Storage locations, in display order.
const (
	LocationFridge       Location = "fridge"
	LocationPantryShelf  Location = "pantry_shelf"
	LocationFreezer      Location = "freezer"
	LocationSpiceCabinet Location = "spice_cabinet"
	LocationCellar       Location = "cellar"
	LocationOther        Location = "other"
)

// Locations lists every valid location in display order.
var Locations = []Location{
	LocationFridge,
	LocationPantryShelf,
	LocationFreezer,
	LocationSpiceCabinet,
	LocationCellar,
	LocationOther,
}

// legacyLocations maps the labels written by older data files.
var legacyLocations = map[string]Location{
	"Kühlschrank":   LocationFridge,
	"Vorratsregal":  LocationPantryShelf,
	"Tiefkühler":    LocationFreezer,
	"Gewürzschrank": LocationSpiceCabinet,
	"Keller":        LocationCellar,
	"Sonstiges":     LocationOther,
}

// Valid reports whether l is one of the fixed locations.
func (l Location) Valid() bool {
	for _, v := range Locations {
		if v == l {
			return true
		}
	}
	return false
}

// ParseLocation accepts a canonical location or a legacy label.
// Unknown values map to LocationOther and ok=false.
func ParseLocation(s string) (loc Location, ok bool) {
	if l := Location(s); l.Valid() {
		return l, true
	}
	if l, found := legacyLocations[s]; found {
		return l, true
	}
	return LocationOther, false
}

// Lot is one recorded quantity of a named item at a location.
//
// @Description A stock lot held by a household
type Lot struct {
	// ID is the stable identifier assigned when the lot is added.
	ID string `bson:"id" json:"id" example:"2b1f6a0e-6f7c-4a59-9c1e-0c8f9f0e2a11"`
	// Name is the free-text item name.
	Name string `bson:"name" json:"name" example:"Milch"`
	// Quantity is never negative.
	Quantity float64 `bson:"quantity" json:"quantity" example:"1.5"`
	// Unit is informational; no conversion is performed between units.
	Unit string `bson:"unit" json:"unit" example:"L"`
	// Location is the storage place.
	Location Location `bson:"location" json:"location" example:"fridge"`
	// Expiry is the best-before date, if known.
	Expiry *time.Time `bson:"expiry,omitempty" json:"expiry,omitempty"`
	// AddedAt records when the lot was added.
	AddedAt time.Time `bson:"added_at" json:"added_at"`
}
