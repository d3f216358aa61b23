package model

import (
	"time"
)

// Stats counts lots that left the pantry.
type Stats struct {
	// Consumed counts lots used up by cooking or decrementing.
	Consumed int `bson:"consumed" json:"consumed"`
	// Discarded counts lots thrown away.
	Discarded int `bson:"discarded" json:"discarded"`
}

// Pantry is the per-household record: stock lots, shopping list and stats.
// Version increases on every write and guards read-modify-write updates.
type Pantry struct {
	HouseholdID  string    `bson:"_id" json:"household_id"`
	Lots         []Lot     `bson:"lots" json:"lots"`
	ShoppingList []string  `bson:"shopping_list" json:"shopping_list"`
	Stats        Stats     `bson:"stats" json:"stats"`
	Version      int64     `bson:"version" json:"version"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// NewPantry returns an empty pantry for the household.
func NewPantry(householdID string) *Pantry {
	return &Pantry{
		HouseholdID:  householdID,
		Lots:         []Lot{},
		ShoppingList: []string{},
	}
}

// Clone returns a deep copy of the pantry.
func (p *Pantry) Clone() *Pantry {
	c := *p
	c.Lots = make([]Lot, len(p.Lots))
	for i, l := range p.Lots {
		if l.Expiry != nil {
			exp := *l.Expiry
			l.Expiry = &exp
		}
		c.Lots[i] = l
	}
	c.ShoppingList = append([]string(nil), p.ShoppingList...)
	if c.ShoppingList == nil {
		c.ShoppingList = []string{}
	}
	return &c
}
