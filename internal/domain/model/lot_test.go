package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input    string
		expected Location
		ok       bool
	}{
		{"fridge", LocationFridge, true},
		{"spice_cabinet", LocationSpiceCabinet, true},
		{"Kühlschrank", LocationFridge, true},
		{"Vorratsregal", LocationPantryShelf, true},
		{"Tiefkühler", LocationFreezer, true},
		{"Gewürzschrank", LocationSpiceCabinet, true},
		{"Keller", LocationCellar, true},
		{"Sonstiges", LocationOther, true},
		{"garage", LocationOther, false},
		{"", LocationOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			loc, ok := ParseLocation(tt.input)
			assert.Equal(t, tt.expected, loc)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLocation_Valid(t *testing.T) {
	for _, l := range Locations {
		assert.True(t, l.Valid(), string(l))
	}
	assert.False(t, Location("Kühlschrank").Valid())
}
