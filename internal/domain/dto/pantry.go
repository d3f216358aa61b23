package dto

import (
	"github.com/guttosm/pantry-service/internal/domain/model"
)

// LotView is a lot annotated with its remaining shelf life.
//
// @Description Stock lot with days until expiry and traffic-light status
type LotView struct {
	model.Lot
	// DaysUntilExpiry is negative for expired lots and absent without a date.
	DaysUntilExpiry *int `json:"days_until_expiry,omitempty" example:"3"`
	// Status is one of expired, critical, warning, fresh, none.
	Status string `json:"status" example:"critical"`
} // @name LotView

// LocationGroup holds the lots stored at one location.
type LocationGroup struct {
	Location model.Location `json:"location" example:"fridge"`
	Lots     []LotView      `json:"lots"`
} // @name LocationGroup

// PantryView is the household's pantry as shown to clients. Locations
// follow the fixed display order; empty locations are omitted.
//
// @Description Household pantry grouped by storage location
type PantryView struct {
	HouseholdID  string          `json:"household_id"`
	Locations    []LocationGroup `json:"locations"`
	ShoppingList []string        `json:"shopping_list"`
	Stats        model.Stats     `json:"stats"`
	Version      int64           `json:"version" example:"12"`
} // @name PantryView

// ShoppingListResponse wraps the shopping list.
type ShoppingListResponse struct {
	Entries []string `json:"entries" example:"Butter,Mehl (250)"`
} // @name ShoppingListResponse

// ShoppingAddResponse reports the outcome of adding entries.
type ShoppingAddResponse struct {
	// Added lists the entries that were appended.
	Added []string `json:"added"`
	// Entries is the list after the change.
	Entries []string `json:"entries"`
} // @name ShoppingAddResponse

// ReportExportResponse reports where an exported report was written.
type ReportExportResponse struct {
	Location string `json:"location" example:"s3://pantry-reports/shopping-lists/familie_mustermann-2026-01-28.pdf"`
} // @name ReportExportResponse

// LogPage is one page of stored audit entries.
type LogPage struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total" example:"42"`
	Limit   int              `json:"limit" example:"50"`
	Skip    int              `json:"skip" example:"0"`
} // @name LogPage
