// Package model provides domain models for the pantry service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action types.
const (
	ActionRegister       = "register"
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionLotAdded       = "lot_added"
	ActionLotRemoved     = "lot_removed"
	ActionLotDiscarded   = "lot_discarded"
	ActionDecrement      = "decrement"
	ActionCook           = "cook"
	ActionShoppingAdd    = "shopping_add"
	ActionShoppingRemove = "shopping_remove"
	ActionReportExported = "report_exported"
	ActionRecipeSaved    = "recipe_saved"
	ActionRecipeDeleted  = "recipe_deleted"
	ActionAdmin          = "admin"
)

// LogEntry is one stored request or audit record. Request records carry
// the HTTP fields; audit records carry ActionType and Fields.
type LogEntry struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Timestamp     time.Time              `bson:"timestamp" json:"timestamp"`
	Level         string                 `bson:"level" json:"level" example:"info"`
	Message       string                 `bson:"message" json:"message" example:"Recipe cooked"`
	RequestID     string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method        string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path          string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode    int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration      int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP            string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent     string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error         string                 `bson:"error,omitempty" json:"error,omitempty"`
	HouseholdID   string                 `bson:"household_id,omitempty" json:"household_id,omitempty"`
	HouseholdName string                 `bson:"household_name,omitempty" json:"household_name,omitempty"`
	ActionType    string                 `bson:"action_type,omitempty" json:"action_type,omitempty" example:"cook"`
	Fields        map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty" swaggertype:"object"`
} // @name LogEntry

// LogQueryOptions filters stored log entries. Empty fields match anything.
type LogQueryOptions struct {
	RequestID     string
	HouseholdID   string
	HouseholdName string
	ActionType    string
	Level         string
	StartTime     *time.Time
	EndTime       *time.Time
	Limit         int
	Skip          int
}
