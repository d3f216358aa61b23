// Package model defines household and access-control entities.
package model

import (
	"time"
)

// Password hashing schemes a household record may carry.
const (
	SchemeBcrypt       = "bcrypt"
	SchemeLegacySHA256 = "sha256-legacy"
)

// Built-in role names.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Household is the tenant that owns a pantry. Name is unique and case-sensitive.
type Household struct {
	ID             string    `bson:"_id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Password       string    `bson:"password" json:"-"` // Never serialize password
	PasswordScheme string    `bson:"password_scheme" json:"-"`
	Roles          []string  `bson:"roles" json:"roles"` // Role names
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Role groups permission names under a name.
type Role struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Permissions []string  `bson:"permissions" json:"permissions"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Token represents a refresh token or blacklisted token.
type Token struct {
	ID          string    `bson:"_id" json:"id"`
	HouseholdID string    `bson:"household_id" json:"household_id"`
	Token       string    `bson:"token" json:"token"`
	Type        string    `bson:"type" json:"type"` // "refresh" or "blacklist"
	ExpiresAt   time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Token types.
const (
	TokenTypeRefresh   = "refresh"
	TokenTypeBlacklist = "blacklist"
)

// HasRole reports whether the household was granted the named role.
func (h *Household) HasRole(name string) bool {
	for _, r := range h.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasPermission checks if a household has a specific permission through its roles.
func (h *Household) HasPermission(permission string, roles []Role) bool {
	for _, roleName := range h.Roles {
		for _, role := range roles {
			if role.Name != roleName || !role.Active {
				continue
			}
			for _, p := range role.Permissions {
				if p == permission {
					return true
				}
			}
		}
	}
	return false
}
