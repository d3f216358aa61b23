// Package dto defines Data Transfer Objects for authentication.
package dto

import (
	"strings"
	"unicode/utf8"

	"github.com/guttosm/pantry-service/internal/domain/model"
)

const (
	// MinPasswordLength applies to new passwords only; stored legacy
	// passwords may be shorter and still log in.
	MinPasswordLength = 6
	// MaxHouseholdNameLength bounds household names in runes.
	MaxHouseholdNameLength = 64
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to log in to a household
// @Example {"name": "Familie_Mustermann", "password": "geheim123"}
type LoginRequest struct {
	// Name is the household name (case-sensitive).
	Name string `json:"name" binding:"required" example:"Familie_Mustermann"`
	// Password is the household password.
	Password string `json:"password" binding:"required" example:"geheim123"`
} // @name LoginRequest

// RegisterRequest represents the JSON request body for the register endpoint.
//
// @Description Request to register a new household
// @Example {"name": "Familie_Mustermann", "password": "geheim123"}
type RegisterRequest struct {
	// Name is the unique household name.
	Name string `json:"name" binding:"required" example:"Familie_Mustermann"`
	// Password is the household password (minimum 6 characters).
	Password string `json:"password" binding:"required,min=6" example:"geheim123"`
} // @name RegisterRequest

// ResetPasswordRequest is the body of the admin password reset endpoint.
//
// @Description Request to set a new household password
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6" example:"neues-passwort"`
} // @name ResetPasswordRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// RefreshToken is the JWT refresh token.
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"900"`
	// Household contains the authenticated household.
	Household HouseholdResponse `json:"household"`
} // @name LoginResponse

// TokenPair represents access and refresh tokens (kept here to avoid import cycles).
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims represents JWT claims (kept here to avoid import cycles).
type Claims struct {
	HouseholdID string   `json:"household_id"`
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
}

// HasRole reports whether the claims carry the named role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HouseholdResponse represents a household in API responses.
type HouseholdResponse struct {
	ID     string   `json:"id" example:"6f1c2d7e-2b4f-4c55-9f0e-1a2b3c4d5e6f"`
	Name   string   `json:"name" example:"Familie_Mustermann"`
	Roles  []string `json:"roles" example:"member"`
	Active bool     `json:"active" example:"true"`
} // @name HouseholdResponse

// NewHouseholdResponse converts a household for API responses.
func NewHouseholdResponse(h *model.Household) HouseholdResponse {
	roles := h.Roles
	if roles == nil {
		roles = []string{}
	}
	return HouseholdResponse{
		ID:     h.ID,
		Name:   h.Name,
		Roles:  roles,
		Active: h.Active,
	}
}

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// Validate performs custom validation on the register request.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(r.Name) > MaxHouseholdNameLength {
		return &ValidationError{Field: "name", Message: "name must be at most 64 characters"}
	}
	return validatePassword(r.Password)
}

// Validate performs custom validation on the reset request.
func (r *ResetPasswordRequest) Validate() error {
	return validatePassword(r.Password)
}

func validatePassword(p string) error {
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}
