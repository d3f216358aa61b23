package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   LoginRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:    "valid request",
			request: LoginRequest{Name: "Familie_Mustermann", Password: "geheim123"},
		},
		{
			name:    "short legacy password is accepted",
			request: LoginRequest{Name: "WG", Password: "123"},
		},
		{
			name:      "blank name",
			request:   LoginRequest{Name: "   ", Password: "geheim123"},
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name:      "empty password",
			request:   LoginRequest{Name: "WG", Password: ""},
			wantError: true,
			errorMsg:  "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantError {
				assert.Error(t, err)
				if validationErr, ok := err.(*ValidationError); ok {
					assert.Equal(t, tt.errorMsg, validationErr.Message)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   RegisterRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:    "valid request",
			request: RegisterRequest{Name: "Familie_Mustermann", Password: "geheim123"},
		},
		{
			name:    "name with umlauts",
			request: RegisterRequest{Name: "Wohngemeinschaft Müller", Password: "geheim123"},
		},
		{
			name:      "empty name",
			request:   RegisterRequest{Name: "", Password: "geheim123"},
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name:      "name too long",
			request:   RegisterRequest{Name: strings.Repeat("ä", 65), Password: "geheim123"},
			wantError: true,
			errorMsg:  "name must be at most 64 characters",
		},
		{
			name:      "password too short",
			request:   RegisterRequest{Name: "WG", Password: "12345"},
			wantError: true,
			errorMsg:  "password must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantError {
				assert.Error(t, err)
				if validationErr, ok := err.(*ValidationError); ok {
					assert.Equal(t, tt.errorMsg, validationErr.Message)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterRequest_TrimsName(t *testing.T) {
	r := RegisterRequest{Name: "  WG_Sonnenallee ", Password: "geheim123"}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "WG_Sonnenallee", r.Name)
}

func TestClaims_HasRole(t *testing.T) {
	c := &Claims{Roles: []string{"member", "admin"}}
	assert.True(t, c.HasRole("admin"))
	assert.False(t, (&Claims{Roles: []string{"member"}}).HasRole("admin"))
}
