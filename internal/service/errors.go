// Package service contains the business logic for the pantry service.
package service

import "errors"

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrHouseholdNotFound is returned when the addressed household does not exist.
	ErrHouseholdNotFound = errors.New("household not found")
	// ErrRecipeNotFound is returned when the addressed recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRecipe is returned when a recipe fails validation.
	ErrInvalidRecipe = errors.New("invalid recipe")
	// ErrMalformedRecipeFile is returned when a recipe file is not valid YAML.
	ErrMalformedRecipeFile = errors.New("parse recipe file")
	// ErrInvalidEntry is returned for blank shopping list entries.
	ErrInvalidEntry = errors.New("shopping list entry must not be empty")
	// ErrShoppingIndex is returned when no entry exists at the given position.
	ErrShoppingIndex = errors.New("shopping list index out of range")
)
