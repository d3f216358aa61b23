// Package main is the entry point for the pantry-service application.
//
// @title           Pantry Service API
// @version         1.0.0
// @description     API for tracking a household pantry: stock lots, cook recipes against the stock,
// @description     suggest recipes for near-expiry items and produce shopping lists.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/pantry-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT access token as "Bearer <token>".
//
// @tag.name        Pantry
// @tag.description Lots, decrements and pantry state
//
// @tag.name        Cooking
// @tag.description Recipe checks, cooking and suggestions
//
// @tag.name        Shopping
// @tag.description Shopping list and PDF reports
//
// @tag.name        Recipes
// @tag.description Recipe catalog
//
// @tag.name        Auth
// @tag.description Household registration and tokens
//
// @tag.name        Admin
// @tag.description Household administration
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"

	_ "github.com/guttosm/pantry-service/docs" // swagger docs
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
