// Package app provides authentication initialization.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/service"
)

// initializeDefaultRolesAndAdmin creates the built-in roles and, when
// configured, the admin household.
func initializeDefaultRolesAndAdmin(
	ctx context.Context,
	roles service.RoleService,
	admin service.AdminService,
	cfg config.AuthConfig,
) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := roles.EnsureDefaultRoles(ctx); err != nil {
		return fmt.Errorf("default roles: %w", err)
	}

	created, err := admin.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin household: %w", err)
	}
	if created {
		log.Info().Str("household", cfg.AdminName).Msg("Created admin household")
	}

	return nil
}
