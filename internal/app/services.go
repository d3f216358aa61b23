// Package app provides service initialization.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/report"
	"github.com/guttosm/pantry-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Pantry  service.PantryService
	Cooking service.CookingService
	Recipes service.RecipeService
	Reports service.ReportService
	Admin   service.AdminService
	Auth    service.AuthService
	Roles   service.RoleService
}

// InitializeServices creates the business services on top of the storage
// repositories.
func InitializeServices(ctx context.Context, cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	opts, err := service.NewPantryOptionsFromConfig(cfg.Pantry)
	if err != nil {
		return nil, fmt.Errorf("pantry options: %w", err)
	}

	sink, err := NewReportSink(ctx, cfg.Report)
	if err != nil {
		return nil, err
	}

	pantries := service.NewPantryService(db.PantryRepo, db.RecipeRepo, opts)

	return &ServiceComponents{
		Pantry:  pantries,
		Cooking: service.NewCookingService(db.PantryRepo, db.RecipeRepo, opts),
		Recipes: service.NewRecipeService(db.RecipeRepo, afero.NewOsFs()),
		Reports: service.NewReportService(pantries, sink),
		Admin:   service.NewAdminService(db.HouseholdRepo, db.PantryRepo, db.TokenRepo, pantries),
		Auth:    service.NewAuthService(db.HouseholdRepo, db.RoleRepo, db.TokenRepo, db.PantryRepo, cfg.Auth),
		Roles:   service.NewRoleService(db.RoleRepo),
	}, nil
}

// NewReportSink creates the sink exported shopping lists are written to.
func NewReportSink(ctx context.Context, cfg config.ReportConfig) (report.Sink, error) {
	switch cfg.Sink {
	case config.ReportSinkFile, "":
		return report.NewFileSink(cfg.Dir), nil
	case config.ReportSinkS3:
		sink, err := report.NewS3SinkFromRegion(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("report sink: %w", err)
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("Exporting reports to S3")
		return sink, nil
	default:
		return nil, fmt.Errorf("unknown report sink %q", cfg.Sink)
	}
}

// seedRecipes loads the recipe seed file into an empty catalog.
func seedRecipes(ctx context.Context, recipes service.RecipeService, path string) {
	if path == "" {
		return
	}
	n, err := recipes.SeedIfEmpty(ctx, path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Failed to seed recipes")
		return
	}
	if n > 0 {
		log.Info().Int("recipes", n).Str("file", path).Msg("Seeded recipe catalog")
	}
}
