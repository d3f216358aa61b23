package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/app"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pantry",
		Short:        "Household pantry tracker",
		Long:         `pantry tracks the food stock of households, checks recipes against it, suggests what to cook before it expires and builds shopping lists.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (environment variables take precedence)")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newRecipesCmd(), newReportCmd(), newKeysCmd())
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	app.InitializeLogger(cfg.Log)
	return cfg, nil
}

// withServices runs fn against the configured storage without starting
// the HTTP server.
func withServices(ctx context.Context, fn func(cfg config.Config, db *app.DatabaseComponents, services *app.ServiceComponents) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := app.InitializeDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(context.Background()) }()

	services, err := app.InitializeServices(ctx, cfg, db)
	if err != nil {
		return err
	}
	return fn(cfg, db, services)
}
