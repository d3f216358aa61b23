package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/app"
)

func newRecipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Manage the recipe catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import recipes from a YAML file",
		Long:  `import validates every recipe in the file before storing any of them. Existing recipes with the same name are replaced.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return withServices(cmd.Context(), func(_ config.Config, _ *app.DatabaseComponents, services *app.ServiceComponents) error {
				n, err := services.Recipes.ImportYAML(cmd.Context(), f)
				if err != nil {
					return fmt.Errorf("import %s: %w", args[0], err)
				}
				log.Info().Int("recipes", n).Str("file", args[0]).Msg("Recipes imported")
				return nil
			})
		},
	})

	return cmd
}
