package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/guttosm/pantry-service/internal/app"
	"github.com/guttosm/pantry-service/internal/repository/document"
)

func newMigrateCmd() *cobra.Command {
	var (
		from string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade a document store dataset to the current schema",
		Long: `migrate reads a pantry dataset of any earlier schema version and writes it back in the current one.
Without --from the configured store is migrated in place; --out writes the result to a new file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var src document.Backend
			if from != "" {
				src = document.NewFileBackend(from)
			} else if src, err = app.NewDocumentBackend(cfg.Store); err != nil {
				return err
			}

			dst := src
			if out != "" {
				dst = document.NewFileBackend(out)
			}

			version, err := document.MigrateBackend(cmd.Context(), src, dst)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info().Int("from_version", version).Int("to_version", document.SchemaVersion).Msg("Dataset migrated")
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "dataset file to read (default: configured store)")
	cmd.Flags().StringVar(&out, "out", "", "file to write the migrated dataset to (default: in place)")
	return cmd
}
