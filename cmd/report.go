package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/app"
	"github.com/guttosm/pantry-service/internal/i18n"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render reports into the configured report sink",
	}

	var household string
	shopping := &cobra.Command{
		Use:   "shopping",
		Short: "Export a household's shopping list as PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd.Context(), func(cfg config.Config, db *app.DatabaseComponents, services *app.ServiceComponents) error {
				h, err := db.HouseholdRepo.FindByName(cmd.Context(), household)
				if err != nil {
					return err
				}
				if h == nil {
					return fmt.Errorf("household %q not found", household)
				}

				title := i18n.GetTranslator().Translate(i18n.ReportKeyShoppingTitle, cfg.Server.Language)
				location, err := services.Reports.ExportShoppingList(cmd.Context(), h.ID, h.Name, title)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), location)
				return nil
			})
		},
	}
	shopping.Flags().StringVar(&household, "household", "", "household name")
	_ = shopping.MarkFlagRequired("household")

	cmd.AddCommand(shopping)
	return cmd
}
