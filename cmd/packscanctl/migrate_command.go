// cmd/packscanctl/migrate_command.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packscan/packscan-backend/internal/database"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.ensureDB()
			if err != nil {
				return err
			}

			if err := database.RunMigrations(db); err != nil {
				return err
			}
			if seed {
				if err := database.SeedInitialData(db, cfg.Admin, cfg.Inspection); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "Create the configured administrator and the settings row")
	return cmd
}
