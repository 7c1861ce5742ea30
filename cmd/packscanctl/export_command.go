// cmd/packscanctl/export_command.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/packscan/packscan-backend/internal/services"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the master spreadsheet of every entry as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services()
			if err != nil {
				return err
			}
			actor, err := ctx.admin()
			if err != nil {
				return err
			}

			if output == "-" {
				return svc.Export.WriteCSV(cmd.Context(), actor, cmd.OutOrStdout())
			}
			if output == "" {
				output = services.FileName(time.Now())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := svc.Export.WriteCSV(cmd.Context(), actor, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file, - for stdout")
	return cmd
}
