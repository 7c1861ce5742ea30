// cmd/packscanctl/reclassify_command.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReclassifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reclassify",
		Short: "Recompute the prospect flag of every entry against the current reference list",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.services()
			if err != nil {
				return err
			}
			actor, err := ctx.admin()
			if err != nil {
				return err
			}

			result, err := svc.Entries.Reclassify(cmd.Context(), actor)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d entries, %d changed\n", result.Scanned, result.Changed)
			return nil
		},
	}
}
