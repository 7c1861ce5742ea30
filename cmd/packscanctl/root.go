// cmd/packscanctl/root.go
package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var asFlag string

	ctx := newCommandContext(&asFlag)

	rootCmd := &cobra.Command{
		Use:           "packscanctl",
		Short:         "PackScan Pro maintenance CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&asFlag, "as", "", "Email of the administrator to act as (defaults to ADMIN_EMAIL)")

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newReportCommand(ctx))
	rootCmd.AddCommand(newReclassifyCommand(ctx))

	return rootCmd
}
