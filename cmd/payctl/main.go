package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "payctl",
		Short:         "Operational commands for the timesheet backend",
		Long:          `payctl runs database migrations, manages pay periods and issues API tokens outside the HTTP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newPayPeriodCmd())
	rootCmd.AddCommand(newTokenCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
