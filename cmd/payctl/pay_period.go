package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/app"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
)

func withServices(fn func(services app.Services) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	repos, closeStorage, err := app.Open(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()
	return fn(app.NewServices(repos))
}

func newPayPeriodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay-period",
		Short: "Manage pay periods",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a pay period starting on the given Monday",
		Long: `Create a pay period and materialize a timesheet entry for every active employee.

Examples:
  payctl pay-period create --start 2025-01-06`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			return withServices(func(services app.Services) error {
				period, err := services.PayPeriod.CreatePayPeriod(cmd.Context(), payperiod.CreatePayPeriodRequest{StartDate: start})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created pay period %s (%s to %s)\n", period.ID, period.StartDate, period.EndDate)
				return nil
			})
		},
	}
	create.Flags().String("start", "", "Start date in YYYY-MM-DD, must be a Monday")
	_ = create.MarkFlagRequired("start")

	ensure := &cobra.Command{
		Use:   "ensure",
		Short: "Make sure a pay period covering today exists and is current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(services app.Services) error {
				res, err := services.PayPeriod.EnsureCurrentPayPeriod(cmd.Context())
				if err != nil {
					return err
				}
				verb := "Current"
				if res.Created {
					verb = "Created"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s pay period %s (%s to %s)\n", verb, res.PayPeriod.ID, res.PayPeriod.StartDate, res.PayPeriod.EndDate)
				return nil
			})
		},
	}

	cmd.AddCommand(create, ensure)
	return cmd
}
