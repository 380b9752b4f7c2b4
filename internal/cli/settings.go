package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage tenant safety settings",
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsUpdateCmd())
	cmd.AddCommand(newSettingsResetCmd())

	return cmd
}

func printSettings(s *client.TenantSettings) {
	fmt.Printf("Tenant:               %s\n", s.TenantID)
	fmt.Printf("Kill switch:          $%.2f/day (%s scope)\n", s.KillSwitchThresholdUSD, s.KillSwitchScope)
	if s.MonthlyCapEnabled {
		fmt.Printf("Monthly cap:          $%.2f\n", s.MonthlyCapUSD)
	} else {
		fmt.Printf("Monthly cap:          disabled\n")
	}
	fmt.Printf("Breaker threshold:    %d failures\n", s.FailureThreshold)
	fmt.Printf("Breaker recovery:     %ds\n", s.RecoveryTimeoutSecs)
	fmt.Printf("Daily savings budget: $%.2f\n", s.MaxDailySavingsUSD)
	if s.MinAgeEnabled {
		fmt.Printf("Minimum age:          %d days\n", s.MinAgeDays)
	} else {
		fmt.Printf("Minimum age:          disabled\n")
	}
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the tenant's effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			settings, err := apiClient.Settings().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(settings)
			}

			printSettings(settings)
			return nil
		},
	}
}

func newSettingsUpdateCmd() *cobra.Command {
	var killSwitch, monthlyCap, dailyBudget float64
	var scope string
	var failures, recovery, minAge int
	var capEnabled, ageEnabled bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update safety settings (only changed flags are applied)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.UpdateSettingsRequest{}
			if cmd.Flags().Changed("kill-switch") {
				req.KillSwitchThresholdUSD = &killSwitch
			}
			if cmd.Flags().Changed("scope") {
				req.KillSwitchScope = &scope
			}
			if cmd.Flags().Changed("monthly-cap") {
				req.MonthlyCapUSD = &monthlyCap
			}
			if cmd.Flags().Changed("monthly-cap-enabled") {
				req.MonthlyCapEnabled = &capEnabled
			}
			if cmd.Flags().Changed("failures") {
				req.FailureThreshold = &failures
			}
			if cmd.Flags().Changed("recovery") {
				req.RecoveryTimeoutSecs = &recovery
			}
			if cmd.Flags().Changed("daily-budget") {
				req.MaxDailySavingsUSD = &dailyBudget
			}
			if cmd.Flags().Changed("min-age") {
				req.MinAgeDays = &minAge
			}
			if cmd.Flags().Changed("min-age-enabled") {
				req.MinAgeEnabled = &ageEnabled
			}

			ctx := context.Background()
			settings, err := apiClient.Settings().Update(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to update settings: %w", err)
			}

			fmt.Println("Settings updated")
			format := getOutputFormat()
			if format != "table" {
				return printOutput(settings)
			}
			printSettings(settings)
			return nil
		},
	}

	cmd.Flags().Float64Var(&killSwitch, "kill-switch", 0, "kill switch threshold in USD per day")
	cmd.Flags().StringVar(&scope, "scope", "", "kill switch scope (tenant, global)")
	cmd.Flags().Float64Var(&monthlyCap, "monthly-cap", 0, "monthly spend cap in USD")
	cmd.Flags().BoolVar(&capEnabled, "monthly-cap-enabled", false, "enable the monthly cap")
	cmd.Flags().IntVar(&failures, "failures", 0, "breaker failure threshold")
	cmd.Flags().IntVar(&recovery, "recovery", 0, "breaker recovery timeout in seconds")
	cmd.Flags().Float64Var(&dailyBudget, "daily-budget", 0, "max daily savings budget in USD")
	cmd.Flags().IntVar(&minAge, "min-age", 0, "minimum resource age in days")
	cmd.Flags().BoolVar(&ageEnabled, "min-age-enabled", false, "enable the minimum age rule")

	return cmd
}

func newSettingsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop stored overrides and revert to server defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Settings().Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset settings: %w", err)
			}
			fmt.Println("Settings reset to defaults")
			return nil
		},
	}
}
