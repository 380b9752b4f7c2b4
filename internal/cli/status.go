package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show safety dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			tenant := viper.GetString("auth.tenant")
			if tenant == "" {
				if user, err := apiClient.GetCurrentUser(ctx); err == nil {
					tenant = user.TenantID
				}
			}

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				if breaker, err := apiClient.Breakers().Status(ctx, tenant); err == nil {
					summary["breaker"] = breaker
				}
				if savings, err := apiClient.Recommendations().Savings(ctx); err == nil {
					summary["potential_savings"] = savings
				}
				if pending, err := apiClient.Remediations().Pending(ctx); err == nil {
					summary["pending_approvals"] = len(pending)
				}
				if actions, err := apiClient.Remediations().Summary(ctx); err == nil {
					summary["actions"] = actions
				}
				if daily, err := apiClient.Spend().Daily(ctx, time.Time{}); err == nil {
					summary["savings_today"] = daily
				}
				return printOutput(summary)
			}

			fmt.Println("WasteGate Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			// Circuit breaker
			breaker, err := apiClient.Breakers().Status(ctx, tenant)
			if err != nil {
				fmt.Printf("  Breaker:           (error: %v)\n", err)
			} else {
				line := fmt.Sprintf("  Breaker:           %s", formatStatus(breaker.State))
				if !breaker.CanExecute {
					line += " (executions blocked)"
				} else if breaker.FailureCount > 0 {
					line += fmt.Sprintf(" (%d recent failures)", breaker.FailureCount)
				}
				fmt.Println(line)
				if breaker.DailySavingsUSD > 0 {
					fmt.Printf("  Savings today:     $%.2f realized via breaker budget\n", breaker.DailySavingsUSD)
				}
			}

			// Potential savings
			savings, err := apiClient.Recommendations().Savings(ctx)
			if err != nil {
				fmt.Printf("  Recommendations:   (error: %v)\n", err)
			} else {
				fmt.Printf("  Recommendations:   %d pending ($%.2f/month potential)\n", savings.Count, savings.MidUSD)
			}

			// Pending approvals
			pending, err := apiClient.Remediations().Pending(ctx)
			if err != nil {
				fmt.Printf("  Awaiting approval: (error: %v)\n", err)
			} else {
				fmt.Printf("  Awaiting approval: %d actions\n", len(pending))
			}

			// Action summary
			summary, err := apiClient.Remediations().Summary(ctx)
			if err != nil {
				fmt.Printf("  Actions:           (error: %v)\n", err)
			} else {
				applied := summary.ByStatus["applied"]
				denied := summary.ByStatus["denied"]
				failed := summary.ByStatus["failed"]
				fmt.Printf("  Actions:           %d total", summary.Total)
				if applied > 0 {
					fmt.Printf(", %d applied", applied)
				}
				if denied > 0 {
					fmt.Printf(", %d denied", denied)
				}
				if failed > 0 {
					fmt.Printf(", %d failed", failed)
				}
				fmt.Println()
			}

			// Realized savings
			daily, err := apiClient.Spend().Daily(ctx, time.Time{})
			if err != nil {
				fmt.Printf("  Realized today:    (error: %v)\n", err)
			} else {
				fmt.Printf("  Realized today:    $%.2f over %d records\n", daily.TotalUSD, daily.Records)
			}

			return nil
		},
	}
}
