package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newSpendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Inspect the cost and savings ledger",
	}

	cmd.AddCommand(newSpendRecordCmd())
	cmd.AddCommand(newSpendDailyCmd())
	cmd.AddCommand(newSpendMonthlyCmd())
	cmd.AddCommand(newSpendSavingsCmd())

	return cmd
}

func newSpendRecordCmd() *cobra.Command {
	var provider, service, currency string
	var amount float64

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record one observed cost entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}

			ctx := context.Background()
			record, err := apiClient.Spend().RecordCost(ctx, client.RecordCostRequest{
				Provider:    provider,
				ServiceName: service,
				AmountUSD:   amount,
				Currency:    currency,
			})
			if err != nil {
				return fmt.Errorf("failed to record cost: %w", err)
			}

			fmt.Printf("Recorded $%.2f (%s)\n", record.AmountUSD, record.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in USD")
	cmd.Flags().StringVar(&provider, "provider", "", "cloud provider")
	cmd.Flags().StringVar(&service, "service", "", "service name")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default USD)")

	return cmd
}

func newSpendDailyCmd() *cobra.Command {
	var dayStr string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show one day of realized savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var day time.Time
			if dayStr != "" {
				parsed, err := time.Parse("2006-01-02", dayStr)
				if err != nil {
					return fmt.Errorf("invalid day %q, expected YYYY-MM-DD", dayStr)
				}
				day = parsed
			}

			ctx := context.Background()
			report, err := apiClient.Spend().Daily(ctx, day)
			if err != nil {
				return fmt.Errorf("failed to get daily report: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(report)
			}

			fmt.Printf("Day:     %s\n", report.Day)
			fmt.Printf("Savings: $%.2f over %d records\n", report.TotalUSD, report.Records)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayStr, "day", "", "day to report (YYYY-MM-DD, default today)")

	return cmd
}

func newSpendMonthlyCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show one month of savings against spend",
		RunE: func(cmd *cobra.Command, args []string) error {
			var month time.Time
			if monthStr != "" {
				parsed, err := time.Parse("2006-01", monthStr)
				if err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", monthStr)
				}
				month = parsed
			}

			ctx := context.Background()
			report, err := apiClient.Spend().Monthly(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to get monthly report: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(report)
			}

			fmt.Printf("Month:   %s\n", report.Month)
			fmt.Printf("Savings: $%.2f\n", report.SavingsUSD)
			fmt.Printf("Cost:    $%.2f\n", report.CostUSD)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "month to report (YYYY-MM, default current)")

	return cmd
}

func newSpendSavingsCmd() *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "savings",
		Short: "List realized savings records",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.SavingsListOptions{}
			if fromStr != "" {
				parsed, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					return fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", fromStr)
				}
				opts.From = &parsed
			}
			if toStr != "" {
				parsed, err := time.Parse("2006-01-02", toStr)
				if err != nil {
					return fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", toStr)
				}
				opts.To = &parsed
			}

			ctx := context.Background()
			records, err := apiClient.Spend().Savings(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list savings: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(records)
			}

			total := 0.0
			t := NewTable("ID", "RESOURCE", "AMOUNT", "REALIZED")
			for _, r := range records {
				total += r.AmountUSD
				t.AddRow(
					truncate(r.ID, 12),
					truncate(r.ResourceID, 24),
					fmt.Sprintf("$%.2f", r.AmountUSD),
					r.RealizedOn.Format("2006-01-02"),
				)
			}
			t.Render()
			fmt.Printf("\nTotal: $%.2f\n", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "window start (YYYY-MM-DD, default 30 days ago)")
	cmd.Flags().StringVar(&toStr, "to", "", "window end (YYYY-MM-DD, default today)")

	return cmd
}
