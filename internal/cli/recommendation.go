package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newRecommendationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recommendation",
		Aliases: []string{"rec"},
		Short:   "Manage waste recommendations",
	}

	cmd.AddCommand(newRecListCmd())
	cmd.AddCommand(newRecGetCmd())
	cmd.AddCommand(newRecSavingsCmd())
	cmd.AddCommand(newRecDismissCmd())

	return cmd
}

func newRecListCmd() *cobra.Command {
	var status, detectionClass, policyRoute, runID string
	var minConfidence float64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.RecommendationListOptions{}
			if status != "" {
				opts.Status = &status
			}
			if detectionClass != "" {
				opts.DetectionClass = &detectionClass
			}
			if policyRoute != "" {
				opts.PolicyRoute = &policyRoute
			}
			if runID != "" {
				opts.RunID = &runID
			}
			if minConfidence > 0 {
				opts.MinConfidence = &minConfidence
			}

			recs, err := apiClient.Recommendations().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list recommendations: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(recs)
			}

			t := NewTable("ID", "RESOURCE", "CLASS", "ROUTE", "CONF", "SAVINGS/MO", "STATUS")
			for _, r := range recs {
				t.AddRow(
					truncate(r.ID, 12),
					truncate(r.ResourceID, 24),
					r.DetectionClass,
					r.PolicyRoute,
					fmt.Sprintf("%.2f", r.Confidence),
					formatUSD(r.Savings.MidUSD),
					formatStatus(r.Status),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, actioned, dismissed, expired)")
	cmd.Flags().StringVar(&detectionClass, "class", "", "filter by detection class")
	cmd.Flags().StringVar(&policyRoute, "route", "", "filter by policy route (auto_queue, manual_review)")
	cmd.Flags().StringVar(&runID, "run", "", "filter by run ID")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "minimum confidence")

	return cmd
}

func newRecGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get recommendation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rec, err := apiClient.Recommendations().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get recommendation: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(rec)
			}

			fmt.Printf("ID:         %s\n", rec.ID)
			fmt.Printf("Resource:   %s\n", rec.ResourceID)
			fmt.Printf("Class:      %s (%s)\n", rec.DetectionClass, rec.Category)
			fmt.Printf("Action:     %s\n", rec.RequiredAction)
			fmt.Printf("Route:      %s\n", rec.PolicyRoute)
			fmt.Printf("Confidence: %.2f\n", rec.Confidence)
			fmt.Printf("Status:     %s\n", rec.Status)
			fmt.Printf("Savings:    $%.2f/month (range $%.2f-$%.2f)\n",
				rec.Savings.MidUSD, rec.Savings.LowUSD, rec.Savings.HighUSD)
			return nil
		},
	}
}

func newRecSavingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "savings",
		Short: "Show potential savings over pending recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			totals, err := apiClient.Recommendations().Savings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get savings: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(totals)
			}

			fmt.Printf("Pending recommendations: %d\n", totals.Count)
			fmt.Printf("Potential savings:       $%.2f/month\n", totals.MidUSD)
			fmt.Printf("Range:                   $%.2f - $%.2f\n", totals.LowUSD, totals.HighUSD)
			return nil
		},
	}
}

func newRecDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Dismiss a recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := apiClient.Recommendations().Dismiss(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to dismiss recommendation: %w", err)
			}
			fmt.Printf("Recommendation %s dismissed\n", args[0])
			return nil
		},
	}
}
