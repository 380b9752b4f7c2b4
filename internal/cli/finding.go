package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newFindingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finding",
		Short: "Inspect architecture findings",
	}

	cmd.AddCommand(newFindingListCmd())

	return cmd
}

func newFindingListCmd() *cobra.Command {
	var runID, findingType, riskLabel string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List architecture findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.FindingListOptions{}
			if runID != "" {
				opts.RunID = &runID
			}
			if findingType != "" {
				opts.FindingType = &findingType
			}
			if riskLabel != "" {
				opts.RiskLabel = &riskLabel
			}

			findings, err := apiClient.Findings().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list findings: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(findings)
			}

			t := NewTable("ID", "TYPE", "RESOURCE", "RISK", "ROUTE", "SAVINGS/MO")
			for _, f := range findings {
				t.AddRow(
					truncate(f.ID, 12),
					f.FindingType,
					truncate(f.ResourceID, 24),
					formatRisk(f.RiskLabel),
					f.PolicyRoute,
					formatUSD(f.Savings.MidUSD),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "filter by run ID")
	cmd.Flags().StringVar(&findingType, "type", "", "filter by finding type")
	cmd.Flags().StringVar(&riskLabel, "risk", "", "filter by risk label (low_risk, medium_risk, high_risk)")

	return cmd
}
