package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newGuardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Dry-run the spend guards",
	}

	cmd.AddCommand(newGuardCheckCmd())

	return cmd
}

func newGuardCheckCmd() *cobra.Command {
	var impact float64

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Ask whether an action with the given impact would be allowed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			result, err := apiClient.Guards().Check(ctx, impact)
			if err != nil {
				return fmt.Errorf("guard check failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			if result.Allowed {
				fmt.Printf("Allowed: an action worth $%.2f would pass every guard\n", impact)
				return nil
			}

			fmt.Printf("Denied: %s\n", result.DenialCode)
			if result.Reason != "" {
				fmt.Printf("  %s\n", result.Reason)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&impact, "impact", 0, "estimated impact in USD")

	return cmd
}
