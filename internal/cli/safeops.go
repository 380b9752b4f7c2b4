package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newSafeOpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safeops",
		Short: "Evaluate safety rules against candidate resources",
	}

	cmd.AddCommand(newSafeOpsCheckCmd())
	cmd.AddCommand(newSafeOpsFilterCmd())

	return cmd
}

// readResources loads a JSON array of resources from a file or stdin
func readResources(arg string) ([]client.SafetyResource, error) {
	var content []byte
	var err error
	if arg == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}

	var resources []client.SafetyResource
	if err := json.Unmarshal(content, &resources); err != nil {
		return nil, fmt.Errorf("resources payload is not a JSON array: %w", err)
	}
	return resources, nil
}

func newSafeOpsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Get a safety verdict per resource (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := readResources(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			verdicts, err := apiClient.SafeOps().Check(ctx, resources)
			if err != nil {
				return fmt.Errorf("safety check failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(verdicts)
			}

			t := NewTable("RESOURCE", "SAFE", "REASON")
			for _, v := range verdicts {
				safe := "yes"
				if !v.IsSafe {
					safe = "NO"
				}
				t.AddRow(truncate(v.ResourceID, 28), safe, truncate(v.Reason, 60))
			}
			t.Render()
			return nil
		},
	}
}

func newSafeOpsFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter <file>",
		Short: "Keep only the resources that pass every safety rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := readResources(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			result, err := apiClient.SafeOps().Filter(ctx, resources)
			if err != nil {
				return fmt.Errorf("safety filter failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			fmt.Printf("%d of %d resources passed (%d excluded)\n",
				len(result.Safe), len(resources), result.Excluded)
			for _, r := range result.Safe {
				fmt.Printf("  %s\n", r.ResourceID)
			}
			return nil
		},
	}
}
