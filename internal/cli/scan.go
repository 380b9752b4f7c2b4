package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Submit and inspect classification runs",
	}

	cmd.AddCommand(newScanSubmitCmd())
	cmd.AddCommand(newScanListCmd())
	cmd.AddCommand(newScanGetCmd())
	cmd.AddCommand(newScanAnalysisCmd())

	return cmd
}

func newScanSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <file>",
		Short: "Submit detector output for classification (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content []byte
			var err error
			if args[0] == "-" {
				content, err = io.ReadAll(os.Stdin)
			} else {
				content, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read scan payload: %w", err)
			}

			var scanResults map[string]interface{}
			if err := json.Unmarshal(content, &scanResults); err != nil {
				return fmt.Errorf("scan payload is not valid JSON: %w", err)
			}

			ctx := context.Background()
			result, err := apiClient.Scans().Submit(ctx, client.SubmitScanRequest{
				Source:      "cli",
				ScanResults: scanResults,
			})
			if err != nil {
				return fmt.Errorf("failed to submit scan: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			fmt.Printf("Run %s classified\n", result.Run.ID)
			fmt.Printf("  Recommendations: %d\n", result.Run.Summary.TotalRecommendations)
			fmt.Printf("  Findings:        %d\n", result.Run.Summary.TotalFindings)
			if result.Run.Summary.Savings.MidUSD > 0 {
				fmt.Printf("  Potential:       $%.2f/month (range $%.2f-$%.2f)\n",
					result.Run.Summary.Savings.MidUSD,
					result.Run.Summary.Savings.LowUSD,
					result.Run.Summary.Savings.HighUSD)
			}
			return nil
		},
	}
}

func newScanListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			runs, err := apiClient.Scans().List(ctx, &client.ListOptions{
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(runs)
			}

			t := NewTable("ID", "SOURCE", "RECS", "FINDINGS", "POTENTIAL", "CREATED")
			for _, r := range runs {
				t.AddRow(
					r.ID,
					r.Source,
					strconv.Itoa(r.Recommendations),
					strconv.Itoa(r.Findings),
					formatUSD(r.Summary.Savings.MidUSD),
					r.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page")

	return cmd
}

func newScanGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			run, err := apiClient.Scans().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(run)
			}

			fmt.Printf("ID:              %s\n", run.ID)
			fmt.Printf("Source:          %s\n", run.Source)
			fmt.Printf("Created:         %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Recommendations: %d\n", run.Summary.TotalRecommendations)
			for class, count := range run.Summary.ByDetectionClass {
				fmt.Printf("  %-22s %d\n", class+":", count)
			}
			fmt.Printf("Findings:        %d\n", run.Summary.TotalFindings)
			for findingType, count := range run.Summary.ByFindingType {
				fmt.Printf("  %-22s %d\n", findingType+":", count)
			}
			if run.Summary.Savings.MidUSD > 0 {
				fmt.Printf("Potential:       $%.2f/month\n", run.Summary.Savings.MidUSD)
			}
			return nil
		},
	}
}

func newScanAnalysisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analysis <id>",
		Short: "Show the narrative analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			analysis, err := apiClient.Scans().Analysis(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get analysis: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(analysis)
			}

			fmt.Println(analysis.Narrative)
			return nil
		},
	}
}
