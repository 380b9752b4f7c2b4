package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newRemediationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remediation",
		Aliases: []string{"rem"},
		Short:   "Manage remediation actions",
	}

	cmd.AddCommand(newRemediationCreateCmd())
	cmd.AddCommand(newRemediationListCmd())
	cmd.AddCommand(newRemediationGetCmd())
	cmd.AddCommand(newRemediationExecuteCmd())
	cmd.AddCommand(newRemediationApproveCmd())
	cmd.AddCommand(newRemediationPendingCmd())
	cmd.AddCommand(newRemediationSummaryCmd())

	return cmd
}

func newRemediationCreateCmd() *cobra.Command {
	var recommendationID, resourceID, resourceType, actionType, policyRoute string
	var savings float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an action from a recommendation or a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			if recommendationID == "" && resourceID == "" {
				return fmt.Errorf("either --from-recommendation or --resource is required")
			}

			ctx := context.Background()
			action, err := apiClient.Remediations().Create(ctx, client.CreateRemediationRequest{
				RecommendationID:    recommendationID,
				ResourceID:          resourceID,
				ResourceType:        resourceType,
				ActionType:          actionType,
				PolicyRoute:         policyRoute,
				EstimatedSavingsUSD: savings,
			})
			if err != nil {
				return fmt.Errorf("failed to create action: %w", err)
			}

			fmt.Printf("Action %s created (%s, route %s)\n", action.ID, action.ActionType, action.PolicyRoute)
			return nil
		},
	}

	cmd.Flags().StringVar(&recommendationID, "from-recommendation", "", "derive the action from a recommendation")
	cmd.Flags().StringVar(&resourceID, "resource", "", "target resource ID")
	cmd.Flags().StringVar(&resourceType, "resource-type", "", "target resource type")
	cmd.Flags().StringVar(&actionType, "action", "", "action type (e.g. stop_or_terminate)")
	cmd.Flags().StringVar(&policyRoute, "route", "", "policy route (auto_queue, manual_review)")
	cmd.Flags().Float64Var(&savings, "savings", 0, "estimated monthly savings in USD")

	return cmd
}

func newRemediationListCmd() *cobra.Command {
	var status, actionType, resourceID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List remediation actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.RemediationListOptions{}
			if status != "" {
				opts.Status = &status
			}
			if actionType != "" {
				opts.ActionType = &actionType
			}
			if resourceID != "" {
				opts.ResourceID = &resourceID
			}

			actions, err := apiClient.Remediations().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list actions: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(actions)
			}

			t := NewTable("ID", "RESOURCE", "ACTION", "ROUTE", "STATUS", "SAVINGS/MO", "DENIAL")
			for _, a := range actions {
				t.AddRow(
					truncate(a.ID, 12),
					truncate(a.ResourceID, 24),
					a.ActionType,
					a.PolicyRoute,
					formatStatus(a.Status),
					formatUSD(a.EstimatedSavingsUSD),
					a.DenialCode,
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, approved, denied, applied, failed)")
	cmd.Flags().StringVar(&actionType, "action", "", "filter by action type")
	cmd.Flags().StringVar(&resourceID, "resource", "", "filter by resource ID")

	return cmd
}

func newRemediationGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get action details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			action, err := apiClient.Remediations().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get action: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(action)
			}

			printAction(action)
			return nil
		},
	}
}

func newRemediationExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute <id>",
		Short: "Run an action through the safety gauntlet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			action, err := apiClient.Remediations().Execute(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to execute action: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(action)
			}

			switch action.Status {
			case "denied":
				fmt.Printf("Action %s denied: %s\n", action.ID, action.DenialCode)
				if action.SafetyVerdict != nil {
					fmt.Printf("  %s\n", *action.SafetyVerdict)
				}
			case "failed":
				fmt.Printf("Action %s failed: %s\n", action.ID, action.ErrorMessage)
			default:
				fmt.Printf("Action %s %s", action.ID, action.Status)
				if action.EstimatedSavingsUSD > 0 {
					fmt.Printf(" ($%.2f/month saved)", action.EstimatedSavingsUSD)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newRemediationApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a manual-review action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Remediations().Approve(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to approve action: %w", err)
			}
			fmt.Printf("Action %s approved\n", args[0])
			return nil
		},
	}
}

func newRemediationPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List actions awaiting approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actions, err := apiClient.Remediations().Pending(ctx)
			if err != nil {
				return fmt.Errorf("failed to list pending approvals: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(actions)
			}

			if len(actions) == 0 {
				fmt.Println("No actions awaiting approval")
				return nil
			}

			t := NewTable("ID", "RESOURCE", "ACTION", "SAVINGS/MO", "CREATED")
			for _, a := range actions {
				t.AddRow(
					truncate(a.ID, 12),
					truncate(a.ResourceID, 24),
					a.ActionType,
					formatUSD(a.EstimatedSavingsUSD),
					a.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newRemediationSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count actions by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			summary, err := apiClient.Remediations().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to get summary: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(summary)
			}

			fmt.Printf("Total actions: %d\n", summary.Total)
			for status, count := range summary.ByStatus {
				fmt.Printf("  %-10s %d\n", status+":", count)
			}
			return nil
		},
	}
}

func printAction(a *client.RemediationAction) {
	fmt.Printf("ID:       %s\n", a.ID)
	fmt.Printf("Resource: %s (%s)\n", a.ResourceID, a.ResourceType)
	fmt.Printf("Action:   %s\n", a.ActionType)
	fmt.Printf("Route:    %s\n", a.PolicyRoute)
	fmt.Printf("Status:   %s\n", a.Status)
	if a.EstimatedSavingsUSD > 0 {
		fmt.Printf("Savings:  $%.2f/month\n", a.EstimatedSavingsUSD)
	}
	if a.RecommendationID != nil {
		fmt.Printf("From rec: %s\n", *a.RecommendationID)
	}
	if a.DenialCode != "" {
		fmt.Printf("Denial:   %s\n", a.DenialCode)
	}
	if a.SafetyVerdict != nil {
		fmt.Printf("Verdict:  %s\n", *a.SafetyVerdict)
	}
	if a.ErrorMessage != "" {
		fmt.Printf("Error:    %s\n", a.ErrorMessage)
	}
	if a.ApprovedBy != nil {
		fmt.Printf("Approved: by user %d", *a.ApprovedBy)
		if a.ApprovedAt != nil {
			fmt.Printf(" at %s", a.ApprovedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
	if a.ExecutedAt != nil {
		fmt.Printf("Executed: %s\n", a.ExecutedAt.Format("2006-01-02 15:04:05"))
	}
}
