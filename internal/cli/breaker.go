package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBreakerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breaker",
		Short: "Inspect and reset circuit breakers",
	}

	cmd.AddCommand(newBreakerStatusCmd())
	cmd.AddCommand(newBreakerResetCmd())

	return cmd
}

// resolveBreakerTenant picks the tenant argument, falling back to the
// logged-in tenant.
func resolveBreakerTenant(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if tenant := viper.GetString("auth.tenant"); tenant != "" {
		return tenant, nil
	}
	user, err := apiClient.GetCurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tenant: %w", err)
	}
	return user.TenantID, nil
}

func newBreakerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [tenantID]",
		Short: "Show a tenant's breaker snapshot (default: own tenant)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tenant, err := resolveBreakerTenant(ctx, args)
			if err != nil {
				return err
			}

			status, err := apiClient.Breakers().Status(ctx, tenant)
			if err != nil {
				return fmt.Errorf("failed to get breaker status: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(status)
			}

			fmt.Printf("Tenant:      %s\n", status.TenantID)
			fmt.Printf("State:       %s\n", formatStatus(status.State))
			fmt.Printf("Failures:    %d\n", status.FailureCount)
			fmt.Printf("Savings:     $%.2f today\n", status.DailySavingsUSD)
			fmt.Printf("Can execute: %v\n", status.CanExecute)
			if status.LastError != "" {
				fmt.Printf("Last error:  %s\n", status.LastError)
			}
			return nil
		},
	}
}

func newBreakerResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [tenantID]",
		Short: "Force a breaker closed and clear its failure count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tenant, err := resolveBreakerTenant(ctx, args)
			if err != nil {
				return err
			}

			if err := apiClient.Breakers().Reset(ctx, tenant); err != nil {
				return fmt.Errorf("failed to reset breaker: %w", err)
			}

			fmt.Printf("Breaker for tenant %s reset\n", tenant)
			return nil
		},
	}
}
