package remediation

import "context"

// Service defines the remediation service interface
type Service interface {
	// Actions
	CreateFromRecommendation(ctx context.Context, tenantID, recommendationID string) (*Action, error)
	Create(ctx context.Context, action *Action) (*Action, error)
	Execute(ctx context.Context, tenantID, actionID string) (*Action, error)
	Approve(ctx context.Context, tenantID, actionID string, approverID int64) error

	// Queries
	GetAction(ctx context.Context, tenantID, id string) (*Action, error)
	ListActions(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]*Action, int64, error)
	GetPendingApprovals(ctx context.Context, tenantID string) ([]*Action, error)

	// Statistics
	GetSummary(ctx context.Context, tenantID string) (map[ActionStatus]int, error)
}

// Executor applies an approved action to the underlying resource. The only
// shipped implementation simulates the change; nothing in this repository
// touches a cloud provider.
type Executor interface {
	Execute(ctx context.Context, action *Action) (*Result, error)
}
