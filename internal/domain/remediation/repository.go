package remediation

import "context"

// Repository defines the remediation repository interface
type Repository interface {
	Create(ctx context.Context, action *Action) error
	GetByID(ctx context.Context, tenantID, id string) (*Action, error)
	Update(ctx context.Context, action *Action) error
	List(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]*Action, int64, error)
	GetByRecommendationID(ctx context.Context, tenantID, recommendationID string) ([]*Action, error)
	GetPendingApprovals(ctx context.Context, tenantID string) ([]*Action, error)
	CountByStatus(ctx context.Context, tenantID string) (map[ActionStatus]int, error)
}
