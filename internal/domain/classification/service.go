package classification

import (
	"context"
	"time"
)

// Service defines the classification business logic interface
type Service interface {
	// Ingest runs both classifiers over a scan payload and persists the
	// run with its recommendations and findings.
	Ingest(ctx context.Context, tenantID, source string, scanResults map[string]interface{}) (*Run, []*Recommendation, []*ArchFinding, error)

	// Runs
	GetRun(ctx context.Context, tenantID, id string) (*Run, error)
	ListRuns(ctx context.Context, tenantID string, limit, offset int) ([]*Run, int64, error)

	// Recommendations
	GetRecommendation(ctx context.Context, tenantID, id string) (*Recommendation, error)
	ListRecommendations(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]*Recommendation, int64, error)
	Dismiss(ctx context.Context, tenantID, id string) error
	MarkActioned(ctx context.Context, tenantID, id string) error
	PendingSavings(ctx context.Context, tenantID string) (*SavingsTotals, error)
	ExpireStale(ctx context.Context, ttl time.Duration) (int64, error)

	// Findings
	ListFindings(ctx context.Context, tenantID string, filter FindingFilter, limit, offset int) ([]*ArchFinding, int64, error)
}
