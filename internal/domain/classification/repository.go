package classification

import (
	"context"
	"time"
)

// Repository defines the classification repository interface
type Repository interface {
	// Runs
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, tenantID, id string) (*Run, error)
	ListRuns(ctx context.Context, tenantID string, limit, offset int) ([]*Run, int64, error)

	// Recommendations
	CreateRecommendations(ctx context.Context, recs []*Recommendation) error
	GetRecommendation(ctx context.Context, tenantID, id string) (*Recommendation, error)
	ListRecommendations(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]*Recommendation, int64, error)
	UpdateRecommendationStatus(ctx context.Context, tenantID, id string, status Status) error
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
	PendingSavings(ctx context.Context, tenantID string) (*SavingsTotals, error)

	// Findings
	CreateFindings(ctx context.Context, findings []*ArchFinding) error
	ListFindings(ctx context.Context, tenantID string, filter FindingFilter, limit, offset int) ([]*ArchFinding, int64, error)
}
