package spend

import (
	"context"
	"time"
)

// Repository defines the spend ledger repository interface. The aggregate
// methods feed the guard coordinator: SumSavingsOn with an empty tenantID
// sums across all tenants (global kill-switch scope).
type Repository interface {
	// Savings ledger
	CreateSavings(ctx context.Context, rec *SavingsRecord) error
	ListSavings(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*SavingsRecord, int64, error)
	SumSavingsOn(ctx context.Context, tenantID string, day time.Time) (float64, error)
	SumSavingsInMonth(ctx context.Context, tenantID string, month time.Time) (float64, error)

	// Cost records
	CreateCost(ctx context.Context, rec *CostRecord) error
	ListCosts(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*CostRecord, int64, error)
	SumCostInMonth(ctx context.Context, tenantID string, month time.Time) (float64, error)
}
