package spend

import (
	"context"
	"time"
)

// Service defines the spend ledger business logic interface
type Service interface {
	// RecordSavings writes a realized savings entry for an applied action
	RecordSavings(ctx context.Context, tenantID string, actionID *string, resourceID string, amountUSD float64) (*SavingsRecord, error)

	// RecordCost ingests one observed spend entry
	RecordCost(ctx context.Context, rec *CostRecord) (*CostRecord, error)

	// Reports
	DailyReport(ctx context.Context, tenantID string, day time.Time) (*DailyReport, error)
	MonthlyReport(ctx context.Context, tenantID string, month time.Time) (*MonthlyReport, error)
	ListSavings(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*SavingsRecord, int64, error)
}
