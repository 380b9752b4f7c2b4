package services

import (
	"context"
	"fmt"
	"time"

	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// SpendService implements spend.Service
type SpendService struct {
	repo   spend.Repository
	logger *logger.Logger
}

// NewSpendService creates a new spend ledger service
func NewSpendService(repo spend.Repository, log *logger.Logger) spend.Service {
	return &SpendService{
		repo:   repo,
		logger: log,
	}
}

// RecordSavings writes a realized savings entry for an applied action
func (s *SpendService) RecordSavings(ctx context.Context, tenantID string, actionID *string, resourceID string, amountUSD float64) (*spend.SavingsRecord, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if amountUSD < 0 {
		return nil, fmt.Errorf("savings amount must not be negative")
	}

	rec := &spend.SavingsRecord{
		TenantID:   tenantID,
		ActionID:   actionID,
		ResourceID: resourceID,
		AmountUSD:  amountUSD,
		RealizedOn: time.Now().UTC(),
	}

	if err := s.repo.CreateSavings(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id":   tenantID,
		"resource_id": resourceID,
		"amount_usd":  amountUSD,
	}).Info("Realized savings recorded")

	return rec, nil
}

// RecordCost ingests one observed spend entry
func (s *SpendService) RecordCost(ctx context.Context, rec *spend.CostRecord) (*spend.CostRecord, error) {
	if rec.TenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if rec.AmountUSD < 0 {
		return nil, fmt.Errorf("cost amount must not be negative")
	}

	if err := s.repo.CreateCost(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DailyReport summarizes one UTC day of realized savings
func (s *SpendService) DailyReport(ctx context.Context, tenantID string, day time.Time) (*spend.DailyReport, error) {
	total, err := s.repo.SumSavingsOn(ctx, tenantID, day)
	if err != nil {
		return nil, err
	}

	_, count, err := s.repo.ListSavings(ctx, tenantID, day, day, 1, 0)
	if err != nil {
		return nil, err
	}

	return &spend.DailyReport{
		TenantID: tenantID,
		Day:      day.UTC().Truncate(24 * time.Hour),
		TotalUSD: total,
		Records:  int(count),
	}, nil
}

// MonthlyReport summarizes one calendar month of savings against spend
func (s *SpendService) MonthlyReport(ctx context.Context, tenantID string, month time.Time) (*spend.MonthlyReport, error) {
	savings, err := s.repo.SumSavingsInMonth(ctx, tenantID, month)
	if err != nil {
		return nil, err
	}
	cost, err := s.repo.SumCostInMonth(ctx, tenantID, month)
	if err != nil {
		return nil, err
	}

	return &spend.MonthlyReport{
		TenantID:   tenantID,
		Month:      month.UTC().Format("2006-01"),
		SavingsUSD: savings,
		CostUSD:    cost,
	}, nil
}

// ListSavings lists a tenant's savings records in a date range
func (s *SpendService) ListSavings(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*spend.SavingsRecord, int64, error) {
	return s.repo.ListSavings(ctx, tenantID, from, to, limit, offset)
}
