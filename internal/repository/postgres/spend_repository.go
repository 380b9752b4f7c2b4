package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
)

// SpendRepository implements spend.Repository for PostgreSQL/SQLite. Its
// aggregate queries sit on the guard hot path, so they record query timing.
type SpendRepository struct {
	db *sql.DB
}

// NewSpendRepository creates a new spend repository
func NewSpendRepository(db *sql.DB) *SpendRepository {
	return &SpendRepository{db: db}
}

// CreateSavings writes one realized savings ledger entry
func (r *SpendRepository) CreateSavings(ctx context.Context, rec *spend.SavingsRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RealizedOn.IsZero() {
		rec.RealizedOn = time.Now().UTC()
	}

	query := `
		INSERT INTO savings_records (
			id, tenant_id, action_id, resource_id, amount_usd, realized_on, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	rec.CreatedAt = time.Now()
	rec.RealizedOn = dayOf(rec.RealizedOn)
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.TenantID,
		rec.ActionID,
		rec.ResourceID,
		rec.AmountUSD,
		rec.RealizedOn,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create savings record: %w", err)
	}
	return nil
}

// ListSavings lists a tenant's savings records in a date range, newest first
func (r *SpendRepository) ListSavings(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*spend.SavingsRecord, int64, error) {
	where := " WHERE tenant_id = ? AND realized_on >= ? AND realized_on <= ?"
	args := []interface{}{tenantID, dayOf(from), dayOf(to)}

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM savings_records"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count savings records: %w", err)
	}

	query := `
		SELECT id, tenant_id, action_id, resource_id, amount_usd, realized_on, created_at
		FROM savings_records` + where + " ORDER BY realized_on DESC, created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list savings records: %w", err)
	}
	defer rows.Close()

	var records []*spend.SavingsRecord
	for rows.Next() {
		var rec spend.SavingsRecord
		var actionID sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.TenantID,
			&actionID,
			&rec.ResourceID,
			&rec.AmountUSD,
			&rec.RealizedOn,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan savings record: %w", err)
		}
		if actionID.Valid {
			rec.ActionID = &actionID.String
		}
		records = append(records, &rec)
	}

	return records, total, nil
}

// SumSavingsOn sums realized savings for one UTC day. An empty tenantID sums
// across all tenants (global kill-switch scope).
func (r *SpendRepository) SumSavingsOn(ctx context.Context, tenantID string, day time.Time) (float64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("sum_savings_on", "savings_records", time.Since(start)) }()

	query := "SELECT COALESCE(SUM(amount_usd), 0) FROM savings_records WHERE realized_on = ?"
	args := []interface{}{dayOf(day)}
	if tenantID != "" {
		query += " AND tenant_id = ?"
		args = append(args, tenantID)
	}

	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum savings: %w", err)
	}
	return total, nil
}

// SumSavingsInMonth sums a tenant's realized savings for one calendar month
func (r *SpendRepository) SumSavingsInMonth(ctx context.Context, tenantID string, month time.Time) (float64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("sum_savings_month", "savings_records", time.Since(start)) }()

	first, next := monthBounds(month)
	query := "SELECT COALESCE(SUM(amount_usd), 0) FROM savings_records WHERE tenant_id = ? AND realized_on >= ? AND realized_on < ?"

	var total float64
	if err := r.db.QueryRowContext(ctx, query, tenantID, first, next).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum monthly savings: %w", err)
	}
	return total, nil
}

// CreateCost ingests one observed spend entry
func (r *SpendRepository) CreateCost(ctx context.Context, rec *spend.CostRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Currency == "" {
		rec.Currency = "USD"
	}
	if rec.IncurredOn.IsZero() {
		rec.IncurredOn = time.Now().UTC()
	}

	query := `
		INSERT INTO cost_records (
			id, tenant_id, provider, service_name, amount_usd, currency, incurred_on, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	rec.CreatedAt = time.Now()
	rec.IncurredOn = dayOf(rec.IncurredOn)
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.TenantID,
		rec.Provider,
		rec.ServiceName,
		rec.AmountUSD,
		rec.Currency,
		rec.IncurredOn,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create cost record: %w", err)
	}
	return nil
}

// ListCosts lists a tenant's cost records in a date range, newest first
func (r *SpendRepository) ListCosts(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*spend.CostRecord, int64, error) {
	where := " WHERE tenant_id = ? AND incurred_on >= ? AND incurred_on <= ?"
	args := []interface{}{tenantID, dayOf(from), dayOf(to)}

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cost_records"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cost records: %w", err)
	}

	query := `
		SELECT id, tenant_id, provider, service_name, amount_usd, currency, incurred_on, created_at
		FROM cost_records` + where + " ORDER BY incurred_on DESC, created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cost records: %w", err)
	}
	defer rows.Close()

	var records []*spend.CostRecord
	for rows.Next() {
		var rec spend.CostRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.TenantID,
			&rec.Provider,
			&rec.ServiceName,
			&rec.AmountUSD,
			&rec.Currency,
			&rec.IncurredOn,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan cost record: %w", err)
		}
		records = append(records, &rec)
	}

	return records, total, nil
}

// SumCostInMonth sums a tenant's observed spend for one calendar month
func (r *SpendRepository) SumCostInMonth(ctx context.Context, tenantID string, month time.Time) (float64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("sum_cost_month", "cost_records", time.Since(start)) }()

	first, next := monthBounds(month)
	query := "SELECT COALESCE(SUM(amount_usd), 0) FROM cost_records WHERE tenant_id = ? AND incurred_on >= ? AND incurred_on < ?"

	var total float64
	if err := r.db.QueryRowContext(ctx, query, tenantID, first, next).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum monthly cost: %w", err)
	}
	return total, nil
}

// dayOf truncates a timestamp to its UTC date
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// monthBounds returns the first day of the month and of the next month (UTC)
func monthBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	first := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}
