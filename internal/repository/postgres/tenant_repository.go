package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wastegate/wastegate/internal/domain/tenant"
)

// TenantRepository implements tenant.Repository for PostgreSQL/SQLite
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a new tenant settings repository
func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

const selectTenantSettings = `
	SELECT tenant_id, kill_switch_threshold_usd, kill_switch_scope,
	       monthly_cap_enabled, monthly_cap_usd,
	       failure_threshold, recovery_timeout_secs, max_daily_savings_usd,
	       min_age_enabled, min_age_days, created_at, updated_at
	FROM tenant_settings
`

// Get retrieves a tenant's stored settings; (nil, nil) when none exist
func (r *TenantRepository) Get(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	row := r.db.QueryRowContext(ctx, selectTenantSettings+" WHERE tenant_id = ?", tenantID)

	s, err := scanTenantSettings(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant settings: %w", err)
	}
	return s, nil
}

// Upsert creates or replaces a tenant's settings
func (r *TenantRepository) Upsert(ctx context.Context, s *tenant.Settings) error {
	now := time.Now()
	s.UpdatedAt = now

	query := `
		UPDATE tenant_settings SET
			kill_switch_threshold_usd = ?, kill_switch_scope = ?,
			monthly_cap_enabled = ?, monthly_cap_usd = ?,
			failure_threshold = ?, recovery_timeout_secs = ?, max_daily_savings_usd = ?,
			min_age_enabled = ?, min_age_days = ?, updated_at = ?
		WHERE tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		s.KillSwitchThresholdUSD,
		s.KillSwitchScope,
		s.MonthlyCapEnabled,
		s.MonthlyCapUSD,
		s.FailureThreshold,
		s.RecoveryTimeoutSecs,
		s.MaxDailySavingsUSD,
		s.MinAgeEnabled,
		s.MinAgeDays,
		s.UpdatedAt,
		s.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	s.CreatedAt = now
	insert := `
		INSERT INTO tenant_settings (
			tenant_id, kill_switch_threshold_usd, kill_switch_scope,
			monthly_cap_enabled, monthly_cap_usd,
			failure_threshold, recovery_timeout_secs, max_daily_savings_usd,
			min_age_enabled, min_age_days, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, insert,
		s.TenantID,
		s.KillSwitchThresholdUSD,
		s.KillSwitchScope,
		s.MonthlyCapEnabled,
		s.MonthlyCapUSD,
		s.FailureThreshold,
		s.RecoveryTimeoutSecs,
		s.MaxDailySavingsUSD,
		s.MinAgeEnabled,
		s.MinAgeDays,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tenant settings: %w", err)
	}
	return nil
}

// Delete removes a tenant's settings, reverting it to installation defaults
func (r *TenantRepository) Delete(ctx context.Context, tenantID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tenant_settings WHERE tenant_id = ?", tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete tenant settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant settings not found: %s", tenantID)
	}
	return nil
}

// List retrieves all tenants with stored settings
func (r *TenantRepository) List(ctx context.Context, limit, offset int) ([]*tenant.Settings, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tenant_settings").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tenant settings: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectTenantSettings+" ORDER BY tenant_id ASC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenant settings: %w", err)
	}
	defer rows.Close()

	var all []*tenant.Settings
	for rows.Next() {
		s, err := scanTenantSettings(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tenant settings: %w", err)
		}
		all = append(all, s)
	}

	return all, total, nil
}

// scanTenantSettings scans a settings row from either QueryRow or Rows
func scanTenantSettings(scan func(...interface{}) error) (*tenant.Settings, error) {
	var s tenant.Settings
	err := scan(
		&s.TenantID,
		&s.KillSwitchThresholdUSD,
		&s.KillSwitchScope,
		&s.MonthlyCapEnabled,
		&s.MonthlyCapUSD,
		&s.FailureThreshold,
		&s.RecoveryTimeoutSecs,
		&s.MaxDailySavingsUSD,
		&s.MinAgeEnabled,
		&s.MinAgeDays,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
