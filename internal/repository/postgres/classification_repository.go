package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wastegate/wastegate/internal/domain/classification"
)

// ClassificationRepository implements classification.Repository for
// PostgreSQL/SQLite
type ClassificationRepository struct {
	db *sql.DB
}

// NewClassificationRepository creates a new classification repository
func NewClassificationRepository(db *sql.DB) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

// CreateRun creates a new classification run
func (r *ClassificationRepository) CreateRun(ctx context.Context, run *classification.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	query := `
		INSERT INTO classification_runs (
			id, tenant_id, source, payload, summary, recommendations, findings, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.TenantID,
		run.Source,
		string(run.Payload),
		string(summaryJSON),
		run.Recommendations,
		run.Findings,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create classification run: %w", err)
	}

	return nil
}

// GetRun retrieves a classification run by ID
func (r *ClassificationRepository) GetRun(ctx context.Context, tenantID, id string) (*classification.Run, error) {
	query := `
		SELECT id, tenant_id, source, payload, summary, recommendations, findings, created_at
		FROM classification_runs
		WHERE tenant_id = ? AND id = ?
	`

	var run classification.Run
	var payload, summary sql.NullString

	err := r.db.QueryRowContext(ctx, query, tenantID, id).Scan(
		&run.ID,
		&run.TenantID,
		&run.Source,
		&payload,
		&summary,
		&run.Recommendations,
		&run.Findings,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("classification run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan classification run: %w", err)
	}

	if payload.Valid {
		run.Payload = json.RawMessage(payload.String)
	}
	if summary.Valid {
		if err := json.Unmarshal([]byte(summary.String), &run.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run summary: %w", err)
		}
	}

	return &run, nil
}

// ListRuns lists a tenant's classification runs, newest first
func (r *ClassificationRepository) ListRuns(ctx context.Context, tenantID string, limit, offset int) ([]*classification.Run, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM classification_runs WHERE tenant_id = ?", tenantID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count classification runs: %w", err)
	}

	query := `
		SELECT id, tenant_id, source, payload, summary, recommendations, findings, created_at
		FROM classification_runs
		WHERE tenant_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list classification runs: %w", err)
	}
	defer rows.Close()

	var runs []*classification.Run
	for rows.Next() {
		var run classification.Run
		var payload, summary sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.TenantID,
			&run.Source,
			&payload,
			&summary,
			&run.Recommendations,
			&run.Findings,
			&run.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan classification run: %w", err)
		}
		if payload.Valid {
			run.Payload = json.RawMessage(payload.String)
		}
		if summary.Valid {
			if err := json.Unmarshal([]byte(summary.String), &run.Summary); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal run summary: %w", err)
			}
		}
		runs = append(runs, &run)
	}

	return runs, total, nil
}

// CreateRecommendations inserts a run's recommendations in one transaction
func (r *ClassificationRepository) CreateRecommendations(ctx context.Context, recs []*classification.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO recommendations (
			id, run_id, tenant_id, resource_id, category, detection_class,
			required_action, policy_route, confidence,
			savings_low_usd, savings_mid_usd, savings_high_usd,
			status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	for _, rec := range recs {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.Status == "" {
			rec.Status = classification.StatusPending
		}
		rec.CreatedAt = now
		rec.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, query,
			rec.ID,
			rec.RunID,
			rec.TenantID,
			rec.ResourceID,
			rec.Category,
			rec.DetectionClass,
			rec.RequiredAction,
			rec.PolicyRoute,
			rec.Confidence,
			rec.SavingsLowUSD,
			rec.SavingsMidUSD,
			rec.SavingsHighUSD,
			string(rec.Status),
			rec.CreatedAt,
			rec.UpdatedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}
	return nil
}

// GetRecommendation retrieves a recommendation by ID
func (r *ClassificationRepository) GetRecommendation(ctx context.Context, tenantID, id string) (*classification.Recommendation, error) {
	query := selectRecommendation + " WHERE tenant_id = ? AND id = ?"

	row := r.db.QueryRowContext(ctx, query, tenantID, id)
	rec, err := scanRecommendation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recommendation not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecommendations lists recommendations with filtering
func (r *ClassificationRepository) ListRecommendations(ctx context.Context, tenantID string, filter classification.Filter, limit, offset int) ([]*classification.Recommendation, int64, error) {
	where := " WHERE tenant_id = ?"
	args := []interface{}{tenantID}

	if filter.RunID != "" {
		where += " AND run_id = ?"
		args = append(args, filter.RunID)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.DetectionClass != "" {
		where += " AND detection_class = ?"
		args = append(args, filter.DetectionClass)
	}
	if filter.PolicyRoute != "" {
		where += " AND policy_route = ?"
		args = append(args, filter.PolicyRoute)
	}
	if filter.MinConfidence > 0 {
		where += " AND confidence >= ?"
		args = append(args, filter.MinConfidence)
	}

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recommendations"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count recommendations: %w", err)
	}

	query := selectRecommendation + where + " ORDER BY savings_mid_usd DESC, resource_id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*classification.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}

	return recs, total, nil
}

// UpdateRecommendationStatus updates a recommendation's lifecycle status
func (r *ClassificationRepository) UpdateRecommendationStatus(ctx context.Context, tenantID, id string, status classification.Status) error {
	query := `UPDATE recommendations SET status = ?, updated_at = ? WHERE tenant_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to update recommendation status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("recommendation not found")
	}
	return nil
}

// ExpirePendingBefore marks pending recommendations created before the cutoff
// as expired and returns how many were affected.
func (r *ClassificationRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE recommendations SET status = ?, updated_at = ? WHERE status = ? AND created_at < ?`

	result, err := r.db.ExecContext(ctx, query,
		string(classification.StatusExpired),
		time.Now(),
		string(classification.StatusPending),
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire recommendations: %w", err)
	}

	expired, _ := result.RowsAffected()
	return expired, nil
}

// PendingSavings sums the savings range over a tenant's pending recommendations
func (r *ClassificationRepository) PendingSavings(ctx context.Context, tenantID string) (*classification.SavingsTotals, error) {
	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(savings_low_usd), 0),
			   COALESCE(SUM(savings_mid_usd), 0),
			   COALESCE(SUM(savings_high_usd), 0)
		FROM recommendations
		WHERE tenant_id = ? AND status = ?
	`

	var totals classification.SavingsTotals
	err := r.db.QueryRowContext(ctx, query, tenantID, string(classification.StatusPending)).Scan(
		&totals.Count,
		&totals.LowUSD,
		&totals.MidUSD,
		&totals.HighUSD,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending savings: %w", err)
	}
	return &totals, nil
}

// CreateFindings inserts a run's architecture findings in one transaction
func (r *ClassificationRepository) CreateFindings(ctx context.Context, findings []*classification.ArchFinding) error {
	if len(findings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO arch_findings (
			id, run_id, tenant_id, finding_type, resource_id, resource_ids,
			provider, environment, risk_label, required_action, policy_route,
			confidence, savings_low_usd, savings_mid_usd, savings_high_usd,
			details, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	for _, f := range findings {
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		f.CreatedAt = now

		idsJSON, err := json.Marshal(f.ResourceIDs)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to marshal resource ids: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query,
			f.ID,
			f.RunID,
			f.TenantID,
			f.FindingType,
			f.ResourceID,
			string(idsJSON),
			f.Provider,
			f.Environment,
			f.RiskLabel,
			f.RequiredAction,
			f.PolicyRoute,
			f.Confidence,
			f.SavingsLowUSD,
			f.SavingsMidUSD,
			f.SavingsHighUSD,
			string(f.Details),
			f.CreatedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit findings: %w", err)
	}
	return nil
}

// ListFindings lists architecture findings with filtering
func (r *ClassificationRepository) ListFindings(ctx context.Context, tenantID string, filter classification.FindingFilter, limit, offset int) ([]*classification.ArchFinding, int64, error) {
	where := " WHERE tenant_id = ?"
	args := []interface{}{tenantID}

	if filter.RunID != "" {
		where += " AND run_id = ?"
		args = append(args, filter.RunID)
	}
	if filter.FindingType != "" {
		where += " AND finding_type = ?"
		args = append(args, filter.FindingType)
	}
	if filter.RiskLabel != "" {
		where += " AND risk_label = ?"
		args = append(args, filter.RiskLabel)
	}

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM arch_findings"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count findings: %w", err)
	}

	query := `
		SELECT id, run_id, tenant_id, finding_type, resource_id, resource_ids,
			   provider, environment, risk_label, required_action, policy_route,
			   confidence, savings_low_usd, savings_mid_usd, savings_high_usd,
			   details, created_at
		FROM arch_findings` + where + " ORDER BY savings_mid_usd DESC, finding_type ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list findings: %w", err)
	}
	defer rows.Close()

	var findings []*classification.ArchFinding
	for rows.Next() {
		var f classification.ArchFinding
		var ids, details sql.NullString
		if err := rows.Scan(
			&f.ID,
			&f.RunID,
			&f.TenantID,
			&f.FindingType,
			&f.ResourceID,
			&ids,
			&f.Provider,
			&f.Environment,
			&f.RiskLabel,
			&f.RequiredAction,
			&f.PolicyRoute,
			&f.Confidence,
			&f.SavingsLowUSD,
			&f.SavingsMidUSD,
			&f.SavingsHighUSD,
			&details,
			&f.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan finding: %w", err)
		}
		if ids.Valid && ids.String != "" {
			if err := json.Unmarshal([]byte(ids.String), &f.ResourceIDs); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal resource ids: %w", err)
			}
		}
		if details.Valid {
			f.Details = json.RawMessage(details.String)
		}
		findings = append(findings, &f)
	}

	return findings, total, nil
}

const selectRecommendation = `
	SELECT id, run_id, tenant_id, resource_id, category, detection_class,
		   required_action, policy_route, confidence,
		   savings_low_usd, savings_mid_usd, savings_high_usd,
		   status, created_at, updated_at
	FROM recommendations`

// scanRecommendation scans one recommendation row via the given scan func
func scanRecommendation(scan func(...interface{}) error) (*classification.Recommendation, error) {
	var rec classification.Recommendation
	var status string

	err := scan(
		&rec.ID,
		&rec.RunID,
		&rec.TenantID,
		&rec.ResourceID,
		&rec.Category,
		&rec.DetectionClass,
		&rec.RequiredAction,
		&rec.PolicyRoute,
		&rec.Confidence,
		&rec.SavingsLowUSD,
		&rec.SavingsMidUSD,
		&rec.SavingsHighUSD,
		&status,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan recommendation: %w", err)
	}

	rec.Status = classification.Status(status)
	return &rec, nil
}
