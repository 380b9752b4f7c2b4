package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wastegate/wastegate/internal/domain/remediation"
)

// RemediationRepository implements remediation.Repository for PostgreSQL/SQLite
type RemediationRepository struct {
	db *sql.DB
}

// NewRemediationRepository creates a new remediation repository
func NewRemediationRepository(db *sql.DB) *RemediationRepository {
	return &RemediationRepository{db: db}
}

// Create creates a new remediation action
func (r *RemediationRepository) Create(ctx context.Context, a *remediation.Action) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	tagsJSON, err := json.Marshal(a.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO remediation_actions (
			id, tenant_id, recommendation_id, resource_id, resource_type, tags,
			action_type, policy_route, status, estimated_savings_usd,
			safety_verdict, denial_code, result, error_message,
			approved_by, approved_at, executed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.TenantID,
		a.RecommendationID,
		a.ResourceID,
		a.ResourceType,
		string(tagsJSON),
		string(a.ActionType),
		a.PolicyRoute,
		string(a.Status),
		a.EstimatedSavingsUSD,
		a.SafetyVerdict,
		a.DenialCode,
		nullableJSON(a.Result),
		a.ErrorMessage,
		a.ApprovedBy,
		a.ApprovedAt,
		a.ExecutedAt,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create remediation action: %w", err)
	}

	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// GetByID retrieves a remediation action by ID
func (r *RemediationRepository) GetByID(ctx context.Context, tenantID, id string) (*remediation.Action, error) {
	query := selectAction + " WHERE tenant_id = ? AND id = ?"

	a, err := scanAction(r.db.QueryRowContext(ctx, query, tenantID, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("remediation action not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Update updates a remediation action
func (r *RemediationRepository) Update(ctx context.Context, a *remediation.Action) error {
	tagsJSON, err := json.Marshal(a.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		UPDATE remediation_actions
		SET status = ?, tags = ?, estimated_savings_usd = ?, safety_verdict = ?,
			denial_code = ?, result = ?, error_message = ?,
			approved_by = ?, approved_at = ?, executed_at = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?
	`

	a.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		string(a.Status),
		string(tagsJSON),
		a.EstimatedSavingsUSD,
		a.SafetyVerdict,
		a.DenialCode,
		nullableJSON(a.Result),
		a.ErrorMessage,
		a.ApprovedBy,
		a.ApprovedAt,
		a.ExecutedAt,
		a.UpdatedAt,
		a.TenantID,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update remediation action: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("remediation action not found")
	}
	return nil
}

// List lists remediation actions with filtering
func (r *RemediationRepository) List(ctx context.Context, tenantID string, filter remediation.Filter, limit, offset int) ([]*remediation.Action, int64, error) {
	where := " WHERE tenant_id = ?"
	args := []interface{}{tenantID}

	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.ActionType != "" {
		where += " AND action_type = ?"
		args = append(args, string(filter.ActionType))
	}
	if filter.ResourceID != "" {
		where += " AND resource_id = ?"
		args = append(args, filter.ResourceID)
	}
	if filter.RecommendationID != "" {
		where += " AND recommendation_id = ?"
		args = append(args, filter.RecommendationID)
	}
	if filter.From != nil {
		where += " AND created_at >= ?"
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where += " AND created_at <= ?"
		args = append(args, *filter.To)
	}

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM remediation_actions"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count remediation actions: %w", err)
	}

	query := selectAction + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list remediation actions: %w", err)
	}
	defer rows.Close()

	var actions []*remediation.Action
	for rows.Next() {
		action, err := scanAction(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		actions = append(actions, action)
	}

	return actions, total, nil
}

// GetByRecommendationID retrieves actions created from a recommendation
func (r *RemediationRepository) GetByRecommendationID(ctx context.Context, tenantID, recommendationID string) ([]*remediation.Action, error) {
	query := selectAction + " WHERE tenant_id = ? AND recommendation_id = ? ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, tenantID, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query remediation actions: %w", err)
	}
	defer rows.Close()

	var actions []*remediation.Action
	for rows.Next() {
		action, err := scanAction(rows.Scan)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return actions, nil
}

// GetPendingApprovals retrieves actions awaiting operator approval
func (r *RemediationRepository) GetPendingApprovals(ctx context.Context, tenantID string) ([]*remediation.Action, error) {
	query := selectAction + ` WHERE tenant_id = ? AND status = 'pending' AND policy_route != 'auto_queue' ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending approvals: %w", err)
	}
	defer rows.Close()

	var actions []*remediation.Action
	for rows.Next() {
		action, err := scanAction(rows.Scan)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return actions, nil
}

// CountByStatus counts remediation actions by status
func (r *RemediationRepository) CountByStatus(ctx context.Context, tenantID string) (map[remediation.ActionStatus]int, error) {
	query := `
		SELECT status, COUNT(*) as count
		FROM remediation_actions
		WHERE tenant_id = ?
		GROUP BY status
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	defer rows.Close()

	result := make(map[remediation.ActionStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		result[remediation.ActionStatus(status)] = count
	}

	return result, nil
}

const selectAction = `
	SELECT id, tenant_id, recommendation_id, resource_id, resource_type, tags,
		   action_type, policy_route, status, estimated_savings_usd,
		   safety_verdict, denial_code, result, error_message,
		   approved_by, approved_at, executed_at, created_at, updated_at
	FROM remediation_actions`

// scanAction scans one remediation action row via the given scan func
func scanAction(scan func(...interface{}) error) (*remediation.Action, error) {
	var a remediation.Action
	var recommendationID, safetyVerdict, tags, result sql.NullString
	var approvedBy sql.NullInt64
	var approvedAt, executedAt sql.NullTime
	var actionType, status string

	err := scan(
		&a.ID,
		&a.TenantID,
		&recommendationID,
		&a.ResourceID,
		&a.ResourceType,
		&tags,
		&actionType,
		&a.PolicyRoute,
		&status,
		&a.EstimatedSavingsUSD,
		&safetyVerdict,
		&a.DenialCode,
		&result,
		&a.ErrorMessage,
		&approvedBy,
		&approvedAt,
		&executedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan remediation action: %w", err)
	}

	a.ActionType = remediation.ActionType(actionType)
	a.Status = remediation.ActionStatus(status)

	if recommendationID.Valid {
		a.RecommendationID = &recommendationID.String
	}
	if safetyVerdict.Valid {
		a.SafetyVerdict = &safetyVerdict.String
	}
	if tags.Valid && tags.String != "" && tags.String != "null" {
		if err := json.Unmarshal([]byte(tags.String), &a.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	if result.Valid && result.String != "" {
		a.Result = json.RawMessage(result.String)
	}
	if approvedBy.Valid {
		a.ApprovedBy = &approvedBy.Int64
	}
	if approvedAt.Valid {
		a.ApprovedAt = &approvedAt.Time
	}
	if executedAt.Valid {
		a.ExecutedAt = &executedAt.Time
	}

	return &a, nil
}

// nullableJSON renders raw JSON for storage, mapping empty to NULL
func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
