package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wastegate/wastegate/internal/domain/notification"
)

// NotificationRepository implements notification.Repository for PostgreSQL/SQLite
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// UpsertChannel creates or replaces a tenant's channel config. One config per
// (tenant, channel) pair.
func (r *NotificationRepository) UpsertChannel(ctx context.Context, cfg *notification.ChannelConfig) error {
	now := time.Now()
	cfg.UpdatedAt = now

	query := `
		UPDATE notification_channels SET
			is_enabled = ?, config = ?, updated_at = ?
		WHERE tenant_id = ? AND channel = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		cfg.IsEnabled,
		nullableJSON(cfg.Config),
		cfg.UpdatedAt,
		cfg.TenantID,
		cfg.Channel,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification channel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		existing, err := r.GetChannel(ctx, cfg.TenantID, cfg.Channel)
		if err != nil {
			return err
		}
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		return nil
	}

	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	cfg.CreatedAt = now
	insert := `
		INSERT INTO notification_channels (
			id, tenant_id, channel, is_enabled, config, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, insert,
		cfg.ID,
		cfg.TenantID,
		cfg.Channel,
		cfg.IsEnabled,
		nullableJSON(cfg.Config),
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification channel: %w", err)
	}
	return nil
}

// GetChannel retrieves one channel config for a tenant
func (r *NotificationRepository) GetChannel(ctx context.Context, tenantID string, channel notification.Channel) (*notification.ChannelConfig, error) {
	query := `
		SELECT id, tenant_id, channel, is_enabled, config, created_at, updated_at
		FROM notification_channels
		WHERE tenant_id = ? AND channel = ?
	`

	cfg, err := scanNotificationChannel(r.db.QueryRowContext(ctx, query, tenantID, channel).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification channel not found: %s/%s", tenantID, channel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification channel: %w", err)
	}
	return cfg, nil
}

// ListChannels retrieves all channel configs for a tenant
func (r *NotificationRepository) ListChannels(ctx context.Context, tenantID string) ([]*notification.ChannelConfig, error) {
	query := `
		SELECT id, tenant_id, channel, is_enabled, config, created_at, updated_at
		FROM notification_channels
		WHERE tenant_id = ?
		ORDER BY channel ASC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification channels: %w", err)
	}
	defer rows.Close()

	var configs []*notification.ChannelConfig
	for rows.Next() {
		cfg, err := scanNotificationChannel(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification channel: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}

// DeleteChannel removes a channel config by ID
func (r *NotificationRepository) DeleteChannel(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notification_channels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete notification channel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("notification channel not found: %s", id)
	}
	return nil
}

// CreateLog writes one delivery attempt record
func (r *NotificationRepository) CreateLog(ctx context.Context, log *notification.Log) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	log.CreatedAt = time.Now()

	query := `
		INSERT INTO notification_logs (
			id, tenant_id, channel, event_type, status, payload, error_message, sent_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.TenantID,
		log.Channel,
		log.EventType,
		log.Status,
		nullableJSON(log.Payload),
		log.ErrorMessage,
		log.SentAt,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification log: %w", err)
	}
	return nil
}

// ListLogs lists a tenant's delivery records with filtering, newest first
func (r *NotificationRepository) ListLogs(ctx context.Context, tenantID string, filter notification.LogFilter, limit, offset int) ([]*notification.Log, int64, error) {
	where := " WHERE tenant_id = ?"
	args := []interface{}{tenantID}

	if filter.Channel != "" {
		where += " AND channel = ?"
		args = append(args, filter.Channel)
	}
	if filter.EventType != "" {
		where += " AND event_type = ?"
		args = append(args, filter.EventType)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
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
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notification_logs"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notification logs: %w", err)
	}

	query := `
		SELECT id, tenant_id, channel, event_type, status, payload, error_message, sent_at, created_at
		FROM notification_logs` + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notification logs: %w", err)
	}
	defer rows.Close()

	var logs []*notification.Log
	for rows.Next() {
		var l notification.Log
		var payload sql.NullString
		var sentAt sql.NullTime
		if err := rows.Scan(
			&l.ID,
			&l.TenantID,
			&l.Channel,
			&l.EventType,
			&l.Status,
			&payload,
			&l.ErrorMessage,
			&sentAt,
			&l.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification log: %w", err)
		}
		if payload.Valid && payload.String != "" {
			l.Payload = []byte(payload.String)
		}
		if sentAt.Valid {
			l.SentAt = &sentAt.Time
		}
		logs = append(logs, &l)
	}

	return logs, total, nil
}

// scanNotificationChannel scans a channel config row
func scanNotificationChannel(scan func(...interface{}) error) (*notification.ChannelConfig, error) {
	var cfg notification.ChannelConfig
	var config sql.NullString
	err := scan(
		&cfg.ID,
		&cfg.TenantID,
		&cfg.Channel,
		&cfg.IsEnabled,
		&config,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if config.Valid && config.String != "" {
		cfg.Config = []byte(config.String)
	}
	return &cfg, nil
}
