package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Create schema
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(255) NOT NULL UNIQUE,
		full_name VARCHAR(255),
		password_hash VARCHAR(255) NOT NULL DEFAULT '',
		tenant_id VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(50) NOT NULL DEFAULT 'operator',
		created_at BIGINT NOT NULL DEFAULT 0,
		updated_at BIGINT NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS tenant_settings (
		tenant_id VARCHAR(255) PRIMARY KEY,
		kill_switch_threshold_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		kill_switch_scope VARCHAR(20) NOT NULL DEFAULT 'tenant',
		monthly_cap_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		monthly_cap_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		failure_threshold INTEGER NOT NULL DEFAULT 0,
		recovery_timeout_secs INTEGER NOT NULL DEFAULT 0,
		max_daily_savings_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		min_age_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		min_age_days INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS classification_runs (
		id VARCHAR(36) PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		source VARCHAR(20) NOT NULL,
		payload TEXT,
		summary TEXT,
		recommendations INTEGER NOT NULL DEFAULT 0,
		findings INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS recommendations (
		id VARCHAR(36) PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		tenant_id VARCHAR(255) NOT NULL,
		resource_id VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		detection_class VARCHAR(50) NOT NULL,
		required_action VARCHAR(50) NOT NULL,
		policy_route VARCHAR(50) NOT NULL,
		confidence DECIMAL(4, 2) NOT NULL DEFAULT 0,
		savings_low_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		savings_mid_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		savings_high_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS arch_findings (
		id VARCHAR(36) PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		tenant_id VARCHAR(255) NOT NULL,
		finding_type VARCHAR(50) NOT NULL,
		resource_id VARCHAR(255) NOT NULL,
		resource_ids TEXT,
		provider VARCHAR(50),
		environment VARCHAR(50),
		risk_label VARCHAR(20) NOT NULL,
		required_action VARCHAR(50) NOT NULL,
		policy_route VARCHAR(50) NOT NULL,
		confidence DECIMAL(4, 2) NOT NULL DEFAULT 0,
		savings_low_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		savings_mid_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		savings_high_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		details TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS remediation_actions (
		id VARCHAR(36) PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		recommendation_id VARCHAR(36),
		resource_id VARCHAR(255) NOT NULL,
		resource_type VARCHAR(100),
		tags TEXT,
		action_type VARCHAR(50) NOT NULL,
		policy_route VARCHAR(50) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		estimated_savings_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		safety_verdict TEXT,
		denial_code VARCHAR(50) NOT NULL DEFAULT '',
		result TEXT,
		error_message TEXT NOT NULL DEFAULT '',
		approved_by BIGINT,
		approved_at TIMESTAMP,
		executed_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS savings_records (
		id VARCHAR(36) PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		action_id VARCHAR(36),
		resource_id VARCHAR(255) NOT NULL DEFAULT '',
		amount_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		realized_on TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cost_records (
		id VARCHAR(36) PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		provider VARCHAR(50) NOT NULL DEFAULT '',
		service_name VARCHAR(255) NOT NULL DEFAULT '',
		amount_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
		currency VARCHAR(10) NOT NULL DEFAULT 'USD',
		incurred_on TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notification_channels (
		id VARCHAR(36) PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		channel VARCHAR(50) NOT NULL,
		is_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		config TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(tenant_id, channel)
	);

	CREATE TABLE IF NOT EXISTS notification_logs (
		id VARCHAR(36) PRIMARY KEY,
		tenant_id VARCHAR(255) NOT NULL,
		channel VARCHAR(50) NOT NULL,
		event_type VARCHAR(50) NOT NULL,
		status VARCHAR(20) NOT NULL,
		payload TEXT,
		error_message TEXT NOT NULL DEFAULT '',
		sent_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err = db.Exec(schema)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}
