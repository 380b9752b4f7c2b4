package postgres

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// RunMigrations applies all pending .sql migrations from the provided
// filesystem in lexical order, recording each in schema_migrations. It
// returns the number of migrations applied.
func RunMigrations(db *sql.DB, migrationsFS fs.FS) (int, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return 0, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return 0, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	count := 0
	for _, filename := range files {
		if applied[filename] {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, filename)
		if err != nil {
			return count, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		// One transaction per migration
		tx, err := db.Begin()
		if err != nil {
			return count, fmt.Errorf("failed to start transaction for %s: %w", filename, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return count, fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		// $1 placeholder works for postgres; sqlite accepts it as well
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", filename); err != nil {
			tx.Rollback()
			return count, fmt.Errorf("failed to record migration %s: %w", filename, err)
		}

		if err := tx.Commit(); err != nil {
			return count, fmt.Errorf("failed to commit migration %s: %w", filename, err)
		}

		count++
	}

	return count, nil
}
