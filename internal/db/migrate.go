package db

import (
	"database/sql"
	"fmt"
)

// migrations holds every schema statement in order. Statements are
// idempotent so the whole list re-runs safely on startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		kind   TEXT NOT NULL,
		id     TEXT NOT NULL,
		fields TEXT NOT NULL DEFAULT '{}',
		PRIMARY KEY (kind, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_kind ON records (kind)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
