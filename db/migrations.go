package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RunMigrations applies the schema. Statements are idempotent so running
// them at every boot is safe.
func RunMigrations(db *sqlx.DB, schema string) error {
	statements := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.triggers (
				id TEXT PRIMARY KEY,
				team_id TEXT NOT NULL,
				triggered_by TEXT NOT NULL,
				text_rep TEXT,
				emoji_rep TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (team_id, triggered_by)
			)`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.edits (
				id TEXT PRIMARY KEY,
				edit TEXT NOT NULL,
				replace_with_text TEXT,
				team_id TEXT,
				user_id TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, schema),
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
