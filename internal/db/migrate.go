package db

import (
	"database/sql"
	"fmt"
)

// migrations are executed in order on every open. Statements are written to
// be idempotent (CREATE ... IF NOT EXISTS) so re-running is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS applications (
		id           TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		job_title    TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS stages (
		id                   TEXT PRIMARY KEY,
		application_id       TEXT NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		type                 TEXT NOT NULL
		                     CHECK(type IN ('submit_application','ai_interview','under_review',
		                                    'assignment','live_interview','offer',
		                                    'offer_accepted','disqualified')),
		order_index          INTEGER NOT NULL,
		status               TEXT NOT NULL
		                     CHECK(status IN ('pending','awaiting_candidate','awaiting_recruiter',
		                                      'in_progress','completed','skipped')),
		title                TEXT NOT NULL DEFAULT '',
		visible_to_candidate INTEGER NOT NULL DEFAULT 1,
		data                 TEXT NOT NULL,
		created_by           TEXT NOT NULL,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL,
		completed_at         TEXT,
		UNIQUE(application_id, order_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stages_application
		ON stages(application_id, order_index)`,

	`CREATE INDEX IF NOT EXISTS idx_stages_status
		ON stages(application_id, status)`,
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
