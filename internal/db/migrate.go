package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent so the whole
// list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS project_sequences (
		project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		next_seq   INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id                    TEXT PRIMARY KEY,
		project_id            TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		seq                   INTEGER NOT NULL DEFAULT 0,
		name                  TEXT NOT NULL,
		planned_budget        REAL NOT NULL,
		start_date            TEXT NOT NULL,
		due_date              TEXT NOT NULL,
		payment_trigger_date  TEXT NOT NULL,
		status                TEXT NOT NULL DEFAULT 'open'
		                      CHECK(status IN ('open','closed')),
		phases                INTEGER NOT NULL DEFAULT 1,
		delay_penalty_per_day REAL NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS resource_lines (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		milestone_id TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		kind         TEXT NOT NULL CHECK(kind IN ('labour','material','machine')),
		name         TEXT NOT NULL DEFAULT '',
		count        INTEGER NOT NULL DEFAULT 0,
		quantity     REAL NOT NULL DEFAULT 0,
		rate         REAL NOT NULL DEFAULT 0,
		days         INTEGER NOT NULL DEFAULT 0,
		order_index  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resource_lines_milestone ON resource_lines(milestone_id)`,

	`CREATE TABLE IF NOT EXISTS daily_spend_logs (
		id           TEXT PRIMARY KEY,
		milestone_id TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		log_date     TEXT NOT NULL,
		wages        REAL NOT NULL DEFAULT 0 CHECK(wages >= 0),
		materials    REAL NOT NULL DEFAULT 0 CHECK(materials >= 0),
		machinery    REAL NOT NULL DEFAULT 0 CHECK(machinery >= 0),
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		UNIQUE(milestone_id, log_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_spend_logs_date ON daily_spend_logs(log_date)`,
}
