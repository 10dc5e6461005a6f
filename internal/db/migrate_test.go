package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"projects", "project_sequences", "milestones", "resource_lines", "daily_spend_logs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)
	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

func TestMigrate_RejectsDuplicateLogDate(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'P', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO milestones (id, project_id, name, planned_budget, start_date, due_date, payment_trigger_date, created_at, updated_at)
		VALUES ('m1', 'p1', 'M', 100, '2025-01-01', '2025-02-01', '2025-02-01', 'x', 'x')`)
	require.NoError(t, err)

	insert := `INSERT INTO daily_spend_logs (id, milestone_id, log_date, wages, created_at) VALUES (?, 'm1', '2025-01-05', 10, 'x')`
	_, err = db.Exec(insert, "l1")
	require.NoError(t, err)
	_, err = db.Exec(insert, "l2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestMigrate_RejectsNegativeCost(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'P', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO milestones (id, project_id, name, planned_budget, start_date, due_date, payment_trigger_date, created_at, updated_at)
		VALUES ('m1', 'p1', 'M', 100, '2025-01-01', '2025-02-01', '2025-02-01', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO daily_spend_logs (id, milestone_id, log_date, wages, created_at) VALUES ('l1', 'm1', '2025-01-05', -1, 'x')`)
	assert.Error(t, err)
}
