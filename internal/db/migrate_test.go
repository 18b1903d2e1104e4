package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
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

	for _, table := range []string{"runs", "work_logs", "replay_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_work_logs_run", "idx_work_logs_op", "idx_work_logs_fecha", "idx_replay_results_run"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_WorkLogConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO runs (id, source_path, team, created_at) VALUES ('r1', 'x.xlsx', '30', '2025-04-03T10:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO work_logs (id, run_id, seq, fecha, op, operario, actividad, tiempo_ordinario, equipo)
		VALUES (?, 'r1', ?, '25-04-03', ?, 'Nelson Rangel', 'REUNION', ?, '30')`

	_, err = db.Exec(insert, "w1", 1, 7027, 250)
	require.NoError(t, err)

	_, err = db.Exec(insert, "w2", 2, 7027, 30)
	assert.Error(t, err, "ordinary hours must be a half-hour multiple of at least 0.5")

	_, err = db.Exec(insert, "w3", 3, 0, 50)
	assert.Error(t, err, "op must be positive")

	_, err = db.Exec(insert, "w4", 1, 7028, 50)
	assert.Error(t, err, "seq is unique within a run")
}

func TestMigrate_UpgradeAddsCompletedFields(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE runs (id TEXT PRIMARY KEY, source_path TEXT NOT NULL, operator TEXT NOT NULL DEFAULT '',
		team TEXT NOT NULL, record_file TEXT NOT NULL DEFAULT '', stats TEXT NOT NULL DEFAULT '{}', created_at TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE replay_results (id TEXT PRIMARY KEY, run_id TEXT NOT NULL, seq INTEGER NOT NULL,
		status TEXT NOT NULL, field TEXT NOT NULL DEFAULT '', error TEXT NOT NULL DEFAULT '', created_at TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO runs (id, source_path, team, created_at) VALUES ('r1', 'x.xlsx', '30', '2025-04-03T10:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO replay_results (id, run_id, seq, status, created_at) VALUES ('a', 'r1', 1, 'replayed', '2025-04-03T10:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var completed string
	require.NoError(t, db.QueryRow(`SELECT completed_fields FROM replay_results WHERE id = 'a'`).Scan(&completed))
	assert.Equal(t, "", completed)
}
