package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS; a re-run reports the column
			// as a duplicate.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		source_path TEXT NOT NULL,
		operator    TEXT NOT NULL DEFAULT '',
		team        TEXT NOT NULL,
		record_file TEXT NOT NULL DEFAULT '',
		stats       TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_logs (
		id               TEXT PRIMARY KEY,
		run_id           TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq              INTEGER NOT NULL CHECK(seq > 0),
		fecha            TEXT NOT NULL,
		op               INTEGER NOT NULL CHECK(op > 0),
		operario         TEXT NOT NULL,
		actividad        TEXT NOT NULL,
		tiempo_ordinario INTEGER NOT NULL CHECK(tiempo_ordinario >= 50 AND tiempo_ordinario % 50 = 0),
		tiempo_extra     INTEGER NOT NULL DEFAULT 0 CHECK(tiempo_extra >= 0),
		equipo           TEXT NOT NULL,
		UNIQUE(run_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_logs_run ON work_logs(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_logs_op ON work_logs(op)`,
	`CREATE INDEX IF NOT EXISTS idx_work_logs_fecha ON work_logs(fecha)`,

	`CREATE TABLE IF NOT EXISTS replay_results (
		id         TEXT PRIMARY KEY,
		run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		status     TEXT NOT NULL
		           CHECK(status IN ('replayed','failed','skipped')),
		field      TEXT NOT NULL DEFAULT '',
		error      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_replay_results_run ON replay_results(run_id)`,

	// Fields filled before a replay failure, comma separated.
	`ALTER TABLE replay_results ADD COLUMN completed_fields TEXT NOT NULL DEFAULT ''`,
}
