package repository

import (
	"context"
	"fmt"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/db"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

// SQLiteReplayResultRepo implements ReplayResultRepo using a SQLite database.
type SQLiteReplayResultRepo struct {
	db db.DBTX
}

// NewSQLiteReplayResultRepo creates a new SQLiteReplayResultRepo.
func NewSQLiteReplayResultRepo(conn db.DBTX) *SQLiteReplayResultRepo {
	return &SQLiteReplayResultRepo{db: conn}
}

func (r *SQLiteReplayResultRepo) Create(ctx context.Context, res *domain.ReplayResult) error {
	query := `INSERT INTO replay_results (id, run_id, seq, status, field, error, completed_fields, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.RunID,
		res.Seq,
		string(res.Status),
		res.Field,
		res.Error,
		joinFields(res.Completed),
		formatTime(res.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting replay result: %w", err)
	}
	return nil
}

// ListByRun returns a run's outcomes oldest first.
func (r *SQLiteReplayResultRepo) ListByRun(ctx context.Context, runID string) ([]domain.ReplayResult, error) {
	query := `SELECT id, run_id, seq, status, field, error, completed_fields, created_at
		FROM replay_results WHERE run_id = ? ORDER BY created_at, seq`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("listing replay results: %w", err)
	}
	defer rows.Close()

	var out []domain.ReplayResult
	for rows.Next() {
		var res domain.ReplayResult
		var status, completed, createdAt string
		if err := rows.Scan(&res.ID, &res.RunID, &res.Seq, &status, &res.Field, &res.Error, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning replay result: %w", err)
		}
		res.Status = domain.ReplayStatus(status)
		res.Completed = splitFields(completed)
		if res.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating replay results: %w", err)
	}
	return out, nil
}
