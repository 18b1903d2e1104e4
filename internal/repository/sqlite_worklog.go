package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/db"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/google/uuid"
)

// SQLiteWorkLogRepo implements WorkLogRepo using a SQLite database.
type SQLiteWorkLogRepo struct {
	db db.DBTX
}

// NewSQLiteWorkLogRepo creates a new SQLiteWorkLogRepo.
func NewSQLiteWorkLogRepo(conn db.DBTX) *SQLiteWorkLogRepo {
	return &SQLiteWorkLogRepo{db: conn}
}

const workLogColumns = `id, run_id, seq, fecha, op, operario, actividad, tiempo_ordinario, tiempo_extra, equipo`

// CreateBatch stores logs under runID with seq starting at 1 in slice order.
func (r *SQLiteWorkLogRepo) CreateBatch(ctx context.Context, runID string, logs []domain.WorkLog) ([]domain.StoredWorkLog, error) {
	query := `INSERT INTO work_logs (` + workLogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stored := make([]domain.StoredWorkLog, 0, len(logs))
	for i, l := range logs {
		s := domain.StoredWorkLog{ID: uuid.New().String(), RunID: runID, Seq: i + 1, Log: l}
		_, err := r.db.ExecContext(ctx, query,
			s.ID, s.RunID, s.Seq,
			l.Date, l.OP, l.Operator, l.Activity,
			int64(l.OrdinaryHours), int64(l.OvertimeHours), l.Team,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting work log %d (OP %d): %w", s.Seq, l.OP, err)
		}
		stored = append(stored, s)
	}
	return stored, nil
}

func (r *SQLiteWorkLogRepo) ListByRun(ctx context.Context, runID string) ([]domain.StoredWorkLog, error) {
	return r.Find(ctx, WorkLogFilter{RunID: runID})
}

// Find returns matching logs ordered by run and then canonical order.
func (r *SQLiteWorkLogRepo) Find(ctx context.Context, f WorkLogFilter) ([]domain.StoredWorkLog, error) {
	var where []string
	var args []any
	if f.RunID != "" {
		where = append(where, "w.run_id = ?")
		args = append(args, f.RunID)
	}
	if f.OP > 0 {
		where = append(where, "w.op = ?")
		args = append(args, f.OP)
	}
	if f.Date != "" {
		where = append(where, "w.fecha = ?")
		args = append(args, f.Date)
	}
	if f.Operator != "" {
		where = append(where, "w.operario LIKE '%' || ? || '%'")
		args = append(args, f.Operator)
	}
	if f.Team != "" {
		where = append(where, "w.equipo = ?")
		args = append(args, f.Team)
	}

	query := `SELECT w.id, w.run_id, w.seq, w.fecha, w.op, w.operario, w.actividad, w.tiempo_ordinario, w.tiempo_extra, w.equipo
		FROM work_logs w JOIN runs r ON r.id = w.run_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.created_at, w.run_id, w.seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work logs: %w", err)
	}
	defer rows.Close()

	var out []domain.StoredWorkLog
	for rows.Next() {
		var s domain.StoredWorkLog
		var ordinary, overtime int64
		err := rows.Scan(&s.ID, &s.RunID, &s.Seq,
			&s.Log.Date, &s.Log.OP, &s.Log.Operator, &s.Log.Activity,
			&ordinary, &overtime, &s.Log.Team)
		if err != nil {
			return nil, fmt.Errorf("scanning work log row: %w", err)
		}
		s.Log.OrdinaryHours = domain.Hours(ordinary)
		s.Log.OvertimeHours = domain.Hours(overtime)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work logs: %w", err)
	}
	return out, nil
}
