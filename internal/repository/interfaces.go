package repository

import (
	"context"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

// WorkLogFilter narrows a work-log query. Zero values match everything;
// Operator matches as a case-insensitive substring.
type WorkLogFilter struct {
	RunID    string
	OP       int
	Date     string
	Operator string
	Team     string
}

type RunRepo interface {
	Create(ctx context.Context, r *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context) ([]*domain.Run, error)
}

type WorkLogRepo interface {
	CreateBatch(ctx context.Context, runID string, logs []domain.WorkLog) ([]domain.StoredWorkLog, error)
	ListByRun(ctx context.Context, runID string) ([]domain.StoredWorkLog, error)
	Find(ctx context.Context, f WorkLogFilter) ([]domain.StoredWorkLog, error)
}

type ReplayResultRepo interface {
	Create(ctx context.Context, r *domain.ReplayResult) error
	ListByRun(ctx context.Context, runID string) ([]domain.ReplayResult, error)
}
