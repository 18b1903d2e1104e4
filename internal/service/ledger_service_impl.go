package service

import (
	"context"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/importer"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
)

type ledgerService struct {
	runs    repository.RunRepo
	logs    repository.WorkLogRepo
	results repository.ReplayResultRepo
}

func NewLedgerService(runs repository.RunRepo, logs repository.WorkLogRepo, results repository.ReplayResultRepo) LedgerService {
	return &ledgerService{runs: runs, logs: logs, results: results}
}

func (s *ledgerService) ListRuns(ctx context.Context) ([]*domain.Run, error) {
	return s.runs.List(ctx)
}

func (s *ledgerService) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	return s.runs.GetByID(ctx, id)
}

// FindRecords accepts the date as stored (YY-MM-DD) or in any form with a
// four-digit year that the normalizer reads.
func (s *ledgerService) FindRecords(ctx context.Context, f repository.WorkLogFilter) ([]domain.StoredWorkLog, error) {
	if f.Date != "" && !isCanonicalDate(f.Date) {
		date, err := importer.NormalizeDate(f.Date)
		if err != nil {
			return nil, err
		}
		f.Date = date
	}
	return s.logs.Find(ctx, f)
}

func (s *ledgerService) ReplayResults(ctx context.Context, runID string) ([]domain.ReplayResult, error) {
	if _, err := s.runs.GetByID(ctx, runID); err != nil {
		return nil, err
	}
	return s.results.ListByRun(ctx, runID)
}

func isCanonicalDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}
