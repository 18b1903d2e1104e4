package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/db"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/recordfile"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const rangeLayout = "2006-01-02"

type replayService struct {
	runs     repository.RunRepo
	logs     repository.WorkLogRepo
	uow      db.UnitOfWork
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewReplayService(
	runs repository.RunRepo,
	logs repository.WorkLogRepo,
	uow db.UnitOfWork,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) ReplayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &replayService{
		runs:     runs,
		logs:     logs,
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *replayService) Plan(ctx context.Context, req ReplayRequest) (*ReplayPlan, error) {
	records, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}
	rng, err := dateRange(req, records)
	if err != nil {
		return nil, err
	}
	plans, err := replay.Plan(formOrDefault(req.Form), records)
	if err != nil {
		return nil, err
	}
	return &ReplayPlan{RunID: req.RunID, Range: rng, Records: plans}, nil
}

func (s *replayService) Replay(ctx context.Context, req ReplayRequest, session replay.Session) (result *ReplayResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"run_id": req.RunID,
		"file":   req.RecordFile,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "replay",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	c := req.Credentials
	if c.URL == "" || c.Username == "" || c.Password == "" {
		_ = session.Close()
		return nil, ErrMissingCredentials
	}
	form := formOrDefault(req.Form)
	if err = form.Validate(); err != nil {
		_ = session.Close()
		return nil, err
	}

	records, err := s.load(ctx, req)
	if err != nil {
		_ = session.Close()
		return nil, err
	}
	rng, err := dateRange(req, records)
	if err != nil {
		_ = session.Close()
		return nil, err
	}

	automaton := replay.NewAutomaton(session, form, c, req.Config, s.logger)
	report, runErr := automaton.Run(ctx, records, rng)
	result = &ReplayResult{RunID: req.RunID, Range: rng, Report: report}
	if report != nil {
		fields["replayed"] = report.Replayed
		fields["failed"] = report.Failed
		fields["skipped"] = report.Skipped
	}

	if req.RunID != "" && report != nil {
		// Outcomes are kept even when the caller cancelled the run.
		if perr := s.persist(context.WithoutCancel(ctx), req.RunID, report); perr != nil {
			return result, errors.Join(runErr, perr)
		}
	}
	return result, runErr
}

// load reads the canonical set from the run ledger or the record file.
func (s *replayService) load(ctx context.Context, req ReplayRequest) ([]domain.WorkLog, error) {
	var records []domain.WorkLog
	switch {
	case req.RunID != "":
		if _, err := s.runs.GetByID(ctx, req.RunID); err != nil {
			return nil, err
		}
		stored, err := s.logs.ListByRun(ctx, req.RunID)
		if err != nil {
			return nil, err
		}
		records = make([]domain.WorkLog, 0, len(stored))
		for _, st := range stored {
			records = append(records, st.Log)
		}
	case req.RecordFile != "":
		var err error
		records, err = recordfile.Load(req.RecordFile)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrNoRecordSource
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func (s *replayService) persist(ctx context.Context, runID string, report *replay.Report) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		results := repository.NewSQLiteReplayResultRepo(tx)
		for _, o := range report.Outcomes {
			res := &domain.ReplayResult{
				ID:        uuid.New().String(),
				RunID:     runID,
				Seq:       o.Index + 1,
				Status:    o.Status,
				CreatedAt: now,
			}
			if o.Err != nil {
				res.Field = o.Err.Field
				res.Error = o.Err.Err.Error()
				res.Completed = o.Err.Completed
			}
			if err := results.Create(ctx, res); err != nil {
				return fmt.Errorf("recording outcome %d: %w", res.Seq, err)
			}
		}
		return nil
	})
}

// dateRange derives the report range from the records, then applies any
// explicit bound.
func dateRange(req ReplayRequest, records []domain.WorkLog) (replay.DateRange, error) {
	rng, err := replay.RangeFor(records)
	if err != nil {
		return replay.DateRange{}, err
	}
	if req.From != "" {
		if _, err := time.Parse(rangeLayout, req.From); err != nil {
			return replay.DateRange{}, fmt.Errorf("range start %q: want YYYY-MM-DD", req.From)
		}
		rng.From = req.From
	}
	if req.To != "" {
		if _, err := time.Parse(rangeLayout, req.To); err != nil {
			return replay.DateRange{}, fmt.Errorf("range end %q: want YYYY-MM-DD", req.To)
		}
		rng.To = req.To
	}
	if rng.From > rng.To {
		return replay.DateRange{}, fmt.Errorf("range start %s is after end %s", rng.From, rng.To)
	}
	return rng, nil
}

func formOrDefault(f replay.FormSpec) replay.FormSpec {
	if f.Controls == nil {
		return replay.DefaultFormSpec()
	}
	return f
}
