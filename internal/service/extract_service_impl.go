package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/db"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/extraction"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/importer"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/recordfile"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/sheet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type extractService struct {
	extractor extraction.Extractor
	uow       db.UnitOfWork
	logger    *zap.Logger
	observer  UseCaseObserver
	now       func() time.Time
}

// NewExtractService wires the sheet reader, the extraction port, the
// normalization engine and validator, the record file and the run ledger.
func NewExtractService(
	extractor extraction.Extractor,
	uow db.UnitOfWork,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) ExtractService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &extractService{
		extractor: extractor,
		uow:       uow,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *extractService) Extract(ctx context.Context, req ExtractRequest) (result *ExtractResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"source": req.SourcePath,
		"team":   req.Team,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "extract",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if _, err = os.Stat(req.SourcePath); err != nil {
		return nil, fmt.Errorf("source workbook: %w", err)
	}
	sheets, total, err := sheet.ReadWorkbook(req.SourcePath)
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", req.SourcePath, ErrNoSheets)
	}

	var (
		records   []domain.WorkLog
		counters  domain.RunStats
		sheetErrs []error
	)
	counters.SheetsFound = total
	for _, sh := range sheets {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		got, n, rejected, sheetErr := s.processSheet(ctx, req.Team, sh)
		if sheetErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			sheetErrs = append(sheetErrs, fmt.Errorf("sheet %q: %w", sh.Name, sheetErr))
			continue
		}
		if n == 0 {
			continue
		}
		counters.SheetsRead++
		counters.Candidates += n
		counters.Rejected += rejected
		records = append(records, got...)
	}
	counters.SheetsSkipped = counters.SheetsFound - counters.SheetsRead
	fields["sheets_read"] = counters.SheetsRead
	fields["rejected"] = counters.Rejected

	if len(records) == 0 {
		if len(sheetErrs) > 0 {
			return nil, fmt.Errorf("%w: %w", ErrNoRecords, errors.Join(sheetErrs...))
		}
		return nil, ErrNoRecords
	}

	stats := domain.ComputeStats(records)
	stats.SheetsFound = counters.SheetsFound
	stats.SheetsRead = counters.SheetsRead
	stats.SheetsSkipped = counters.SheetsSkipped
	stats.Candidates = counters.Candidates
	stats.Rejected = counters.Rejected
	fields["records"] = stats.Records

	now := s.now()
	path, err := recordfile.Save(req.OutDir, stats.Operator, now, records)
	if err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:         uuid.New().String(),
		SourcePath: req.SourcePath,
		RecordFile: path,
		Team:       req.Team,
		Stats:      stats,
		CreatedAt:  now.UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteRunRepo(tx).Create(ctx, run); err != nil {
			return err
		}
		_, err := repository.NewSQLiteWorkLogRepo(tx).CreateBatch(ctx, run.ID, records)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	fields["run_id"] = run.ID

	s.logger.Info("extraction finished",
		zap.String("run_id", run.ID),
		zap.String("file", path),
		zap.Int("records", stats.Records),
		zap.Int("rejected", stats.Rejected),
		zap.Int("sheets_skipped", stats.SheetsSkipped))
	return &ExtractResult{Run: run, Records: records}, nil
}

// processSheet extracts, normalizes and validates one sheet. It returns the
// sheet's canonical records, the number of candidates and the number of
// records rejected. Sheets are independent; a failure here skips only
// this sheet.
func (s *extractService) processSheet(ctx context.Context, team string, sh sheet.Sheet) ([]domain.WorkLog, int, int, error) {
	logger := s.logger.With(zap.String("sheet", sh.Name))

	candidates, err := s.extractor.Extract(ctx, sh)
	if err != nil {
		logger.Warn("skipping sheet", zap.String("reason", err.Error()))
		return nil, 0, 0, err
	}
	if len(candidates) == 0 {
		logger.Warn("skipping sheet", zap.String("reason", "no candidates"))
		return nil, 0, 0, nil
	}

	engine := importer.NewEngine(team, logger)
	validator := importer.NewValidator(logger)

	var (
		records  []domain.WorkLog
		rejected int
	)
	for _, c := range candidates {
		group, err := engine.Normalize(c)
		if err != nil {
			rejected++
			logger.Warn("candidate dropped", zap.String("op", c.OP.Text), zap.String("reason", err.Error()))
			continue
		}
		valid, err := validator.ValidateGroup(group)
		if err != nil {
			rejected += len(group.Records)
			logger.Warn("group rejected",
				zap.String("op", c.OP.Text),
				zap.Int("records", len(group.Records)),
				zap.String("reason", err.Error()))
			continue
		}
		records = append(records, valid...)
	}
	logger.Debug("sheet processed", zap.Int("candidates", len(candidates)), zap.Int("records", len(records)))
	return records, len(candidates), rejected, nil
}
