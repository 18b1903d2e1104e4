package service

import (
	"context"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
)

// ExtractRequest names a workbook and where its record file goes.
type ExtractRequest struct {
	SourcePath string
	Team       string
	OutDir     string
}

// ExtractResult holds the outcome of one extraction run.
type ExtractResult struct {
	Run     *domain.Run
	Records []domain.WorkLog
}

type ExtractService interface {
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResult, error)
}

// ReplayRequest selects a canonical record set and how to replay it. Exactly
// one of RecordFile and RunID names the set; when both are given RunID wins.
type ReplayRequest struct {
	RecordFile string
	RunID      string
	// From and To override the report range, as YYYY-MM-DD.
	From        string
	To          string
	Form        replay.FormSpec
	Credentials replay.Credentials
	Config      replay.Config
}

// ReplayPlan is a dry-run view of a replay.
type ReplayPlan struct {
	RunID   string
	Range   replay.DateRange
	Records []replay.RecordPlan
}

// ReplayResult holds the outcome of a replay. Report is set even when the
// run stopped on a session fault.
type ReplayResult struct {
	RunID  string
	Range  replay.DateRange
	Report *replay.Report
}

type ReplayService interface {
	Plan(ctx context.Context, req ReplayRequest) (*ReplayPlan, error)
	Replay(ctx context.Context, req ReplayRequest, session replay.Session) (*ReplayResult, error)
}

type LedgerService interface {
	ListRuns(ctx context.Context) ([]*domain.Run, error)
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	FindRecords(ctx context.Context, f repository.WorkLogFilter) ([]domain.StoredWorkLog, error)
	ReplayResults(ctx context.Context, runID string) ([]domain.ReplayResult, error)
}
