package testutil

import (
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/google/uuid"
)

// WorkLog options
type WorkLogOption func(*domain.WorkLog)

func WithDate(d string) WorkLogOption {
	return func(w *domain.WorkLog) {
		w.Date = d
	}
}

func WithOperator(name string) WorkLogOption {
	return func(w *domain.WorkLog) {
		w.Operator = name
	}
}

func WithActivity(a string) WorkLogOption {
	return func(w *domain.WorkLog) {
		w.Activity = a
	}
}

func WithHours(ordinary, overtime domain.Hours) WorkLogOption {
	return func(w *domain.WorkLog) {
		w.OrdinaryHours = ordinary
		w.OvertimeHours = overtime
	}
}

func WithTeam(team string) WorkLogOption {
	return func(w *domain.WorkLog) {
		w.Team = team
	}
}

// NewTestWorkLog returns a valid canonical record for op.
func NewTestWorkLog(op int, opts ...WorkLogOption) domain.WorkLog {
	w := domain.WorkLog{
		Date:          "25-04-03",
		OP:            op,
		Operator:      "Nelson Rangel",
		Activity:      "REUNION DE SEGUIMIENTO ECOPETROL",
		OrdinaryHours: domain.OneHour,
		Team:          "30",
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// Run options
type RunOption func(*domain.Run)

func WithCreatedAt(t time.Time) RunOption {
	return func(r *domain.Run) {
		r.CreatedAt = t
	}
}

func WithRunStats(s domain.RunStats) RunOption {
	return func(r *domain.Run) {
		r.Stats = s
	}
}

// NewTestRun returns a run for source with a fresh ID.
func NewTestRun(source string, opts ...RunOption) *domain.Run {
	r := &domain.Run{
		ID:         uuid.New().String(),
		SourcePath: source,
		Team:       "30",
		Stats:      domain.RunStats{Operator: "Nelson Rangel", Dates: []string{}},
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
