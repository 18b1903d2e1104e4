package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"go.uber.org/zap"
)

// DefaultControlTimeout bounds every wait for a control.
const DefaultControlTimeout = 10 * time.Second

// Credentials open the legacy system.
type Credentials struct {
	URL      string
	Username string
	Password string
}

// Config tunes the automaton's waits.
type Config struct {
	// ControlTimeout bounds each control wait. Zero means DefaultControlTimeout.
	ControlTimeout time.Duration
	// Settle is a pause after each write so the form's scripts catch up.
	Settle time.Duration
}

// Outcome is what happened to one record.
type Outcome struct {
	Index  int
	Record domain.WorkLog
	Status domain.ReplayStatus
	Err    *FieldError
}

// Report summarises a run. Outcomes holds one entry per input record, in
// input order, including records skipped after a halt or a session fault.
type Report struct {
	Total         int
	Replayed      int
	Failed        int
	Skipped       int
	Outcomes      []Outcome
	FinalState    State
	LastCompleted int
	Halted        bool
}

// Automaton replays canonical records into the legacy form, one record at
// a time, through a single Session it owns.
type Automaton struct {
	session Session
	form    FormSpec
	creds   Credentials
	cfg     Config
	logger  *zap.Logger
	m       machine
}

// NewAutomaton creates an Automaton. The session is closed when Run returns.
func NewAutomaton(session Session, form FormSpec, creds Credentials, cfg Config, logger *zap.Logger) *Automaton {
	if cfg.ControlTimeout <= 0 {
		cfg.ControlTimeout = DefaultControlTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Automaton{
		session: session,
		form:    form,
		creds:   creds,
		cfg:     cfg,
		logger:  logger,
	}
}

// State returns the automaton's current state.
func (a *Automaton) State() State {
	return a.m.state
}

// Run logs in, opens the report section for rng and replays records in
// order. A field fault abandons only its record. A session fault stops the
// run and is returned as *SessionError alongside the partial report.
// Cancelling ctx halts the run between records; the record in flight is
// finished first.
func (a *Automaton) Run(ctx context.Context, records []domain.WorkLog, rng DateRange) (*Report, error) {
	report := &Report{Total: len(records), LastCompleted: -1, Outcomes: make([]Outcome, 0, len(records))}
	defer func() {
		if err := a.session.Close(); err != nil {
			a.logger.Warn("closing replay session", zap.Error(err))
		}
	}()
	if err := a.m.to(LoggingIn); err != nil {
		report.FinalState = a.m.state
		return report, err
	}

	work := context.WithoutCancel(ctx)

	if err := a.prelude(work, rng); err != nil {
		return a.fail(report, records, err)
	}

	for i, rec := range records {
		if ctx.Err() != nil {
			report.Halted = true
			a.logger.Info("replay halted", zap.Int("remaining", len(records)-i))
			break
		}

		outcome, err := a.replayRecord(work, i, rec)
		report.Outcomes = append(report.Outcomes, outcome)
		if err != nil {
			report.Failed++
			return a.fail(report, records, err)
		}
		switch outcome.Status {
		case domain.ReplayReplayed:
			report.Replayed++
			report.LastCompleted = i
		case domain.ReplayFailed:
			report.Failed++
		}
	}

	a.skipRemaining(report, records)
	if err := a.m.to(Done); err != nil {
		return a.fail(report, records, err)
	}
	report.FinalState = Done
	a.logger.Info("replay finished",
		zap.Int("total", report.Total),
		zap.Int("replayed", report.Replayed),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Bool("halted", report.Halted))
	return report, nil
}

// prelude performs the once-per-session steps: login, report section and
// date range.
func (a *Automaton) prelude(ctx context.Context, rng DateRange) error {
	err := a.within(ctx, func(ctx context.Context) error {
		return a.session.Open(ctx, a.creds.URL)
	})
	if err != nil {
		return fmt.Errorf("opening %s: %w", a.creds.URL, err)
	}

	if err := a.fill(ctx, CtlUsername, a.creds.Username); err != nil {
		return err
	}
	if err := a.fill(ctx, CtlPassword, a.creds.Password); err != nil {
		return err
	}
	if err := a.click(ctx, CtlLogin); err != nil {
		return err
	}
	if err := a.m.to(Authenticated); err != nil {
		return err
	}

	if err := a.click(ctx, CtlReports); err != nil {
		return err
	}
	if err := a.m.to(ReportSectionOpen); err != nil {
		return err
	}

	if err := a.fill(ctx, CtlRangeFrom, rng.From); err != nil {
		return err
	}
	if err := a.fill(ctx, CtlRangeTo, rng.To); err != nil {
		return err
	}
	if err := a.click(ctx, CtlRangeSubmit); err != nil {
		return err
	}
	if err := a.m.to(DateRangeSet); err != nil {
		return err
	}
	a.logger.Info("replay session ready", zap.String("from", rng.From), zap.String("to", rng.To))
	return a.m.to(RecordLoopReady)
}

// replayRecord fills, submits and confirms one record. A non-nil error is a
// session fault; field faults come back in the outcome.
func (a *Automaton) replayRecord(ctx context.Context, i int, rec domain.WorkLog) (Outcome, error) {
	outcome := Outcome{Index: i, Record: rec, Status: domain.ReplayFailed}
	if err := a.m.to(FillingRecord); err != nil {
		return outcome, err
	}

	steps, err := RecordSteps(a.form, rec)
	if err != nil {
		return outcome, err
	}

	completed := make([]string, 0, len(steps))
	for _, st := range steps {
		if err := a.apply(ctx, st); err != nil {
			outcome.Err = &FieldError{Field: st.Field, Control: st.Control, Completed: completed, Err: err}
			a.logger.Warn("record abandoned",
				zap.Int("seq", i+1),
				zap.Int("op", rec.OP),
				zap.String("field", st.Field),
				zap.Strings("completed", completed),
				zap.String("reason", err.Error()))
			return outcome, a.m.to(RecordLoopReady)
		}
		completed = append(completed, st.Field)
	}

	if err := a.m.to(SubmittingRecord); err != nil {
		return outcome, err
	}
	if err := a.click(ctx, CtlSubmit); err != nil {
		outcome.Err = a.fieldError(CtlSubmit, completed, err)
		return outcome, err
	}

	if err := a.m.to(ConfirmingRecord); err != nil {
		return outcome, err
	}
	if err := a.click(ctx, CtlConfirm); err != nil {
		outcome.Err = a.fieldError(CtlConfirm, completed, err)
		return outcome, err
	}

	outcome.Status = domain.ReplayReplayed
	a.logger.Info("record replayed", zap.Int("seq", i+1), zap.Int("op", rec.OP), zap.String("date", rec.Date))
	return outcome, a.m.to(RecordLoopReady)
}

func (a *Automaton) fieldError(name string, completed []string, err error) *FieldError {
	c, _ := a.form.Control(name)
	return &FieldError{Field: name, Control: c, Completed: completed, Err: err}
}

func (a *Automaton) apply(ctx context.Context, st Step) error {
	var err error
	switch st.Action {
	case ActionSelect:
		err = a.within(ctx, func(ctx context.Context) error {
			options, err := a.session.Options(ctx, st.Control)
			if err != nil {
				return err
			}
			idx, err := Match(st.Value, options)
			if err != nil {
				return err
			}
			return a.session.Select(ctx, st.Control, idx)
		})
	default:
		err = a.within(ctx, func(ctx context.Context) error {
			return a.session.Fill(ctx, st.Control, st.Value)
		})
	}
	if err != nil {
		return err
	}
	a.settle()
	return nil
}

func (a *Automaton) fill(ctx context.Context, name, value string) error {
	c, err := a.form.Control(name)
	if err != nil {
		return err
	}
	err = a.within(ctx, func(ctx context.Context) error {
		return a.session.Fill(ctx, c, value)
	})
	if err != nil {
		return fmt.Errorf("%s control %s: %w", name, c, err)
	}
	a.settle()
	return nil
}

func (a *Automaton) click(ctx context.Context, name string) error {
	c, err := a.form.Control(name)
	if err != nil {
		return err
	}
	err = a.within(ctx, func(ctx context.Context) error {
		return a.session.Click(ctx, c)
	})
	if err != nil {
		return fmt.Errorf("%s control %s: %w", name, c, err)
	}
	return nil
}

// within runs fn under the per-control timeout and reports expiry as
// ErrTimeout.
func (a *Automaton) within(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ControlTimeout)
	defer cancel()
	err := fn(ctx)
	if err != nil && !errors.Is(err, ErrTimeout) && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

func (a *Automaton) settle() {
	if a.cfg.Settle > 0 {
		time.Sleep(a.cfg.Settle)
	}
}

func (a *Automaton) fail(report *Report, records []domain.WorkLog, cause error) (*Report, error) {
	state := a.m.state
	if !state.Terminal() {
		_ = a.m.to(Failed)
	}
	a.skipRemaining(report, records)
	report.FinalState = Failed

	serr := &SessionError{State: state, Err: cause}
	if report.LastCompleted >= 0 {
		last := records[report.LastCompleted]
		serr.LastCompleted = &last
	}
	a.logger.Error("replay session fault",
		zap.String("state", state.String()),
		zap.Int("replayed", report.Replayed),
		zap.Error(cause))
	return report, serr
}

func (a *Automaton) skipRemaining(report *Report, records []domain.WorkLog) {
	for i := len(report.Outcomes); i < len(records); i++ {
		report.Outcomes = append(report.Outcomes, Outcome{Index: i, Record: records[i], Status: domain.ReplaySkipped})
		report.Skipped++
	}
}
