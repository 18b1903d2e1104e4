package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWorkLog indicates a record that breaks a canonical invariant.
var ErrInvalidWorkLog = errors.New("invalid work log")

// DateLayout is the canonical work-log date form, YY-MM-DD.
const DateLayout = "06-01-02"

// WorkLog is one canonical, individually addressable work-log entry. Values
// are built by the validator and never mutated afterwards; pass them by value.
type WorkLog struct {
	Date          string `json:"fecha"`
	OP            int    `json:"OP"`
	Operator      string `json:"operario"`
	Activity      string `json:"actividad"`
	OrdinaryHours Hours  `json:"tiempo_ordinario"`
	OvertimeHours Hours  `json:"tiempo_extra"`
	Team          string `json:"equipo"`
}

// Day parses the canonical date.
func (w WorkLog) Day() (time.Time, error) {
	t, err := time.Parse(DateLayout, w.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing work log date %q: %w", w.Date, err)
	}
	return t, nil
}

// Check verifies the canonical invariants: a positive OP, a YY-MM-DD date,
// non-empty text fields, ordinary hours of at least 0.5 in half-hour steps
// and non-negative overtime.
func (w WorkLog) Check() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidWorkLog, fmt.Sprintf(format, args...))
	}
	switch {
	case w.OP <= 0:
		return invalid("OP %d is not positive", w.OP)
	case strings.TrimSpace(w.Operator) == "":
		return invalid("OP %d: empty operario", w.OP)
	case strings.TrimSpace(w.Activity) == "":
		return invalid("OP %d: empty actividad", w.OP)
	case strings.TrimSpace(w.Team) == "":
		return invalid("OP %d: empty equipo", w.OP)
	case w.OrdinaryHours < HalfHour || !w.OrdinaryHours.IsHalfMultiple():
		return invalid("OP %d: tiempo_ordinario %s is not a half-hour multiple of at least 0.5", w.OP, w.OrdinaryHours)
	case w.OvertimeHours < 0:
		return invalid("OP %d: negative tiempo_extra %s", w.OP, w.OvertimeHours)
	}
	if _, err := time.Parse(DateLayout, w.Date); err != nil {
		return invalid("OP %d: fecha %q is not YY-MM-DD", w.OP, w.Date)
	}
	return nil
}

// HasOvertime reports whether the record carries any overtime.
func (w WorkLog) HasOvertime() bool {
	return w.OvertimeHours > 0
}

// Label is a short human identifier used in logs and reports.
func (w WorkLog) Label() string {
	return fmt.Sprintf("OP %d %s %s (%sh)", w.OP, w.Date, w.Operator, w.OrdinaryHours)
}
