package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

var (
	// ErrNoMatch indicates that no option label contains the target.
	ErrNoMatch = errors.New("no option matches")

	// ErrEmptyTarget indicates a blank match target, which would match
	// every option.
	ErrEmptyTarget = errors.New("empty match target")

	// ErrTimeout indicates a control did not become interactable within
	// the per-control wait.
	ErrTimeout = errors.New("control wait timed out")

	// ErrControlNotFound indicates the locator matched nothing on the page.
	ErrControlNotFound = errors.New("control not found")

	// ErrInvalidTransition indicates a state change the automaton does
	// not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// FieldError reports a record abandoned because one control could not be
// filled. Completed lists the fields written before the failure.
type FieldError struct {
	Field     string
	Control   Control
	Completed []string
	Err       error
}

func (e *FieldError) Error() string {
	done := "none"
	if len(e.Completed) > 0 {
		done = strings.Join(e.Completed, ", ")
	}
	return fmt.Sprintf("field %s (%s): %v; completed: %s", e.Field, e.Control, e.Err, done)
}

func (e *FieldError) Unwrap() error { return e.Err }

// SessionError is a run-level fault: the session can no longer be trusted
// and the operator must verify the form state before resuming.
// LastCompleted is nil when no record was replayed.
type SessionError struct {
	State         State
	LastCompleted *domain.WorkLog
	Err           error
}

func (e *SessionError) Error() string {
	last := "no record completed"
	if e.LastCompleted != nil {
		last = "last completed " + e.LastCompleted.Label()
	}
	return fmt.Sprintf("replay session failed in %s (%s): %v", e.State, last, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
