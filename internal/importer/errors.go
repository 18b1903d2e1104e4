package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOPs indicates that no numeric OP survived splitting the reference.
	ErrNoOPs = errors.New("no usable OP in reference")

	// ErrBadDate indicates the date text could not be read as a calendar date.
	ErrBadDate = errors.New("unparsable date")

	// ErrBadDuration indicates a missing or unreadable shared duration.
	ErrBadDuration = errors.New("unparsable duration")

	// ErrUndistributable indicates a duration too small to give every OP
	// at least half an hour.
	ErrUndistributable = errors.New("duration cannot be distributed in half-hour shares")
)

// Rejection explains why a provisional record could not become canonical.
type Rejection struct {
	Field  string
	Value  string
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s %q rejected: %s", r.Field, r.Value, r.Reason)
}

func reject(field, value, reason string) *Rejection {
	return &Rejection{Field: field, Value: value, Reason: reason}
}
