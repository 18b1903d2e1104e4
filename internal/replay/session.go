package replay

import "context"

// Session drives one browser-only form. Implementations wait for each
// control to become interactable until ctx expires and report expiry as
// ErrTimeout. A Session is used by a single automaton at a time.
type Session interface {
	// Open navigates to url.
	Open(ctx context.Context, url string) error

	// Fill clears the control and types value, then presses Tab when the
	// control commits on blur.
	Fill(ctx context.Context, c Control, value string) error

	// Options returns a select control's option labels in page order.
	Options(ctx context.Context, c Control) ([]string, error)

	// Select picks the option at index.
	Select(ctx context.Context, c Control, index int) error

	// Click activates a button or link.
	Click(ctx context.Context, c Control) error

	// Close releases the session.
	Close() error
}
