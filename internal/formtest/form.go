// Package formtest simulates the legacy data-entry form from an HTML
// fixture so replay can be exercised without a browser.
package formtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/PuerkitoBio/goquery"
)

// Form is a replay.Session over a static HTML document. Elements addressed
// by XPath in the form spec carry a matching data-xpath attribute in the
// fixture. Disabled elements never become interactable.
type Form struct {
	mu       sync.Mutex
	doc      *goquery.Document
	submit   replay.Control
	confirm  replay.Control
	failures map[string]error
	blocked  map[string]bool
	pending  bool

	// URL is the address passed to Open.
	URL string
	// Values holds the current value of every written control, keyed by
	// the control's locator value.
	Values map[string]string
	// Entries is a snapshot of Values at every accepted submit.
	Entries []map[string]string
	// Clicks lists clicked controls in order.
	Clicks []string
	// Commits lists controls that received a Tab after typing.
	Commits []string
	// Closed reports whether Close was called.
	Closed bool
}

var _ replay.Session = (*Form)(nil)

// New parses html and uses spec to recognise the submit and confirm
// controls.
func New(html string, spec replay.FormSpec) (*Form, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing form fixture: %w", err)
	}
	submit, err := spec.Control(replay.CtlSubmit)
	if err != nil {
		return nil, err
	}
	confirm, err := spec.Control(replay.CtlConfirm)
	if err != nil {
		return nil, err
	}
	return &Form{
		doc:      doc,
		submit:   submit,
		confirm:  confirm,
		failures: make(map[string]error),
		blocked:  make(map[string]bool),
		Values:   make(map[string]string),
	}, nil
}

// NewLegacy returns a Form over LegacyHTML addressed by the default spec.
func NewLegacy() *Form {
	f, err := New(LegacyHTML, replay.DefaultFormSpec())
	if err != nil {
		panic(err)
	}
	return f
}

// Fail makes every later interaction with the control return err.
func (f *Form) Fail(locatorValue string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[locatorValue] = err
}

// FailOnce makes only the next interaction with the control return err.
func (f *Form) FailOnce(locatorValue string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[locatorValue] = &onceError{err: err}
}

// Block makes the control never become interactable.
func (f *Form) Block(locatorValue string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[locatorValue] = true
}

type onceError struct{ err error }

func (e *onceError) Error() string { return e.err.Error() }

func (f *Form) Open(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.URL = url
	return ctx.Err()
}

func (f *Form) Fill(ctx context.Context, c replay.Control, value string) error {
	sel, err := f.interactable(ctx, c)
	if err != nil {
		return err
	}
	if goquery.NodeName(sel) == "select" {
		return fmt.Errorf("control %s is a select", c)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Values[c.Value] = value
	if c.Commit {
		f.Commits = append(f.Commits, c.Value)
	}
	return nil
}

func (f *Form) Options(ctx context.Context, c replay.Control) ([]string, error) {
	sel, err := f.interactable(ctx, c)
	if err != nil {
		return nil, err
	}
	if goquery.NodeName(sel) != "select" {
		return nil, fmt.Errorf("control %s is not a select", c)
	}
	return sel.Find("option").Map(func(_ int, o *goquery.Selection) string {
		return strings.TrimSpace(o.Text())
	}), nil
}

func (f *Form) Select(ctx context.Context, c replay.Control, index int) error {
	options, err := f.Options(ctx, c)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(options) {
		return fmt.Errorf("option %d out of range for %s", index, c)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Values[c.Value] = options[index]
	return nil
}

func (f *Form) Click(ctx context.Context, c replay.Control) error {
	if _, err := f.interactable(ctx, c); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Clicks = append(f.Clicks, c.Value)
	switch c {
	case f.submit:
		snapshot := make(map[string]string, len(f.Values))
		for k, v := range f.Values {
			snapshot[k] = v
		}
		f.Entries = append(f.Entries, snapshot)
		f.pending = true
	case f.confirm:
		if !f.pending {
			return fmt.Errorf("%w: nothing to confirm", replay.ErrControlNotFound)
		}
		f.pending = false
	}
	return nil
}

func (f *Form) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// interactable locates c, honouring injected failures and blocked or
// disabled controls.
func (f *Form) interactable(ctx context.Context, c replay.Control) (*goquery.Selection, error) {
	f.mu.Lock()
	if err, ok := f.failures[c.Value]; ok {
		if once, isOnce := err.(*onceError); isOnce {
			delete(f.failures, c.Value)
			err = once.err
		}
		f.mu.Unlock()
		return nil, err
	}
	blocked := f.blocked[c.Value]
	sel := f.find(c)
	f.mu.Unlock()

	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", replay.ErrControlNotFound, c)
	}
	if _, disabled := sel.Attr("disabled"); disabled || blocked {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %s not interactable: %v", replay.ErrTimeout, c, ctx.Err())
	}
	return sel, nil
}

func (f *Form) find(c replay.Control) *goquery.Selection {
	if c.By == replay.ByXPath {
		return f.doc.Find(fmt.Sprintf("[data-xpath=%q]", c.Value)).First()
	}
	css, _ := c.Selector()
	return f.doc.Find(css).First()
}
