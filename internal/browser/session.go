// Package browser drives the legacy web form through a real Chrome
// instance.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const defaultNavigationTimeout = 30 * time.Second

var errNotOpen = errors.New("browser session not open")

// Config selects the Chrome instance.
type Config struct {
	// ControlURL attaches to an already running Chrome ("9222",
	// "http://host:9222" or its ws:// debugger URL). Empty launches one.
	ControlURL string
	// Bin is the Chrome binary to launch. Empty lets rod find or fetch one.
	Bin      string
	Headless bool
	// NavigationTimeout bounds the initial page load.
	NavigationTimeout time.Duration
}

// Session is a replay.Session over a single Chrome tab. A Chrome it launched
// is shut down on Close; an attached Chrome only loses the tab.
type Session struct {
	cfg     Config
	logger  *zap.Logger
	launch  *launcher.Launcher
	// detach drops the connection to an attached Chrome.
	detach  func() error
	browser *rod.Browser
	page    *rod.Page
}

var _ replay.Session = (*Session)(nil)

// New creates a Session. Chrome is not started until Open.
func New(cfg Config, logger *zap.Logger) *Session {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = defaultNavigationTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{cfg: cfg, logger: logger}
}

// Open starts or attaches to Chrome and loads url.
func (s *Session) Open(ctx context.Context, url string) error {
	b, err := s.connect(ctx)
	if err != nil {
		return err
	}
	s.browser = b

	page, err := b.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	s.page = page

	if err := page.Context(ctx).Timeout(s.cfg.NavigationTimeout).WaitLoad(); err != nil {
		return mapErr(fmt.Errorf("load %s: %w", url, err))
	}
	s.logger.Debug("browser page loaded", zap.String("url", url), zap.Bool("headless", s.cfg.Headless))
	return nil
}

func (s *Session) connect(ctx context.Context) (*rod.Browser, error) {
	if s.cfg.ControlURL != "" {
		u, err := launcher.ResolveURL(s.cfg.ControlURL)
		if err != nil {
			return nil, fmt.Errorf("resolve chrome at %s: %w", s.cfg.ControlURL, err)
		}
		conn := &cdp.WebSocket{}
		if err := conn.Connect(ctx, u, nil); err != nil {
			return nil, fmt.Errorf("attach to chrome: %w", err)
		}
		s.detach = conn.Close
		b := rod.New().Client(cdp.New().Start(conn))
		if err := b.Connect(); err != nil {
			return nil, fmt.Errorf("attach to chrome: %w", err)
		}
		s.logger.Debug("attached to running chrome", zap.String("url", u))
		return b, nil
	}

	l := launcher.New().Context(ctx).Headless(s.cfg.Headless)
	if s.cfg.Bin != "" {
		l = l.Bin(s.cfg.Bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	s.launch = l

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	return b, nil
}

// Fill replaces the control's text and, for committing controls, tabs out
// so the page's change handlers run.
func (s *Session) Fill(ctx context.Context, c replay.Control, value string) error {
	el, err := s.element(ctx, c)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return mapErr(fmt.Errorf("select text of %s: %w", c, err))
	}
	if err := el.Input(value); err != nil {
		return mapErr(fmt.Errorf("type into %s: %w", c, err))
	}
	if c.Commit {
		if err := el.Type(input.Tab); err != nil {
			return mapErr(fmt.Errorf("commit %s: %w", c, err))
		}
	}
	return nil
}

// Options returns the visible labels of a select control.
func (s *Session) Options(ctx context.Context, c replay.Control) ([]string, error) {
	el, err := s.element(ctx, c)
	if err != nil {
		return nil, err
	}
	opts, err := el.Elements("option")
	if err != nil {
		return nil, mapErr(fmt.Errorf("options of %s: %w", c, err))
	}
	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		text, err := o.Text()
		if err != nil {
			return nil, mapErr(fmt.Errorf("option label of %s: %w", c, err))
		}
		labels = append(labels, text)
	}
	return labels, nil
}

const selectIndexJS = `(i) => {
	this.selectedIndex = i;
	this.dispatchEvent(new Event('change', { bubbles: true }));
}`

// Select picks an option by position and fires the change event.
func (s *Session) Select(ctx context.Context, c replay.Control, index int) error {
	el, err := s.element(ctx, c)
	if err != nil {
		return err
	}
	if _, err := el.Eval(selectIndexJS, index); err != nil {
		return mapErr(fmt.Errorf("select option %d of %s: %w", index, c, err))
	}
	return nil
}

func (s *Session) Click(ctx context.Context, c replay.Control) error {
	el, err := s.element(ctx, c)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return mapErr(fmt.Errorf("click %s: %w", c, err))
	}
	return nil
}

// Close releases what Open acquired. A launched Chrome is closed, killed
// and its profile removed. An attached Chrome keeps running: only the tab
// this session opened is closed before disconnecting.
func (s *Session) Close() error {
	var err error
	if s.detach != nil {
		if s.page != nil {
			err = s.page.Close()
		}
		if derr := s.detach(); err == nil {
			err = derr
		}
		s.detach = nil
	} else if s.browser != nil {
		err = s.browser.Close()
	}
	s.browser = nil
	s.page = nil
	if s.launch != nil {
		s.launch.Kill()
		s.launch.Cleanup()
		s.launch = nil
	}
	return err
}

// element waits until c is present and interactable or ctx expires.
func (s *Session) element(ctx context.Context, c replay.Control) (*rod.Element, error) {
	if s.page == nil {
		return nil, errNotOpen
	}
	page := s.page.Context(ctx)

	var (
		el  *rod.Element
		err error
	)
	if c.By == replay.ByXPath {
		el, err = page.ElementX(c.Value)
	} else {
		css, ok := c.Selector()
		if !ok {
			return nil, fmt.Errorf("control %s has no CSS form", c)
		}
		el, err = page.Element(css)
	}
	if err != nil {
		return nil, mapErr(fmt.Errorf("locate %s: %w", c, err))
	}
	if _, err := el.WaitInteractable(); err != nil {
		return nil, mapErr(fmt.Errorf("wait for %s: %w", c, err))
	}
	return el, nil
}

// mapErr folds rod's failure modes into the replay sentinels.
func mapErr(err error) error {
	var notFound *rod.ElementNotFoundError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, replay.ErrTimeout), errors.Is(err, replay.ErrControlNotFound):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", replay.ErrTimeout, err)
	case errors.As(err, &notFound):
		return fmt.Errorf("%w: %v", replay.ErrControlNotFound, err)
	}
	return err
}
