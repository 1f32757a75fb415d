package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is the number of pages a browser renders before it
// is restarted.
const DefaultRecycleAfter = 75

// Browser leases pages from a headless Chrome instance and restarts the
// instance after a fixed number of pages to bound its memory.
//
// Browser is safe for concurrent use.
type Browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered atomic.Int64
	closed   atomic.Bool

	recycleAfter int64
	userAgent    string
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithPageBudget sets how many pages are rendered before the browser is
// restarted.
func WithPageBudget(n int64) BrowserOption {
	return func(b *Browser) {
		b.recycleAfter = n
	}
}

// WithBrowserUserAgent overrides the User-Agent of every leased page.
func WithBrowserUserAgent(ua string) BrowserOption {
	return func(b *Browser) {
		b.userAgent = ua
	}
}

// NewBrowser launches a headless Chrome. Close must be called when the
// Browser is no longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// OpenPage opens a blank page bound to ctx. The returned release function
// closes the page and counts it toward the restart budget; it must be
// called exactly once.
func (b *Browser) OpenPage(ctx context.Context) (*rod.Page, func(), error) {
	if b.closed.Load() {
		return nil, nil, fmt.Errorf("browser is closed")
	}

	b.mu.Lock()
	if b.rendered.Load() >= b.recycleAfter {
		b.recycle()
	}
	browser := b.browser
	b.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}

	if b.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
			_ = page.Close()
			return nil, nil, fmt.Errorf("setting user agent: %w", err)
		}
	}

	release := func() {
		_ = page.Close()
		b.rendered.Add(1)
	}
	return page.Context(ctx), release, nil
}

// Rendered returns the number of pages released since the last restart.
func (b *Browser) Rendered() int64 {
	return b.rendered.Load()
}

// LauncherPID returns the process ID of the current browser launcher, or
// zero after Close.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown()
}

func (b *Browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("mute-audio").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = l
	return nil
}

// shutdown must be called with mu held.
func (b *Browser) shutdown() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// recycle replaces the browser with a fresh one. A failed launch keeps
// the old browser running. Must be called with mu held.
func (b *Browser) recycle() {
	oldBrowser, oldLauncher := b.browser, b.launcher

	if err := b.launch(); err != nil {
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	b.rendered.Store(0)
}
