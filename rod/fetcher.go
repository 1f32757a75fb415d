// Package rod provides a browser-backed implementation of newsextract.Fetcher
// for news pages that render their articles with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/newsextract"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements newsextract.Fetcher at compile time.
var _ newsextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser     *Browser
	timeout     time.Duration
	browserOpts []BrowserOption
	closed      atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for loading a single page.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter sets the number of pages after which the browser is
// restarted. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.browserOpts = append(f.browserOpts, WithPageBudget(n))
	}
}

// WithUserAgent sets the User-Agent reported by rendered pages.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.browserOpts = append(f.browserOpts, WithBrowserUserAgent(ua))
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	browser, err := NewBrowser(f.browserOpts...)
	if err != nil {
		return nil, err
	}
	f.browser = browser

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*newsextract.FetchResult, error) {
	if f.closed.Load() {
		return nil, newsextract.Errorf(newsextract.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.browser.OpenPage(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &newsextract.FetchResult{
		URL:         finalURL,
		HTML:        html,
		ContentType: "text/html",
		StatusCode:  200,
	}, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.Close()
}
