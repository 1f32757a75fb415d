// Package http provides an HTTP-based implementation of newsextract.Fetcher
// for news pages that don't require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/newsextract"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies requests as a desktop browser. Many news
// sites serve stripped or blocked pages to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// maxBodySize caps the number of bytes read from a response.
const maxBodySize = 10 << 20

// Ensure Fetcher implements newsextract.Fetcher at compile time.
var _ newsextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url, following redirects. The body is
// decoded to UTF-8 using the charset from the Content-Type header or the
// document itself. 404 and 410 responses fail with ENOTFOUND, other
// non-2xx responses with EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*newsextract.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newsextract.Errorf(newsextract.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, newsextract.Errorf(newsextract.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, newsextract.Errorf(newsextract.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	return &newsextract.FetchResult{
		URL:         resp.Request.URL.String(),
		HTML:        string(data),
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
