package newsextract

import "context"

// FetchResult is a successfully retrieved page.
type FetchResult struct {
	// URL is the final URL after redirects.
	URL string

	// HTML is the response body decoded as text.
	HTML string

	// ContentType is the response Content-Type header, if known.
	ContentType string

	StatusCode int
}

// Fetcher retrieves pages from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page at url. Failures are reported with code
	// EFETCH when the server answered with an error status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
