package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
)

// Ensure LoggingFetcher implements newsextract.Fetcher.
var _ newsextract.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   newsextract.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next newsextract.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the response size and
// status. Redirects add the final URL; failures are logged at warn level.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *newsextract.FetchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url}
		if result != nil {
			if result.URL != "" && result.URL != url {
				attrs = append(attrs, "final_url", result.URL)
			}
			attrs = append(attrs,
				"status", result.StatusCode,
				"content_type", result.ContentType,
				"bytes", len(result.HTML),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin))
		if err != nil {
			f.logger.Warn("fetch", append(attrs, "err", err)...)
			return
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
