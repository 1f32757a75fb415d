package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*newsextract.FetchResult, error)

// DefaultRetryDelays returns the pauses between fetch attempts: 1s, then 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Retryable reports whether a failed fetch may succeed when repeated.
// Malformed URLs and missing articles fail the same way every time.
func Retryable(err error) bool {
	switch newsextract.ErrorCode(err) {
	case newsextract.EINVALID, newsextract.ENOTFOUND, newsextract.ENOTIMPLEMENTED:
		return false
	}
	return true
}

// FetchWithRetry fetches url, retrying transient failures after the
// DefaultRetryDelays pauses.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger) (*newsextract.FetchResult, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays fetches url, pausing delays[i] before retry i+1.
// It makes at most len(delays)+1 attempts and returns the last error.
// A nil logger disables the per-retry warning.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (*newsextract.FetchResult, error) {
	for attempt := 0; ; attempt++ {
		result, err := fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if attempt == len(delays) || !Retryable(err) {
			return nil, err
		}

		if logger != nil {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
