package slog

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsextract"
)

// Ensure LoggingStrategy implements newsextract.ContentStrategy.
var _ newsextract.ContentStrategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a ContentStrategy with debug logging.
type LoggingStrategy struct {
	next   newsextract.ContentStrategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next newsextract.ContentStrategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name returns the name of the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Extract delegates to the wrapped strategy and logs the outcome.
func (s *LoggingStrategy) Extract(page *newsextract.Page) (text string, err error) {
	defer func(begin time.Time) {
		var url string
		if page != nil {
			url = page.URL
		}
		s.logger.Debug("extract",
			"strategy", s.next.Name(),
			"url", url,
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(page)
}
