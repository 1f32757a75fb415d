package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
)

// Ensure LoggingFeedParser implements newsextract.FeedParser.
var _ newsextract.FeedParser = (*LoggingFeedParser)(nil)

// LoggingFeedParser wraps a FeedParser with logging.
type LoggingFeedParser struct {
	next   newsextract.FeedParser
	logger *slog.Logger
}

// NewLoggingFeedParser creates a new LoggingFeedParser.
func NewLoggingFeedParser(next newsextract.FeedParser, logger *slog.Logger) *LoggingFeedParser {
	return &LoggingFeedParser{next: next, logger: logger}
}

// ParseFeed delegates to the wrapped parser and logs the entry count.
func (p *LoggingFeedParser) ParseFeed(ctx context.Context, body, feedURL string) (feed *newsextract.Feed, err error) {
	defer func(begin time.Time) {
		var count int
		if feed != nil {
			count = len(feed.Entries)
		}
		p.logger.Info("feed parse",
			"url", feedURL,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseFeed(ctx, body, feedURL)
}
