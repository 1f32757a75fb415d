package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/mock"
	neslog "github.com/fwojciec/newsextract/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFeedParser_ParseFeed(t *testing.T) {
	t.Parallel()

	t.Run("logs entry count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FeedParser{
			ParseFeedFn: func(_ context.Context, _, _ string) (*newsextract.Feed, error) {
				return &newsextract.Feed{Entries: []*newsextract.FeedEntry{{Title: "a"}, {Title: "b"}}}, nil
			},
		}

		feed, err := neslog.NewLoggingFeedParser(inner, logger).ParseFeed(context.Background(), "<rss/>", "https://example.com/rss")

		require.NoError(t, err)
		assert.Len(t, feed.Entries, 2)
		output := buf.String()
		assert.Contains(t, output, "feed parse")
		assert.Contains(t, output, "url=https://example.com/rss")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FeedParser{
			ParseFeedFn: func(_ context.Context, _, _ string) (*newsextract.Feed, error) {
				return nil, errors.New("bad xml")
			},
		}

		_, err := neslog.NewLoggingFeedParser(inner, logger).ParseFeed(context.Background(), "", "https://example.com/rss")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "count=0")
		assert.Contains(t, buf.String(), "err=\"bad xml\"")
	})
}
