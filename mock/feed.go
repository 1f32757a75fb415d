package mock

import (
	"context"

	"github.com/fwojciec/newsextract"
)

var _ newsextract.FeedParser = (*FeedParser)(nil)

// FeedParser is a mock implementation of newsextract.FeedParser.
type FeedParser struct {
	ParseFeedFn func(ctx context.Context, body, feedURL string) (*newsextract.Feed, error)
}

func (p *FeedParser) ParseFeed(ctx context.Context, body, feedURL string) (*newsextract.Feed, error) {
	return p.ParseFeedFn(ctx, body, feedURL)
}

var _ newsextract.Converter = (*Converter)(nil)

// Converter is a mock implementation of newsextract.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
