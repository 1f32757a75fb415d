// Package gofeed implements newsextract.FeedParser using the gofeed library.
package gofeed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/newsextract"
	"github.com/mmcdole/gofeed"
)

// Ensure Parser implements newsextract.FeedParser at compile time.
var _ newsextract.FeedParser = (*Parser)(nil)

// httpPrefix is the scheme prefix used to decide whether a GUID is a URL.
const httpPrefix = "http"

// Parser parses RSS and Atom feeds.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFeed parses body as an RSS or Atom feed. Relative entry links are
// resolved against feedURL.
func (p *Parser) ParseFeed(ctx context.Context, body, feedURL string) (*newsextract.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return nil, newsextract.Errorf(newsextract.EINVALID, "%s is not an RSS or Atom feed", feedURL)
		}
		return nil, newsextract.Errorf(newsextract.EINVALID, "parse feed %s: %v", feedURL, err)
	}

	base, _ := url.Parse(feedURL)
	feed := &newsextract.Feed{
		Title:   strings.TrimSpace(parsed.Title),
		Entries: make([]*newsextract.FeedEntry, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		feed.Entries = append(feed.Entries, newEntry(item, base))
	}
	return feed, nil
}

func newEntry(item *gofeed.Item, base *url.URL) *newsextract.FeedEntry {
	entry := &newsextract.FeedEntry{
		Title:     strings.TrimSpace(item.Title),
		URL:       resolve(base, extractLink(item)),
		Summary:   item.Description,
		Published: item.Published,
		Tags:      item.Categories,
	}
	if entry.Title == "" {
		entry.Title = newsextract.UnknownTitle
	}

	switch {
	case item.Content != "":
		entry.ContentHTML = item.Content
	default:
		entry.ContentHTML = item.Description
	}

	switch {
	case item.Author != nil && item.Author.Name != "":
		entry.Author = item.Author.Name
	case len(item.Authors) > 0 && item.Authors[0] != nil:
		entry.Author = item.Authors[0].Name
	}

	switch {
	case item.PublishedParsed != nil:
		entry.PublishedAt = item.PublishedParsed
	case item.UpdatedParsed != nil:
		entry.PublishedAt = item.UpdatedParsed
	}
	if entry.Published == "" {
		entry.Published = item.Updated
	}

	return entry
}

// extractLink returns the best available URL from a feed item, falling
// back to the GUID when it looks like an HTTP URL.
func extractLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if strings.HasPrefix(item.GUID, httpPrefix) {
		return item.GUID
	}
	return ""
}

func resolve(base *url.URL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" || base == nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
