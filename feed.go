package newsextract

import (
	"context"
	"mime"
	"regexp"
	"strings"
	"time"
)

// feedURLPatterns match URLs that conventionally serve RSS or Atom feeds.
var feedURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.xml$`),
	regexp.MustCompile(`\.rss$`),
	regexp.MustCompile(`/rss/`),
	regexp.MustCompile(`/feed/`),
	regexp.MustCompile(`/feeds/`),
	regexp.MustCompile(`rss\.xml$`),
	regexp.MustCompile(`feed\.xml$`),
	regexp.MustCompile(`atom\.xml$`),
	regexp.MustCompile(`/rss$`),
	regexp.MustCompile(`/feed$`),
}

// IsFeedURL reports whether url looks like a feed address.
// Matching is case-insensitive.
func IsFeedURL(url string) bool {
	lower := strings.ToLower(url)
	for _, re := range feedURLPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsFeedContentType reports whether a Content-Type header value
// identifies an RSS, Atom or generic XML document.
func IsFeedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/rss+xml", "application/atom+xml", "application/xml", "text/xml":
		return true
	}
	return false
}

// Feed is a parsed RSS or Atom feed.
type Feed struct {
	Title   string
	Entries []*FeedEntry
}

// FeedEntry is one item of a feed.
type FeedEntry struct {
	Title string
	URL   string

	// Summary is the entry description as published, possibly HTML.
	Summary string

	// ContentHTML is the richest body the feed carries: the full content
	// when present, else the description, else the summary.
	ContentHTML string

	Author string
	Tags   []string

	PublishedAt *time.Time
	// Published is the raw published date when it could not be parsed.
	Published string
}

// FeedParser decodes RSS and Atom documents.
type FeedParser interface {
	// ParseFeed parses body as a feed served from feedURL.
	// Returns EINVALID if body is not a feed.
	ParseFeed(ctx context.Context, body, feedURL string) (*Feed, error)
}

// Converter turns feed entry HTML into Markdown for entries that carry
// their full body.
type Converter interface {
	Convert(html string) (string, error)
}
