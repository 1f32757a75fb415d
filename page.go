package newsextract

import (
	"net/url"

	"golang.org/x/net/html"
)

// Page is a fetched HTML page parsed into a node tree.
// A Page is built once per extraction call and shared read-only by every
// content strategy and by the metadata pass. Strategies that need to
// modify the tree must work on a copy.
type Page struct {
	// URL is the final page URL, used for domain selectors and for
	// resolving relative links.
	URL string

	// HTML is the raw page source.
	HTML string

	// Root is the document node of the parsed tree. Never nil for pages
	// built by the goquery package, even when the input is empty.
	Root *html.Node
}

// Host returns the host part of the page URL, or "" if the URL cannot be parsed.
func (p *Page) Host() string {
	u, err := url.Parse(p.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// ParsedURL returns the page URL as a *url.URL, or nil if it is empty or invalid.
func (p *Page) ParsedURL() *url.URL {
	if p.URL == "" {
		return nil
	}
	u, err := url.Parse(p.URL)
	if err != nil {
		return nil
	}
	return u
}
