package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractLinks returns the outbound links found in the article body: absolute
// http(s) URLs whose host differs from the page host. Links are returned in
// document order without duplicates.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	var links orderedSet
	articleBody(doc).Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := attrValue(sel, "href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		if !strings.HasPrefix(strings.ToLower(href), "http") {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || isSameHost(base, resolved) {
			return
		}
		links.add(resolved)
	})
	return links.list()
}

// isNonHTTPLink reports whether href uses a scheme that cannot be fetched.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// resolveURL resolves href against base. A nil base leaves href as parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// isSameHost reports whether resolved points at the host of base.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	if base == nil {
		return u.Host == ""
	}
	return u.Host == base.Host
}
