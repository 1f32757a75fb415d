package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/newsextract"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Parse builds a Page from raw HTML. Input that is not valid UTF-8 is
// decoded using the charset declared in the document. If the charset-aware
// parse fails the plain parser is tried, and a page that cannot be parsed
// at all gets an empty document tree. The returned Page is never nil.
func Parse(rawHTML, pageURL string) *newsextract.Page {
	page := &newsextract.Page{URL: pageURL, HTML: rawHTML}
	page.Root = parseTree(rawHTML)
	return page
}

func parseTree(rawHTML string) *html.Node {
	if !utf8.ValidString(rawHTML) {
		if r, err := charset.NewReader(strings.NewReader(rawHTML), ""); err == nil {
			if root, err := html.Parse(r); err == nil {
				return root
			}
		}
	}
	if root, err := html.Parse(strings.NewReader(rawHTML)); err == nil {
		return root
	}
	return &html.Node{Type: html.DocumentNode}
}
