package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsextract"
)

// minTitleLength is the number of characters a title candidate must exceed.
const minTitleLength = 10

var titleSelectors = []string{
	"h1",
	"title",
	`[property="og:title"]`,
	`[name="twitter:title"]`,
	".article-title",
	".post-title",
	".entry-title",
}

// ExtractTitle returns the first title candidate longer than 10 characters,
// trying the first element of each title selector in turn. Meta elements
// contribute their content attribute. Returns newsextract.UnknownTitle when
// no candidate qualifies.
func ExtractTitle(doc *goquery.Document) string {
	title := firstValue(doc, titleSelectors, contentOrText, func(v string) bool {
		return utf8.RuneCountInString(v) > minTitleLength
	})
	if title == "" {
		return newsextract.UnknownTitle
	}
	return title
}

// firstValue tries selectors in order. For each, only the first matching
// element is considered; its value is returned if accept allows it,
// otherwise the next selector is tried.
func firstValue(doc *goquery.Document, selectors []string, value func(*goquery.Selection) string, accept func(string) bool) string {
	for _, s := range selectors {
		sel := doc.Find(s).First()
		if sel.Length() == 0 {
			continue
		}
		if v := value(sel); v != "" && accept(v) {
			return v
		}
	}
	return ""
}

// contentOrText returns the element's content attribute when set, else its
// normalized text.
func contentOrText(sel *goquery.Selection) string {
	if v := attrValue(sel, "content"); v != "" {
		return v
	}
	return normalizedText(sel)
}

// attrValue returns the trimmed value of attribute name, or "".
func attrValue(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}

func nonEmpty(string) bool { return true }
