package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsextract"
)

// Ensure StructuralExtractor implements newsextract.ContentStrategy at compile time.
var _ newsextract.ContentStrategy = (*StructuralExtractor)(nil)

// StructuralExtractor recovers article text with the selector catalog.
// It is the strategy of last resort in a content cascade and never fails.
type StructuralExtractor struct{}

// NewStructuralExtractor creates a new StructuralExtractor.
func NewStructuralExtractor() *StructuralExtractor {
	return &StructuralExtractor{}
}

// Name returns the strategy name.
func (e *StructuralExtractor) Name() string {
	return newsextract.StrategyStructural
}

// Extract returns the text of the first selector group that matches the
// page, or "" when no group matches.
func (e *StructuralExtractor) Extract(page *newsextract.Page) (string, error) {
	if page == nil || page.Root == nil {
		return "", nil
	}
	doc := goquery.NewDocumentFromNode(page.Root)
	return ExtractContent(doc, page.Host()), nil
}

// ExtractContent walks the selector groups for domain in order. The first
// group matching at least one element decides the result: its elements are
// filtered, headings are prefixed with a "[H2] " style marker, and the
// surviving texts are joined with blank lines. Later groups are never tried
// once a group has matched, even if every matched element was filtered out.
func ExtractContent(doc *goquery.Document, domain string) string {
	for _, group := range Selectors(domain) {
		elements := doc.FindMatcher(group.Matcher())
		if elements.Length() == 0 {
			continue
		}
		return joinElements(group, elements)
	}
	return ""
}

func joinElements(group SelectorGroup, elements *goquery.Selection) string {
	parts := make([]string, 0, elements.Length())
	elements.Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if group.inBoilerplate(node) {
			return
		}
		text := normalizedText(sel)
		if !acceptElementText(node.Data, text) {
			return
		}
		if IsLikelyHeader(node.Data) {
			text = "[" + strings.ToUpper(node.Data) + "] " + text
		}
		parts = append(parts, text)
	})
	return strings.Join(parts, "\n\n")
}

// normalizedText returns the text of sel with runs of whitespace collapsed
// to single spaces.
func normalizedText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
