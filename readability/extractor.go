// Package readability provides a content strategy backed by go-readability.
package readability

import (
	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/goquery"
	"github.com/go-shiori/go-readability"
)

// Relaxed parser settings used when the default parser finds too little.
const (
	relaxedCharThreshold = 100
	relaxedTopCandidates = 10
)

// Ensure Extractor implements newsextract.ContentStrategy at compile time.
var _ newsextract.ContentStrategy = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from a page.
type Extractor struct {
	relaxed readability.Parser
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	relaxed := readability.NewParser()
	relaxed.CharThresholds = relaxedCharThreshold
	relaxed.NTopCandidates = relaxedTopCandidates
	return &Extractor{relaxed: relaxed}
}

// Name returns the strategy name.
func (e *Extractor) Name() string {
	return newsextract.StrategyReadability
}

// Extract returns the article text of page, trying the default parser
// first and a parser with lower content thresholds second.
func (e *Extractor) Extract(page *newsextract.Page) (string, error) {
	if page == nil || page.Root == nil {
		return "", newsextract.Errorf(newsextract.EINVALID, "empty page")
	}
	return newsextract.ExtractVariants(page,
		newsextract.Variant{Name: "default", Extract: func(p *newsextract.Page) (string, error) {
			article, err := readability.FromDocument(goquery.PrunedClone(p.Root), p.ParsedURL())
			if err != nil {
				return "", err
			}
			return goquery.BlockText(article.Node), nil
		}},
		newsextract.Variant{Name: "relaxed", Extract: func(p *newsextract.Page) (string, error) {
			// Parser holds per-document state, so each call works on a copy.
			parser := e.relaxed
			article, err := parser.ParseDocument(goquery.PrunedClone(p.Root), p.ParsedURL())
			if err != nil {
				return "", err
			}
			return goquery.BlockText(article.Node), nil
		}},
	)
}
