// Package trafilatura provides a content strategy backed by go-trafilatura.
package trafilatura

import (
	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements newsextract.ContentStrategy at compile time.
var _ newsextract.ContentStrategy = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from a page.
// It first runs trafilatura with its own fallback extractors enabled and,
// if that comes up short, once more without them.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name returns the strategy name.
func (e *Extractor) Name() string {
	return newsextract.StrategyTrafilatura
}

// Extract returns the article text of page, with paragraphs separated by
// blank lines.
func (e *Extractor) Extract(page *newsextract.Page) (string, error) {
	if page == nil || page.Root == nil {
		return "", newsextract.Errorf(newsextract.EINVALID, "empty page")
	}
	return newsextract.ExtractVariants(page,
		newsextract.Variant{Name: "fallback", Extract: func(p *newsextract.Page) (string, error) {
			return extract(p, trafilatura.Options{
				EnableFallback:  true,
				ExcludeComments: true,
				ExcludeTables:   false,
			})
		}},
		newsextract.Variant{Name: "precision", Extract: func(p *newsextract.Page) (string, error) {
			return extract(p, trafilatura.Options{
				ExcludeComments: true,
			})
		}},
	)
}

func extract(page *newsextract.Page, opts trafilatura.Options) (string, error) {
	opts.OriginalURL = page.ParsedURL()

	result, err := trafilatura.ExtractDocument(goquery.PrunedClone(page.Root), opts)
	if err != nil {
		return "", err
	}
	if result == nil || result.ContentNode == nil {
		return "", nil
	}
	return goquery.BlockText(result.ContentNode), nil
}
