// Package distiller provides a content strategy backed by go-domdistiller.
package distiller

import (
	"strings"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/goquery"
	distiller "github.com/markusmobius/go-domdistiller"
)

// Ensure Extractor implements newsextract.ContentStrategy at compile time.
var _ newsextract.ContentStrategy = (*Extractor)(nil)

// Extractor wraps go-domdistiller to extract main content from a page.
// The first attempt distills the parsed tree with the page URL; the second
// distills a fresh parse of the raw HTML without URL hints.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name returns the strategy name.
func (e *Extractor) Name() string {
	return newsextract.StrategyDistiller
}

// Extract returns the article text of page.
func (e *Extractor) Extract(page *newsextract.Page) (string, error) {
	if page == nil || page.Root == nil {
		return "", newsextract.Errorf(newsextract.EINVALID, "empty page")
	}
	return newsextract.ExtractVariants(page,
		newsextract.Variant{Name: "document", Extract: func(p *newsextract.Page) (string, error) {
			result, err := distiller.Apply(goquery.PrunedClone(p.Root), &distiller.Options{
				OriginalURL:    p.ParsedURL(),
				SkipPagination: true,
			})
			if err != nil {
				return "", err
			}
			return goquery.BlockText(result.Node), nil
		}},
		newsextract.Variant{Name: "raw", Extract: func(p *newsextract.Page) (string, error) {
			if p.HTML == "" {
				return "", nil
			}
			result, err := distiller.ApplyForReader(strings.NewReader(p.HTML), &distiller.Options{
				SkipPagination: true,
			})
			if err != nil {
				return "", err
			}
			return goquery.BlockText(result.Node), nil
		}},
	)
}
