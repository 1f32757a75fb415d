package newsextract

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinContentLength is the number of characters a whole-page extraction
	// result must exceed after trimming to be accepted.
	MinContentLength = 100

	// MinElementLength is the number of characters a single element's text
	// must exceed to survive structural extraction.
	MinElementLength = 20

	// UnknownTitle is returned when no title candidate is long enough.
	UnknownTitle = "Unknown Title"
)

// Strategy names.
const (
	StrategyTrafilatura = "trafilatura"
	StrategyReadability = "readability"
	StrategyDistiller   = "distiller"
	StrategyStructural  = "structural"
)

// ExtractionMode selects which strategies a content cascade runs.
type ExtractionMode string

// Extraction modes.
const (
	// ModeAuto tries every external strategy in preference order, then
	// structural extraction.
	ModeAuto ExtractionMode = "auto"

	// ModeStructural runs structural extraction only.
	ModeStructural ExtractionMode = "structural"

	// ModeCustom is an alias of ModeStructural.
	ModeCustom ExtractionMode = "custom"

	ModeTrafilatura ExtractionMode = StrategyTrafilatura
	ModeReadability ExtractionMode = StrategyReadability
	ModeDistiller   ExtractionMode = StrategyDistiller
)

// ContentStrategy is one way of recovering article text from a page.
type ContentStrategy interface {
	// Name identifies the strategy in logs and cascade plans.
	Name() string

	// Extract returns the article text found on the page. A strategy
	// that cannot run in this process returns an error with code
	// ENOTAVAILABLE. Returning "" with a nil error means nothing usable
	// was found.
	Extract(page *Page) (string, error)
}

// ContentExtractor recovers the main article text of a page.
type ContentExtractor interface {
	// ExtractContent returns the cleaned article text, or "" when no
	// strategy produced enough content. Callers must treat "" as an
	// extraction failure.
	ExtractContent(page *Page) string
}

// MetadataExtractor builds the metadata record of a page.
type MetadataExtractor interface {
	ExtractMetadata(page *Page) *Metadata
}

// ArticleParser turns raw HTML into article data.
type ArticleParser interface {
	// ParseArticleData never fails: missing pieces are reported through
	// the UnknownTitle sentinel, empty content and zero-valued metadata.
	ParseArticleData(html, url string) *ArticleData
}

// ArticleData is the result of parsing a single article page.
type ArticleData struct {
	Title    string
	Content  string
	Metadata *Metadata
}

// HasSufficientContent reports whether text is long enough to be accepted
// as a whole-page extraction result.
func HasSufficientContent(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) > MinContentLength
}

// Variant is one internal algorithm of a content strategy.
type Variant struct {
	Name    string
	Extract func(page *Page) (string, error)
}

// ExtractVariants runs variants in order and returns the first result with
// sufficient content. If every variant failed with an error, the errors are
// joined and returned. If at least one variant ran cleanly but none found
// enough content, it returns "" and a nil error.
func ExtractVariants(page *Page, variants ...Variant) (string, error) {
	var errs []error
	for _, v := range variants {
		text, err := runVariant(v, page)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.Name, err))
			continue
		}
		if HasSufficientContent(text) {
			return text, nil
		}
	}
	if len(errs) > 0 && len(errs) == len(variants) {
		return "", errors.Join(errs...)
	}
	return "", nil
}

// runVariant calls v, turning a panic into an EINTERNAL error so the
// remaining variants still run.
func runVariant(v Variant, page *Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", Errorf(EINTERNAL, "panic: %v", r)
		}
	}()
	return v.Extract(page)
}
