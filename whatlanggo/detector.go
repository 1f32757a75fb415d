// Package whatlanggo implements newsextract.LanguageDetector using
// trigram-based detection from the whatlanggo library.
package whatlanggo

import (
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/newsextract"
)

// Ensure Detector implements newsextract.LanguageDetector at compile time.
var _ newsextract.LanguageDetector = (*Detector)(nil)

// DefaultSampleSize is the number of characters examined per text.
const DefaultSampleSize = 500

// Detector detects the language of text samples.
type Detector struct {
	sampleSize int
}

// Option configures a Detector.
type Option func(*Detector)

// WithSampleSize sets how many leading characters are examined.
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// NewDetector creates a new Detector.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{sampleSize: DefaultSampleSize}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectLanguage returns the ISO 639-1 code of the language of the first
// characters of text. It returns newsextract.LanguageUnknown for empty
// text, unreliable guesses and languages without a two-letter code.
func (d *Detector) DetectLanguage(text string) string {
	sample := strings.TrimSpace(text)
	if runes := []rune(sample); len(runes) > d.sampleSize {
		sample = string(runes[:d.sampleSize])
	}
	if sample == "" {
		return newsextract.LanguageUnknown
	}

	info := whatlanggo.Detect(sample)
	if !info.IsReliable() {
		return newsextract.LanguageUnknown
	}
	code := info.Lang.Iso6391()
	if code == "" {
		return newsextract.LanguageUnknown
	}
	return code
}
