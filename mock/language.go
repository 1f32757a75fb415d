package mock

import (
	"context"

	"github.com/fwojciec/newsextract"
)

var _ newsextract.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of newsextract.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) string
}

func (d *LanguageDetector) DetectLanguage(text string) string {
	return d.DetectLanguageFn(text)
}

var _ newsextract.Translator = (*Translator)(nil)

// Translator is a mock implementation of newsextract.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text, targetLang string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return t.TranslateFn(ctx, text, targetLang)
}

var _ newsextract.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of newsextract.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, title, content string) (*newsextract.Analysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, title, content string) (*newsextract.Analysis, error) {
	return a.AnalyzeFn(ctx, title, content)
}

var _ newsextract.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of newsextract.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
