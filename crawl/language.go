package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/newsextract"
)

// LanguageProcessor detects the language of articles and translates them
// into a target language.
type LanguageProcessor struct {
	Detector   newsextract.LanguageDetector
	Translator newsextract.Translator

	// TargetLang is the ISO 639-1 code articles are translated into.
	// Translation is disabled when empty.
	TargetLang string

	Logger *slog.Logger
}

// Process sets the article language when it is unknown and translates
// title, summary and content when a target language is configured and
// differs from the detected one. Translation failures are logged and
// leave the article untouched.
func (p *LanguageProcessor) Process(ctx context.Context, article *newsextract.Article) {
	if p.Detector != nil && (article.Language == "" || article.Language == newsextract.LanguageUnknown) {
		article.Language = p.Detector.DetectLanguage(article.Title + " " + article.Content)
	}

	if p.Translator == nil || p.TargetLang == "" || article.Translated || article.Language == p.TargetLang {
		return
	}

	title, err := p.translate(ctx, article.Title)
	if err != nil {
		p.warn(article, err)
		return
	}
	summary, err := p.translate(ctx, article.Summary)
	if err != nil {
		p.warn(article, err)
		return
	}
	content, err := p.translate(ctx, article.Content)
	if err != nil {
		p.warn(article, err)
		return
	}

	article.Title = title
	article.Summary = summary
	article.Content = content
	article.Language = p.TargetLang
	article.Translated = true
}

func (p *LanguageProcessor) translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	return p.Translator.Translate(ctx, text, p.TargetLang)
}

func (p *LanguageProcessor) warn(article *newsextract.Article, err error) {
	if p.Logger == nil {
		return
	}
	p.Logger.Warn("translation failed", "url", article.URL, "target", p.TargetLang, "err", err)
}
