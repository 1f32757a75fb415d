package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
)

// Ensure LoggingTranslator implements newsextract.Translator.
var _ newsextract.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with logging.
type LoggingTranslator struct {
	next   newsextract.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next newsextract.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator and logs the operation.
func (t *LoggingTranslator) Translate(ctx context.Context, text, targetLang string) (translated string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("translate",
			"target", targetLang,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, text, targetLang)
}
