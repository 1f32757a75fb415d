package newsextract

import "context"

// LanguageDetector identifies the language of a text.
type LanguageDetector interface {
	// DetectLanguage returns the ISO 639-1 code of the text's language,
	// or LanguageUnknown when it cannot tell.
	DetectLanguage(text string) string
}

// Translator translates text between languages.
type Translator interface {
	// Translate returns text translated into the target language, given
	// as an ISO 639-1 code.
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
