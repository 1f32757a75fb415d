package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/newsextract"
	"google.golang.org/genai"
)

// Ensure Translator implements newsextract.Translator at compile time.
var _ newsextract.Translator = (*Translator)(nil)

// Translator implements newsextract.Translator using Google Gemini.
type Translator struct {
	gen   Generator
	model string
}

// NewTranslator creates a new Translator generating with model.
func NewTranslator(gen Generator, model string) *Translator {
	return &Translator{gen: gen, model: model}
}

// Translate returns text translated into targetLang. Empty text is
// returned unchanged without calling the model.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if targetLang == "" {
		return "", newsextract.Errorf(newsextract.EINVALID, "target language required")
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	return generate(ctx, t.gen, t.model, BuildTranslatePrompt(text, targetLang), BuildTranslateConfig())
}

// BuildTranslateConfig returns the GenerateContentConfig for translations.
func BuildTranslateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a professional news translator. Translate faithfully, keep names and numbers unchanged, and reply with the translation only.",
			}},
		},
		Temperature: temperature(0.2),
	}
}

// BuildTranslatePrompt builds the user prompt for translating text.
func BuildTranslatePrompt(text, targetLang string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the text into the language with ISO 639-1 code %q.\n\n", targetLang)
	sb.WriteString("<text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</text>")
	return sb.String()
}
