// Package gemini implements translation and article analysis using
// Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/newsextract"
	"google.golang.org/genai"
)

// DefaultModel is the model used for translation and analysis.
const DefaultModel = "gemini-2.5-flash"

// TokenizerModel is the model whose local tokenizer enforces token budgets.
const TokenizerModel = "gemini-2.5-flash"

// Generator generates model content. *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Ensure *genai.Models implements Generator at compile time.
var _ Generator = (*genai.Models)(nil)

// generate sends a single user prompt and returns the response text.
func generate(ctx context.Context, gen Generator, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := gen.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", newsextract.Errorf(newsextract.EINTERNAL, "gemini returned nil result")
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", newsextract.Errorf(newsextract.EINTERNAL, "gemini returned empty response")
	}
	return text, nil
}

func temperature(v float32) *float32 {
	return &v
}
