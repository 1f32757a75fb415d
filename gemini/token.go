package gemini

import (
	"context"

	"github.com/fwojciec/newsextract"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ newsextract.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens with the model's local tokenizer, so budget
// checks on long articles never call the API.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, newsextract.Errorf(newsextract.ENOTAVAILABLE, "tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the number of tokens text occupies as a user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens(genai.Text(text), nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}

// Truncate shortens text until counter reports at most maxTokens tokens.
// Each pass keeps a proportional prefix with a 10% margin and gives up
// after five passes. A nil counter or a non-positive budget leaves text
// unchanged.
func Truncate(ctx context.Context, counter newsextract.TokenCounter, text string, maxTokens int) (string, error) {
	if counter == nil || maxTokens <= 0 {
		return text, nil
	}
	for range 5 {
		n, err := counter.CountTokens(ctx, text)
		if err != nil {
			return "", err
		}
		if n <= maxTokens {
			return text, nil
		}
		runes := []rune(text)
		keep := len(runes) * maxTokens / n * 9 / 10
		text = string(runes[:keep])
	}
	return text, nil
}
