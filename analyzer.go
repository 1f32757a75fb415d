package newsextract

import "context"

// Analysis is the result of running NLP over an article.
type Analysis struct {
	// Entities groups named entities by type, e.g. "PERSON" or "ORG".
	Entities  map[string][]string
	Sentiment Sentiment
	Summary   string
}

// Analyzer runs entity, sentiment and summary analysis over article text.
type Analyzer interface {
	Analyze(ctx context.Context, title, content string) (*Analysis, error)
}

// TokenCounter counts the tokens a model would see for text. Analyzers
// use it to keep prompts within the model's input budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
