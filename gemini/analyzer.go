package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/newsextract"
	"google.golang.org/genai"
)

// Ensure Analyzer implements newsextract.Analyzer at compile time.
var _ newsextract.Analyzer = (*Analyzer)(nil)

// DefaultMaxTokens is the content budget sent for analysis.
const DefaultMaxTokens = 8000

// Entity types reported in newsextract.Analysis.Entities.
const (
	EntityPerson       = "PERSON"
	EntityOrganization = "ORG"
	EntityLocation     = "LOC"
	EntityEvent        = "EVENT"
)

// Analyzer implements newsextract.Analyzer using Google Gemini.
type Analyzer struct {
	gen       Generator
	model     string
	counter   newsextract.TokenCounter
	maxTokens int
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithTokenBudget truncates content to maxTokens as counted by counter.
func WithTokenBudget(counter newsextract.TokenCounter, maxTokens int) AnalyzerOption {
	return func(a *Analyzer) {
		a.counter = counter
		a.maxTokens = maxTokens
	}
}

// NewAnalyzer creates a new Analyzer generating with model.
func NewAnalyzer(gen Generator, model string, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{gen: gen, model: model, maxTokens: DefaultMaxTokens}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// analysisResponse is the JSON document requested from the model.
type analysisResponse struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
	Events        []string `json:"events"`
	Sentiment     string   `json:"sentiment"`
	Score         float64  `json:"score"`
	Summary       string   `json:"summary"`
}

// Analyze extracts named entities, overall sentiment and a short summary
// from an article.
func (a *Analyzer) Analyze(ctx context.Context, title, content string) (*newsextract.Analysis, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newsextract.Errorf(newsextract.EINVALID, "content required")
	}

	content, err := Truncate(ctx, a.counter, content, a.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("count tokens: %w", err)
	}

	text, err := generate(ctx, a.gen, a.model, BuildAnalyzePrompt(title, content), BuildAnalyzeConfig())
	if err != nil {
		return nil, err
	}
	return ParseAnalysis(text)
}

// ParseAnalysis decodes the model's JSON reply into an Analysis.
func ParseAnalysis(text string) (*newsextract.Analysis, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var resp analysisResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, newsextract.Errorf(newsextract.EINTERNAL, "decode analysis: %v", err)
	}

	entities := make(map[string][]string)
	for typ, names := range map[string][]string{
		EntityPerson:       resp.People,
		EntityOrganization: resp.Organizations,
		EntityLocation:     resp.Locations,
		EntityEvent:        resp.Events,
	} {
		if cleaned := dedupe(names); len(cleaned) > 0 {
			entities[typ] = cleaned
		}
	}

	return &newsextract.Analysis{
		Entities:  entities,
		Sentiment: newsextract.Sentiment{Label: sentimentLabel(resp.Sentiment), Score: max(-1, min(1, resp.Score))},
		Summary:   strings.TrimSpace(resp.Summary),
	}, nil
}

func sentimentLabel(s string) string {
	switch l := strings.ToLower(strings.TrimSpace(s)); l {
	case "positive", "negative":
		return l
	default:
		return "neutral"
	}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// BuildAnalyzeConfig returns the GenerateContentConfig requesting a JSON
// analysis document.
func BuildAnalyzeConfig() *genai.GenerateContentConfig {
	names := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a news analyst. Identify the named entities in the article, judge its overall sentiment, and summarize it in at most two sentences. Use only information from the article.",
			}},
		},
		Temperature:      temperature(0.1),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"people":        names,
				"organizations": names,
				"locations":     names,
				"events":        names,
				"sentiment": {
					Type: genai.TypeString,
					Enum: []string{"positive", "negative", "neutral"},
				},
				"score":   {Type: genai.TypeNumber},
				"summary": {Type: genai.TypeString},
			},
			Required: []string{"people", "organizations", "locations", "events", "sentiment", "score", "summary"},
		},
	}
}

// BuildAnalyzePrompt builds the user prompt containing the article.
func BuildAnalyzePrompt(title, content string) string {
	var sb strings.Builder
	sb.WriteString("<article>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	fmt.Fprintf(&sb, "<content>%s</content>\n", content)
	sb.WriteString("</article>\n\n")
	sb.WriteString("Score sentiment from -1 (very negative) to 1 (very positive).")
	return sb.String()
}
