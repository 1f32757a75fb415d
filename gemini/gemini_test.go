package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// generator is a function-field fake of gemini.Generator.
type generator struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (g *generator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.GenerateContentFn(ctx, model, contents, config)
}

// reply returns a generator answering every prompt with text and
// recording the last prompt and config it saw.
func reply(text string, prompt *string, config **genai.GenerateContentConfig) *generator {
	return &generator{
		GenerateContentFn: func(_ context.Context, _ string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			if prompt != nil {
				*prompt = contents[0].Parts[0].Text
			}
			if config != nil {
				*config = cfg
			}
			return response(text), nil
		},
	}
}

func response(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestTranslator_Translate(t *testing.T) {
	t.Parallel()

	t.Run("returns model translation", func(t *testing.T) {
		t.Parallel()

		var prompt string
		var config *genai.GenerateContentConfig
		tr := gemini.NewTranslator(reply("  Hello world \n", &prompt, &config), gemini.DefaultModel)

		got, err := tr.Translate(context.Background(), "Hallo Welt", "en")

		require.NoError(t, err)
		assert.Equal(t, "Hello world", got)
		assert.Contains(t, prompt, "Hallo Welt")
		assert.Contains(t, prompt, `"en"`)
		require.NotNil(t, config.SystemInstruction)
		assert.Contains(t, config.SystemInstruction.Parts[0].Text, "translator")
	})

	t.Run("passes model name", func(t *testing.T) {
		t.Parallel()

		var model string
		gen := &generator{
			GenerateContentFn: func(_ context.Context, m string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				model = m
				return response("ok"), nil
			},
		}

		_, err := gemini.NewTranslator(gen, "gemini-test").Translate(context.Background(), "text", "fr")

		require.NoError(t, err)
		assert.Equal(t, "gemini-test", model)
	})

	t.Run("returns empty text without calling model", func(t *testing.T) {
		t.Parallel()

		gen := &generator{
			GenerateContentFn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				t.Fatal("unexpected call")
				return nil, nil
			},
		}

		got, err := gemini.NewTranslator(gen, gemini.DefaultModel).Translate(context.Background(), "  ", "en")

		require.NoError(t, err)
		assert.Equal(t, "  ", got)
	})

	t.Run("returns EINVALID without target language", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewTranslator(nil, gemini.DefaultModel).Translate(context.Background(), "text", "")

		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for nil result", func(t *testing.T) {
		t.Parallel()

		gen := &generator{
			GenerateContentFn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return nil, nil
			},
		}

		_, err := gemini.NewTranslator(gen, gemini.DefaultModel).Translate(context.Background(), "text", "en")

		assert.Equal(t, newsextract.EINTERNAL, newsextract.ErrorCode(err))
	})

	t.Run("propagates model errors", func(t *testing.T) {
		t.Parallel()

		gen := &generator{
			GenerateContentFn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		_, err := gemini.NewTranslator(gen, gemini.DefaultModel).Translate(context.Background(), "text", "en")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})
}

func TestBuildTranslateConfig_SetsLowTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildTranslateConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}
