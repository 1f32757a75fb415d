package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/newsextract"
	main "github.com/fwojciec/newsextract/cmd/newsextract"
	"github.com/fwojciec/newsextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedArticle() *newsextract.Article {
	return &newsextract.Article{
		ID:            "article_0123456789ab",
		Title:         "Leaders meet in Geneva",
		Content:       "World leaders met in Geneva on Monday.",
		URL:           "https://bbc.com/news/world-1",
		Author:        "Jane Doe",
		PublishedDate: "2024-03-04T10:00:00Z",
		Source:        "bbc.com",
		Language:      "en",
		Tags:          []string{"world", "diplomacy"},
		NLPProcessed:  true,
		NLPSummary:    "Leaders held talks.",
		Sentiment:     &newsextract.Sentiment{Label: "neutral", Score: 0.1},
	}
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows article with tags and analysis", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticleByIDFn: func(_ context.Context, id string) (*newsextract.Article, error) {
				assert.Equal(t, "article_0123456789ab", id)
				return storedArticle(), nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		err := (&main.ShowCmd{ID: "article_0123456789ab"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "## Leaders meet in Geneva")
		assert.Contains(t, output, "By Jane Doe")
		assert.Contains(t, output, "World leaders met in Geneva on Monday.")
		assert.Contains(t, output, "Tags: world, diplomacy")
		assert.Contains(t, output, "Summary: Leaders held talks.")
		assert.Contains(t, output, "Sentiment: neutral (0.10)")
	})

	t.Run("prints JSON when requested", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticleByIDFn: func(_ context.Context, _ string) (*newsextract.Article, error) {
				return storedArticle(), nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Articles: articles,
		}

		err := (&main.ShowCmd{ID: "article_0123456789ab", JSON: true}).Run(deps)

		require.NoError(t, err)
		var got newsextract.Article
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "Leaders meet in Geneva", got.Title)
		assert.Equal(t, []string{"world", "diplomacy"}, got.Tags)
	})

	t.Run("reports missing article", func(t *testing.T) {
		t.Parallel()

		articles := &mock.ArticleService{
			FindArticleByIDFn: func(_ context.Context, _ string) (*newsextract.Article, error) {
				return nil, newsextract.Errorf(newsextract.ENOTFOUND, "article not found")
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Articles: articles,
		}

		err := (&main.ShowCmd{ID: "missing"}).Run(deps)

		assert.Equal(t, newsextract.ENOTFOUND, newsextract.ErrorCode(err))
		assert.Contains(t, stderr.String(), `article "missing" not found`)
	})
}
