package newsextract_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/newsextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasSufficientContent(t *testing.T) {
	t.Parallel()

	t.Run("requires more than the minimum length", func(t *testing.T) {
		t.Parallel()

		assert.False(t, newsextract.HasSufficientContent(strings.Repeat("a", newsextract.MinContentLength)))
		assert.True(t, newsextract.HasSufficientContent(strings.Repeat("a", newsextract.MinContentLength+1)))
	})

	t.Run("ignores surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		text := "\n\n  " + strings.Repeat("a", newsextract.MinContentLength) + "  \n"

		assert.False(t, newsextract.HasSufficientContent(text))
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		assert.False(t, newsextract.HasSufficientContent(strings.Repeat("é", 60)))
	})
}

func TestExtractVariants(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("article text ", 20)
	page := &newsextract.Page{URL: "https://news.example/a"}

	t.Run("returns first sufficient variant", func(t *testing.T) {
		t.Parallel()

		var calls []string
		variant := func(name, text string) newsextract.Variant {
			return newsextract.Variant{Name: name, Extract: func(*newsextract.Page) (string, error) {
				calls = append(calls, name)
				return text, nil
			}}
		}

		text, err := newsextract.ExtractVariants(page,
			variant("short", "too short"),
			variant("long", long),
			variant("never", long),
		)

		require.NoError(t, err)
		assert.Equal(t, long, text)
		assert.Equal(t, []string{"short", "long"}, calls)
	})

	t.Run("joins errors when every variant fails", func(t *testing.T) {
		t.Parallel()

		failing := newsextract.Variant{Name: "a", Extract: func(*newsextract.Page) (string, error) {
			return "", errors.New("parse failed")
		}}
		unavailable := newsextract.Variant{Name: "b", Extract: func(*newsextract.Page) (string, error) {
			return "", newsextract.Errorf(newsextract.ENOTAVAILABLE, "missing")
		}}

		_, err := newsextract.ExtractVariants(page, failing, unavailable)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse failed")
		assert.Equal(t, newsextract.ENOTAVAILABLE, newsextract.ErrorCode(err))
	})

	t.Run("reports insufficient content without error", func(t *testing.T) {
		t.Parallel()

		failing := newsextract.Variant{Name: "a", Extract: func(*newsextract.Page) (string, error) {
			return "", errors.New("parse failed")
		}}
		short := newsextract.Variant{Name: "b", Extract: func(*newsextract.Page) (string, error) {
			return "short", nil
		}}

		text, err := newsextract.ExtractVariants(page, failing, short)

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestExtractVariants_Panics(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("article text ", 20)
	page := &newsextract.Page{URL: "https://news.example/a"}

	t.Run("moves on to the next variant after a panic", func(t *testing.T) {
		t.Parallel()

		panicking := newsextract.Variant{Name: "a", Extract: func(*newsextract.Page) (string, error) {
			panic("boom")
		}}
		working := newsextract.Variant{Name: "b", Extract: func(*newsextract.Page) (string, error) {
			return long, nil
		}}

		text, err := newsextract.ExtractVariants(page, panicking, working)

		require.NoError(t, err)
		assert.Equal(t, long, text)
	})

	t.Run("reports a panic as an internal error when nothing else ran", func(t *testing.T) {
		t.Parallel()

		panicking := newsextract.Variant{Name: "a", Extract: func(*newsextract.Page) (string, error) {
			panic("boom")
		}}

		_, err := newsextract.ExtractVariants(page, panicking)

		require.Error(t, err)
		assert.Equal(t, newsextract.EINTERNAL, newsextract.ErrorCode(err))
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestPage_Host(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "www.bbc.com", (&newsextract.Page{URL: "https://www.bbc.com/news/1"}).Host())
	assert.Empty(t, (&newsextract.Page{URL: "://bad"}).Host())
	assert.Nil(t, (&newsextract.Page{}).ParsedURL())
}
