package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/goquery"
	"github.com/fwojciec/newsextract/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const article = `<!DOCTYPE html>
<html>
<head><title>Tram line opens in spring</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/world">World</a></li>
<li><a href="/business">Business</a></li>
</ul>
</nav>
<article>
<h1>Tram line opens in spring</h1>
<p>The regional transport authority confirmed on Tuesday that the new tram line will open in the spring after final safety checks are complete.</p>
<p>Officials expect forty thousand passengers a day once the line is fully running, easing congestion on the main roads into the city centre.</p>
<p>Construction began three years ago and ran slightly over budget, according to figures published by the authority last month.</p>
</article>
<footer class="footer"><p>Copyright 2024 Daily News</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article paragraphs as text", func(t *testing.T) {
		t.Parallel()

		page := goquery.Parse(article, "https://example.com/news/tram")

		text, err := trafilatura.NewExtractor().Extract(page)

		require.NoError(t, err)
		assert.Contains(t, text, "new tram line will open in the spring")
		assert.Contains(t, text, "forty thousand passengers")
		assert.NotContains(t, text, "<p>")
		assert.True(t, newsextract.HasSufficientContent(text))
	})

	t.Run("does not modify the shared page tree", func(t *testing.T) {
		t.Parallel()

		page := goquery.Parse(article, "https://example.com/news/tram")
		before := render(t, page.Root)

		_, err := trafilatura.NewExtractor().Extract(page)

		require.NoError(t, err)
		assert.Equal(t, before, render(t, page.Root))
	})

	t.Run("returns error for nil page", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(nil)

		require.Error(t, err)
		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})

	t.Run("is named trafilatura", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, newsextract.StrategyTrafilatura, trafilatura.NewExtractor().Name())
	})
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, html.Render(&b, n))
	return b.String()
}
