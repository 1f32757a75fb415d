package goquery_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/newsextract/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func TestPrunedClone(t *testing.T) {
	t.Parallel()

	t.Run("removes boilerplate subtrees", func(t *testing.T) {
		t.Parallel()

		page := goquery.Parse(`<html><body>
<p>The bridge reopened to traffic on Friday.</p>
<div class="advertisement"><p>Buy now and save big.</p></div>
<aside id="share-tools"><a href="#">Share</a></aside>
</body></html>`, "https://example.com/a")

		got := render(t, goquery.PrunedClone(page.Root))

		assert.Contains(t, got, "The bridge reopened to traffic on Friday.")
		assert.NotContains(t, got, "Buy now")
		assert.NotContains(t, got, "share-tools")
	})

	t.Run("keeps layout wrappers around the story", func(t *testing.T) {
		t.Parallel()

		page := goquery.Parse(`<html><body><div class="layout-with-sidebar">
<article><p>The bridge reopened to traffic on Friday.</p></article>
<div class="sidebar"><p>Most read</p></div>
</div></body></html>`, "https://example.com/a")

		got := render(t, goquery.PrunedClone(page.Root))

		assert.Contains(t, got, "The bridge reopened to traffic on Friday.")
		assert.NotContains(t, got, "Most read")
	})

	t.Run("leaves the original tree untouched", func(t *testing.T) {
		t.Parallel()

		page := goquery.Parse(`<html><body><div class="ad-slot"><p>Sponsored</p></div></body></html>`, "https://example.com/a")
		before := render(t, page.Root)

		goquery.PrunedClone(page.Root)

		assert.Equal(t, before, render(t, page.Root))
		assert.Contains(t, before, "Sponsored")
	})
}
