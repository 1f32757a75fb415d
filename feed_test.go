package newsextract_test

import (
	"testing"

	"github.com/fwojciec/newsextract"
	"github.com/stretchr/testify/assert"
)

func TestIsFeedURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://example.com/index.xml", want: true},
		{url: "https://example.com/news.rss", want: true},
		{url: "https://example.com/rss/world", want: true},
		{url: "https://example.com/feed/", want: true},
		{url: "https://example.com/feeds/latest", want: true},
		{url: "https://example.com/RSS.XML", want: true},
		{url: "https://example.com/atom.xml", want: true},
		{url: "https://example.com/rss", want: true},
		{url: "https://example.com/feed", want: true},
		{url: "https://example.com/news/article-1", want: false},
		{url: "https://example.com/feedback", want: false},
		{url: "https://example.com/rss-guide.html", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, newsextract.IsFeedURL(tt.url))
		})
	}
}

func TestIsFeedContentType(t *testing.T) {
	t.Parallel()

	t.Run("accepts feed media types with parameters", func(t *testing.T) {
		t.Parallel()
		assert.True(t, newsextract.IsFeedContentType("application/rss+xml; charset=utf-8"))
		assert.True(t, newsextract.IsFeedContentType("application/atom+xml"))
		assert.True(t, newsextract.IsFeedContentType("application/xml"))
		assert.True(t, newsextract.IsFeedContentType("TEXT/XML"))
	})

	t.Run("rejects html and malformed values", func(t *testing.T) {
		t.Parallel()
		assert.False(t, newsextract.IsFeedContentType("text/html; charset=utf-8"))
		assert.False(t, newsextract.IsFeedContentType(""))
		assert.False(t, newsextract.IsFeedContentType(";;"))
	})
}
