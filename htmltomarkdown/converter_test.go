package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "keeps a lead paragraph",
			html: `<p>The central bank held rates steady on Thursday.</p>`,
			want: []string{"The central bank held rates steady on Thursday."},
		},
		{
			name: "renders headline levels as ATX headings",
			html: `<h1>Storm hits coast</h1><h2>Thousands without power</h2><h3>What we know</h3>`,
			want: []string{"# Storm hits coast", "## Thousands without power", "### What we know"},
		},
		{
			name: "keeps inline links to related coverage",
			html: `<p>See our <a href="https://news.example.com/live">live coverage</a>.</p>`,
			want: []string{"[live coverage](https://news.example.com/live)"},
		},
		{
			name: "renders bullet and numbered lists",
			html: `<ul><li>Schools closed</li><li>Roads flooded</li></ul><ol><li>Stay indoors</li><li>Charge phones</li></ol>`,
			want: []string{"- Schools closed", "- Roads flooded", "1. Stay indoors", "2. Charge phones"},
		},
		{
			name: "renders pull quotes as blockquotes",
			html: `<blockquote><p>We have never seen water this high.</p></blockquote>`,
			want: []string{"> We have never seen water this high."},
		},
		{
			name: "keeps emphasis",
			html: `<p><strong>Breaking:</strong> talks <em>resume</em> today.</p>`,
			want: []string{"**Breaking:**", "*resume*"},
		},
		{
			name: "renders results tables",
			html: `<table><thead><tr><th>Party</th><th>Seats</th></tr></thead>` +
				`<tbody><tr><td>Green</td><td>12</td></tr></tbody></table>`,
			want: []string{"Party", "Seats", "Green", "12", "|", "---"},
		},
		{
			name: "renders a full feed entry body",
			html: `<div>
<p><img src="https://cdn.example.com/lead.jpg" alt="Flooded street"></p>
<h2>Evacuations ordered</h2>
<p>Officials urged residents to <a href="https://news.example.com/shelters">find shelter</a> by <strong>noon</strong>.</p>
</div>`,
			want: []string{
				"![Flooded street](https://cdn.example.com/lead.jpg)",
				"## Evacuations ordered",
				"[find shelter](https://news.example.com/shelters)",
				"**noon**",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := htmltomarkdown.NewConverter().Convert(tt.html)

			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, md, w)
			}
		})
	}

	t.Run("resolves relative links against the source domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://news.example.com"))
		md, err := conv.Convert(`<p><a href="/world/story">Full story</a></p><img src="/img/map.png" alt="Map">`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Full story](https://news.example.com/world/story)")
		assert.Contains(t, md, "https://news.example.com/img/map.png")
	})

	t.Run("trims plain text summaries", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("  Markets rallied after the vote.  ")

		require.NoError(t, err)
		assert.Equal(t, "Markets rallied after the vote.", md)
	})

	t.Run("collapses blank runs left by empty elements", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Before.</p><div></div><div></div><p>After.</p>`)

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n\n")
		assert.Contains(t, md, "Before.")
		assert.Contains(t, md, "After.")
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert(" \n\t")

		require.Error(t, err)
		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})
}
