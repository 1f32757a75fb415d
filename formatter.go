package newsextract

import (
	"fmt"
	"strings"
)

// FormatArticles formats articles for display.
// Uses title if available, falls back to URL.
// Articles are separated by blank lines.
func FormatArticles(articles []*Article) string {
	if len(articles) == 0 {
		return ""
	}

	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		header := a.Title
		if header == "" || header == UnknownTitle {
			header = a.URL
		}
		var b strings.Builder
		b.WriteString("## " + header + "\n")
		if a.Author != "" {
			fmt.Fprintf(&b, "By %s\n", a.Author)
		}
		if a.PublishedDate != "" {
			fmt.Fprintf(&b, "Published %s\n", a.PublishedDate)
		}
		fmt.Fprintf(&b, "%s | %d words | %d min read\n\n", a.URL, a.WordCount(), a.ReadTime())
		b.WriteString(a.Content)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}
