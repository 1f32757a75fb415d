package crawl

import (
	"fmt"
	"strings"

	"github.com/fwojciec/newsextract"
)

// TruncateURL shortens an article URL for progress lines. The scheme and
// a "www." prefix are dropped first, then the head is cut so the slug at
// the end stays readable.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	short := url
	if i := strings.Index(short, "://"); i >= 0 {
		short = short[i+3:]
	}
	short = strings.TrimPrefix(short, "www.")

	if len(short) <= maxLen {
		return short
	}
	if maxLen < 4 {
		return short[:maxLen]
	}
	return "..." + short[len(short)-maxLen+3:]
}

// FormatBytes formats a byte count using binary units.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatWords formats a word count, abbreviating thousands.
func FormatWords(words int) string {
	switch {
	case words == 1:
		return "1 word"
	case words < 1000:
		return fmt.Sprintf("%d words", words)
	default:
		return fmt.Sprintf("%.1fk words", float64(words)/1000)
	}
}

// Summary totals a batch of extracted articles.
type Summary struct {
	Articles int
	Words    int
	Bytes    int
}

// Summarize totals the articles for a result line.
func Summarize(articles []*newsextract.Article) Summary {
	var s Summary
	for _, a := range articles {
		s.Articles++
		s.Words += a.WordCount()
		s.Bytes += len(a.Content)
	}
	return s
}

// String formats the summary as "N articles, W words, B".
func (s Summary) String() string {
	noun := "articles"
	if s.Articles == 1 {
		noun = "article"
	}
	return fmt.Sprintf("%d %s, %s, %s", s.Articles, noun, FormatWords(s.Words), FormatBytes(s.Bytes))
}
