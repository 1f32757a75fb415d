package newsextract

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// LanguageUnknown is the language of an article whose language could not
// be detected.
const LanguageUnknown = "unknown"

// wordsPerMinute is the reading speed used by ReadTime.
const wordsPerMinute = 200

// Article is an extracted news article merged with its metadata.
type Article struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	URL           string     `json:"url"`
	Summary       string     `json:"summary"`
	Author        string     `json:"author"`
	PublishedDate string     `json:"publishedDate"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Source        string     `json:"source"`
	Language      string     `json:"language"`
	Translated    bool       `json:"translated"`
	TopImage      string     `json:"topImage"`
	ExtractedAt   time.Time  `json:"extractedAt"`
	ContentHash   string     `json:"contentHash"`

	Category        string   `json:"category"`
	PublicationName string   `json:"publicationName"`
	MetaDescription string   `json:"metaDescription"`
	CanonicalLink   string   `json:"canonicalLink"`
	ImageURLs       []string `json:"imageUrls"`
	VideoURLs       []string `json:"videoUrls"`
	Links           []string `json:"links"`
	Tags            []string `json:"tags"`
	IsPaywalled     bool     `json:"isPaywalled"`

	Entities     map[string][]string `json:"entities,omitempty"`
	Sentiment    *Sentiment          `json:"sentiment,omitempty"`
	NLPSummary   string              `json:"nlpSummary,omitempty"`
	NLPProcessed bool                `json:"nlpProcessed"`
}

// NewArticle merges parsed article data and its metadata into an Article
// for the given page URL. The ID is derived from the URL and title.
func NewArticle(data *ArticleData, pageURL string) *Article {
	meta := data.Metadata
	if meta == nil {
		meta = NewMetadata()
	}
	return &Article{
		ID:              ArticleID(pageURL, data.Title),
		Title:           data.Title,
		Content:         data.Content,
		URL:             pageURL,
		Summary:         meta.Summary,
		Author:          meta.Author,
		PublishedDate:   meta.PublishedDate,
		PublishedAt:     meta.PublishedAt,
		Source:          meta.Source,
		Language:        LanguageUnknown,
		TopImage:        meta.TopImage,
		ContentHash:     HashContent(data.Content),
		Category:        meta.Category,
		PublicationName: meta.PublicationName,
		MetaDescription: meta.MetaDescription,
		CanonicalLink:   meta.CanonicalLink,
		ImageURLs:       meta.ImageURLs,
		VideoURLs:       meta.VideoURLs,
		Links:           meta.Links,
		Tags:            meta.Tags,
		IsPaywalled:     meta.IsPaywalled,
	}
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return Errorf(EINVALID, "article title required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// WordCount returns the number of whitespace-separated words in the content.
func (a *Article) WordCount() int {
	return len(strings.Fields(a.Content))
}

// ReadTime returns the estimated reading time in minutes, at least 1.
func (a *Article) ReadTime() int {
	return max(1, a.WordCount()/wordsPerMinute)
}

// ReadingDifficulty classifies the article by length: "easy" below 100
// words, "medium" below 500, "hard" otherwise.
func (a *Article) ReadingDifficulty() string {
	switch wc := a.WordCount(); {
	case wc < 100:
		return "easy"
	case wc < 500:
		return "medium"
	default:
		return "hard"
	}
}

// ContentPreview returns at most maxLen characters of the content. When a
// sentence ends past half of the limit the preview stops there, otherwise
// it is cut at the limit and "..." is appended.
func (a *Article) ContentPreview(maxLen int) string {
	if utf8.RuneCountInString(a.Content) <= maxLen {
		return a.Content
	}
	preview := string([]rune(a.Content)[:maxLen])
	end := strings.LastIndexAny(preview, ".!?")
	if end >= 0 && utf8.RuneCountInString(preview[:end]) > maxLen/2 {
		return preview[:end+1]
	}
	return preview + "..."
}

// TitlePreview returns the title cut to maxLen characters, with "..."
// appended when it was cut.
func (a *Article) TitlePreview(maxLen int) string {
	if utf8.RuneCountInString(a.Title) <= maxLen {
		return a.Title
	}
	return string([]rune(a.Title)[:maxLen]) + "..."
}

// IsRecent reports whether the article was published within the given
// number of days before now. Articles without a parsed date are not recent.
func (a *Article) IsRecent(now time.Time, days int) bool {
	if a.PublishedAt == nil {
		return false
	}
	return now.Sub(*a.PublishedAt) <= time.Duration(days)*24*time.Hour
}

// ArticleID returns the stable identifier of the article at url with title.
func ArticleID(url, title string) string {
	return fmt.Sprintf("article_%.12s", fmt.Sprintf("%016x", xxhash.Sum64String(url+title)))
}

// HashContent returns the xxhash of content as a hex string.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Sentiment is the overall tone of an article.
type Sentiment struct {
	// Label is "positive", "negative" or "neutral".
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ArticleWriter writes articles to storage.
type ArticleWriter interface {
	CreateArticle(ctx context.Context, article *Article) error
}

// ArticleService represents a service for managing articles.
type ArticleService interface {
	// CreateArticle stores an article, replacing any article with the same ID.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	Source   *string    `json:"source"`
	Language *string    `json:"language"`
	Tag      *string    `json:"tag"`
	Since    *time.Time `json:"since"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
