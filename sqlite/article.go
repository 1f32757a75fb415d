package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/newsextract"
)

// Compile-time interface verification.
var _ newsextract.ArticleService = (*ArticleService)(nil)

// ArticleService implements newsextract.ArticleService using SQLite.
type ArticleService struct {
	db  *DB
	now func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db, now: time.Now}
}

const articleColumns = `id, url, title, content, content_hash, summary, author,
	published_date, published_at, source, language, translated, top_image,
	category, publication_name, meta_description, canonical_link,
	image_urls, video_urls, links, is_paywalled,
	entities, sentiment_label, sentiment_score, nlp_summary, nlp_processed,
	extracted_at`

// CreateArticle stores an article, replacing any article with the same ID.
// A missing ID is derived from the URL and title, a missing extraction
// time is set to now, and the content hash is recomputed.
func (s *ArticleService) CreateArticle(ctx context.Context, article *newsextract.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	if article.ID == "" {
		article.ID = newsextract.ArticleID(article.URL, article.Title)
	}
	if article.ExtractedAt.IsZero() {
		article.ExtractedAt = s.now().UTC()
	}
	if article.Language == "" {
		article.Language = newsextract.LanguageUnknown
	}
	article.ContentHash = newsextract.HashContent(article.Content)

	imageURLs, err := encodeJSON(nonNil(article.ImageURLs))
	if err != nil {
		return err
	}
	videoURLs, err := encodeJSON(nonNil(article.VideoURLs))
	if err != nil {
		return err
	}
	links, err := encodeJSON(nonNil(article.Links))
	if err != nil {
		return err
	}
	entities := "{}"
	if len(article.Entities) > 0 {
		if entities, err = encodeJSON(article.Entities); err != nil {
			return err
		}
	}
	var sentimentLabel sql.NullString
	var sentimentScore sql.NullFloat64
	if article.Sentiment != nil {
		sentimentLabel = sql.NullString{String: article.Sentiment.Label, Valid: true}
		sentimentScore = sql.NullFloat64{Float64: article.Sentiment.Score, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			summary = excluded.summary,
			author = excluded.author,
			published_date = excluded.published_date,
			published_at = excluded.published_at,
			source = excluded.source,
			language = excluded.language,
			translated = excluded.translated,
			top_image = excluded.top_image,
			category = excluded.category,
			publication_name = excluded.publication_name,
			meta_description = excluded.meta_description,
			canonical_link = excluded.canonical_link,
			image_urls = excluded.image_urls,
			video_urls = excluded.video_urls,
			links = excluded.links,
			is_paywalled = excluded.is_paywalled,
			entities = excluded.entities,
			sentiment_label = excluded.sentiment_label,
			sentiment_score = excluded.sentiment_score,
			nlp_summary = excluded.nlp_summary,
			nlp_processed = excluded.nlp_processed,
			extracted_at = excluded.extracted_at
	`, article.ID, article.URL, article.Title, article.Content, article.ContentHash,
		article.Summary, article.Author, article.PublishedDate, nullTime(article.PublishedAt),
		article.Source, article.Language, article.Translated, article.TopImage,
		article.Category, article.PublicationName, article.MetaDescription, article.CanonicalLink,
		imageURLs, videoURLs, links, article.IsPaywalled,
		entities, sentimentLabel, sentimentScore, article.NLPSummary, article.NLPProcessed,
		formatTime(article.ExtractedAt))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM article_tags WHERE article_id = ?", article.ID); err != nil {
		return err
	}
	for i, tag := range article.Tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO article_tags (article_id, tag, position) VALUES (?, ?, ?)
		`, article.ID, tag, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*newsextract.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newsextract.Errorf(newsextract.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*newsextract.Article{article}); err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, newest first by
// publication time, falling back to extraction time.
func (s *ArticleService) FindArticles(ctx context.Context, filter newsextract.ArticleFilter) ([]*newsextract.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}
	if filter.Tag != nil {
		query.WriteString(" AND id IN (SELECT article_id FROM article_tags WHERE tag = ?)")
		args = append(args, *filter.Tag)
	}
	if filter.Since != nil {
		query.WriteString(" AND COALESCE(published_at, extracted_at) >= ?")
		args = append(args, formatTime(*filter.Since))
	}

	query.WriteString(" ORDER BY COALESCE(published_at, extracted_at) DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*newsextract.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// DeleteArticle permanently removes an article and its tags.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return newsextract.Errorf(newsextract.ENOTFOUND, "article not found")
	}

	return nil
}

// attachTags loads the tags of every article in one query.
func (s *ArticleService) attachTags(ctx context.Context, articles []*newsextract.Article) error {
	if len(articles) == 0 {
		return nil
	}

	byID := make(map[string]*newsextract.Article, len(articles))
	placeholders := make([]string, 0, len(articles))
	args := make([]any, 0, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
		placeholders = append(placeholders, "?")
		args = append(args, a.ID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT article_id, tag FROM article_tags
		WHERE article_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY article_id, position
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return err
		}
		if a, ok := byID[id]; ok {
			a.Tags = append(a.Tags, tag)
		}
	}
	return rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*newsextract.Article, error) {
	var a newsextract.Article
	var publishedAt, sentimentLabel sql.NullString
	var sentimentScore sql.NullFloat64
	var imageURLs, videoURLs, links, entities, extractedAt string

	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.Content, &a.ContentHash, &a.Summary, &a.Author,
		&a.PublishedDate, &publishedAt, &a.Source, &a.Language, &a.Translated, &a.TopImage,
		&a.Category, &a.PublicationName, &a.MetaDescription, &a.CanonicalLink,
		&imageURLs, &videoURLs, &links, &a.IsPaywalled,
		&entities, &sentimentLabel, &sentimentScore, &a.NLPSummary, &a.NLPProcessed,
		&extractedAt); err != nil {
		return nil, err
	}

	var err error
	if a.PublishedAt, err = parseNullTime(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	if a.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at"); err != nil {
		return nil, err
	}
	if err := decodeJSON(imageURLs, "image_urls", &a.ImageURLs); err != nil {
		return nil, err
	}
	if err := decodeJSON(videoURLs, "video_urls", &a.VideoURLs); err != nil {
		return nil, err
	}
	if err := decodeJSON(links, "links", &a.Links); err != nil {
		return nil, err
	}
	if err := decodeJSON(entities, "entities", &a.Entities); err != nil {
		return nil, err
	}
	if len(a.Entities) == 0 {
		a.Entities = nil
	}
	if sentimentLabel.Valid {
		a.Sentiment = &newsextract.Sentiment{Label: sentimentLabel.String, Score: sentimentScore.Float64}
	}

	return &a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
