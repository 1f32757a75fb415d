// Package crawl orchestrates news extraction: fetching pages and feeds
// with retry and pacing, parsing them into articles, and enriching and
// storing the results.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs ExtractURLs processes at once.
const DefaultConcurrency = 5

// ProgressEvent reports progress during a batch extraction.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// NewsExtractor turns article and feed URLs into articles.
type NewsExtractor struct {
	fetcher newsextract.Fetcher
	parser  newsextract.ArticleParser

	feeds     newsextract.FeedParser
	converter newsextract.Converter
	limiter   newsextract.DomainLimiter
	language  *LanguageProcessor
	analyzer  newsextract.Analyzer
	articles  newsextract.ArticleService
	writer    newsextract.ArticleWriter

	concurrency int
	feedLimit   int
	entryFilter *newsextract.URLFilter
	retryDelays []time.Duration
	progress    ProgressFunc
	progressMu  sync.Mutex
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a NewsExtractor.
type Option func(*NewsExtractor)

// WithConcurrency sets the number of URLs processed at once by
// ExtractURLs. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(e *NewsExtractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithFeedLimit caps the entries taken from each feed found by
// ExtractURL. Zero means no limit.
func WithFeedLimit(n int) Option {
	return func(e *NewsExtractor) {
		e.feedLimit = n
	}
}

// WithEntryFilter drops feed entries whose URL does not pass filter.
// Filtering happens before the feed limit is applied.
func WithEntryFilter(filter *newsextract.URLFilter) Option {
	return func(e *NewsExtractor) {
		e.entryFilter = filter
	}
}

// WithRetryDelays sets the delays between fetch attempts.
func WithRetryDelays(delays []time.Duration) Option {
	return func(e *NewsExtractor) {
		e.retryDelays = delays
	}
}

// WithRateLimiter paces requests per host.
func WithRateLimiter(limiter newsextract.DomainLimiter) Option {
	return func(e *NewsExtractor) {
		e.limiter = limiter
	}
}

// WithFeedParser enables RSS and Atom feed extraction.
func WithFeedParser(feeds newsextract.FeedParser) Option {
	return func(e *NewsExtractor) {
		e.feeds = feeds
	}
}

// WithConverter sets the converter used for feed entry bodies.
func WithConverter(converter newsextract.Converter) Option {
	return func(e *NewsExtractor) {
		e.converter = converter
	}
}

// WithLanguageProcessor enables language detection and translation.
func WithLanguageProcessor(p *LanguageProcessor) Option {
	return func(e *NewsExtractor) {
		e.language = p
	}
}

// WithAnalyzer enables NLP analysis of extracted articles.
func WithAnalyzer(analyzer newsextract.Analyzer) Option {
	return func(e *NewsExtractor) {
		e.analyzer = analyzer
	}
}

// WithArticles stores every extracted article in the service.
func WithArticles(articles newsextract.ArticleService) Option {
	return func(e *NewsExtractor) {
		e.articles = articles
	}
}

// WithWriter writes every extracted article with the writer.
func WithWriter(writer newsextract.ArticleWriter) Option {
	return func(e *NewsExtractor) {
		e.writer = writer
	}
}

// WithProgress sets the callback receiving ExtractURLs progress. Calls
// are serialized.
func WithProgress(progress ProgressFunc) Option {
	return func(e *NewsExtractor) {
		e.progress = progress
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *NewsExtractor) {
		e.logger = logger
	}
}

// WithClock sets the time source for ExtractedAt.
func WithClock(now func() time.Time) Option {
	return func(e *NewsExtractor) {
		e.now = now
	}
}

// NewNewsExtractor creates a NewsExtractor fetching with fetcher and
// parsing pages with parser.
func NewNewsExtractor(fetcher newsextract.Fetcher, parser newsextract.ArticleParser, opts ...Option) *NewsExtractor {
	e := &NewsExtractor{
		fetcher:     fetcher,
		parser:      parser,
		concurrency: DefaultConcurrency,
		retryDelays: DefaultRetryDelays(),
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractURL extracts the article at rawURL, or every entry when rawURL
// is a feed. A feed is recognised by its URL or, after fetching, by its
// content type.
func (e *NewsExtractor) ExtractURL(ctx context.Context, rawURL string) ([]*newsextract.Article, error) {
	if err := newsextract.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	if e.feeds != nil && newsextract.IsFeedURL(rawURL) {
		e.logger.Info("detected feed", "url", rawURL)
		return e.ExtractFeed(ctx, rawURL, e.feedLimit)
	}

	result, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if e.feeds != nil && newsextract.IsFeedContentType(result.ContentType) {
		e.logger.Info("detected feed", "url", rawURL, "contentType", result.ContentType)
		return e.articlesFromFeed(ctx, rawURL, result.HTML, e.feedLimit)
	}

	article, err := e.articleFromPage(ctx, result)
	if err != nil {
		return nil, err
	}
	return []*newsextract.Article{article}, nil
}

// ExtractURLs extracts every URL concurrently and returns the articles in
// input order. Duplicate URLs are processed once. URLs that fail are
// logged and skipped. The only error returned is the context's.
func (e *NewsExtractor) ExtractURLs(ctx context.Context, urls []string) ([]*newsextract.Article, error) {
	seen := bloom.NewFilter(uint(max(len(urls), 1)), 0.001)
	var unique []string
	for _, u := range urls {
		if seen.Seen(u) {
			e.logger.Debug("skipping duplicate", "url", u)
			continue
		}
		unique = append(unique, u)
	}

	total := len(unique)
	e.report(ProgressEvent{Type: ProgressStarted, Total: total})

	results := make([][]*newsextract.Article, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, u := range unique {
		g.Go(func() error {
			articles, err := e.ExtractURL(gctx, u)
			done := int(completed.Add(1))
			if err != nil {
				e.logger.Error("extraction failed", "url", u, "err", err)
				e.report(ProgressEvent{Type: ProgressFailed, Completed: done, Total: total, URL: u, Error: err})
				return nil
			}
			results[i] = articles
			e.report(ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, URL: u})
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var articles []*newsextract.Article
	for _, r := range results {
		articles = append(articles, r...)
	}

	e.report(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return articles, nil
}

// ExtractFeed fetches the feed at feedURL and converts up to limit
// entries into articles. A limit of zero or less means all entries.
func (e *NewsExtractor) ExtractFeed(ctx context.Context, feedURL string, limit int) ([]*newsextract.Article, error) {
	if e.feeds == nil {
		return nil, newsextract.Errorf(newsextract.ENOTIMPLEMENTED, "feed parsing is not configured")
	}
	if err := newsextract.ValidateURL(feedURL); err != nil {
		return nil, err
	}

	result, err := e.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	return e.articlesFromFeed(ctx, feedURL, result.HTML, limit)
}

func (e *NewsExtractor) articlesFromFeed(ctx context.Context, feedURL, body string, limit int) ([]*newsextract.Article, error) {
	feed, err := e.feeds.ParseFeed(ctx, body, feedURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	var entries []*newsextract.FeedEntry
	for _, entry := range feed.Entries {
		if !e.entryFilter.Match(entry.URL) {
			e.logger.Debug("filtered feed entry", "url", entry.URL)
			continue
		}
		entries = append(entries, entry)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	source := hostOf(feedURL)
	var articles []*newsextract.Article
	for _, entry := range entries {
		article := e.articleFromEntry(entry, source)
		if err := article.Validate(); err != nil {
			e.logger.Warn("skipping feed entry", "url", entry.URL, "err", err)
			continue
		}
		if err := e.finish(ctx, article); err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	e.logger.Info("extracted feed", "url", feedURL, "articles", len(articles))
	return articles, nil
}

func (e *NewsExtractor) articleFromEntry(entry *newsextract.FeedEntry, source string) *newsextract.Article {
	content := e.toText(entry.ContentHTML)
	return &newsextract.Article{
		ID:            newsextract.ArticleID(entry.URL, entry.Title),
		Title:         entry.Title,
		Content:       content,
		URL:           entry.URL,
		Summary:       e.toText(entry.Summary),
		Author:        entry.Author,
		PublishedDate: entry.Published,
		PublishedAt:   entry.PublishedAt,
		Source:        source,
		Language:      newsextract.LanguageUnknown,
		Tags:          entry.Tags,
		ContentHash:   newsextract.HashContent(content),
	}
}

// toText converts a feed HTML fragment to text, keeping the fragment as
// is when conversion fails.
func (e *NewsExtractor) toText(fragment string) string {
	if e.converter == nil || fragment == "" {
		return strings.TrimSpace(fragment)
	}
	text, err := e.converter.Convert(fragment)
	if err != nil {
		e.logger.Debug("convert feed html", "err", err)
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(text)
}

func (e *NewsExtractor) articleFromPage(ctx context.Context, result *newsextract.FetchResult) (*newsextract.Article, error) {
	data := e.parser.ParseArticleData(result.HTML, result.URL)
	article := newsextract.NewArticle(data, result.URL)
	if err := article.Validate(); err != nil {
		return nil, fmt.Errorf("extract %s: %w", result.URL, err)
	}
	if err := e.finish(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// finish enriches a valid article and hands it to the configured sinks.
func (e *NewsExtractor) finish(ctx context.Context, article *newsextract.Article) error {
	article.ExtractedAt = e.now()

	if e.language != nil {
		e.language.Process(ctx, article)
	}

	if e.analyzer != nil {
		analysis, err := e.analyzer.Analyze(ctx, article.Title, article.Content)
		if err != nil {
			e.logger.Warn("analysis failed", "url", article.URL, "err", err)
		} else {
			article.Entities = analysis.Entities
			article.Sentiment = &analysis.Sentiment
			article.NLPSummary = analysis.Summary
			article.NLPProcessed = true
		}
	}

	if e.articles != nil {
		if err := e.articles.CreateArticle(ctx, article); err != nil {
			return fmt.Errorf("store article %s: %w", article.URL, err)
		}
	}
	if e.writer != nil {
		if err := e.writer.CreateArticle(ctx, article); err != nil {
			return fmt.Errorf("write article %s: %w", article.URL, err)
		}
	}
	return nil
}

func (e *NewsExtractor) fetch(ctx context.Context, rawURL string) (*newsextract.FetchResult, error) {
	return FetchWithRetryDelays(ctx, rawURL, func(ctx context.Context, u string) (*newsextract.FetchResult, error) {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx, hostOf(u)); err != nil {
				return nil, err
			}
		}
		result, err := e.fetcher.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		if result.URL == "" {
			result.URL = u
		}
		return result, nil
	}, e.logger, e.retryDelays)
}

func (e *NewsExtractor) report(event ProgressEvent) {
	if e.progress == nil {
		return
	}
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	e.progress(event)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
