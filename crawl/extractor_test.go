package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/crawl"
	"github.com/fwojciec/newsextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// htmlFetcher serves a fixed body per URL and fails for unknown URLs.
func htmlFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*newsextract.FetchResult, error) {
			body, ok := pages[url]
			if !ok {
				return nil, newsextract.Errorf(newsextract.EFETCH, "HTTP 404 for %s", url)
			}
			return &newsextract.FetchResult{URL: url, HTML: body, ContentType: "text/html; charset=utf-8", StatusCode: 200}, nil
		},
		CloseFn: func() error { return nil },
	}
}

// echoParser uses the HTML body as content and the URL as title.
func echoParser() *mock.ArticleParser {
	return &mock.ArticleParser{
		ParseArticleDataFn: func(html, url string) *newsextract.ArticleData {
			return &newsextract.ArticleData{
				Title:   "Story at " + url,
				Content: html,
				Metadata: &newsextract.Metadata{
					Author: "Jane Doe",
					Source: "example.com",
				},
			}
		},
	}
}

func newExtractor(fetcher newsextract.Fetcher, parser newsextract.ArticleParser, opts ...crawl.Option) *crawl.NewsExtractor {
	opts = append([]crawl.Option{
		crawl.WithRetryDelays(nil),
		crawl.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return crawl.NewNewsExtractor(fetcher, parser, opts...)
}

func TestNewsExtractor_ExtractURL(t *testing.T) {
	t.Parallel()

	t.Run("extracts a single article", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/news/1": "Body text",
		}), echoParser())

		articles, err := e.ExtractURL(context.Background(), "https://example.com/news/1")

		require.NoError(t, err)
		require.Len(t, articles, 1)
		a := articles[0]
		assert.Equal(t, "Story at https://example.com/news/1", a.Title)
		assert.Equal(t, "Body text", a.Content)
		assert.Equal(t, "https://example.com/news/1", a.URL)
		assert.Equal(t, "Jane Doe", a.Author)
		assert.Equal(t, fixedNow, a.ExtractedAt)
		assert.Equal(t, newsextract.HashContent("Body text"), a.ContentHash)
		assert.NotEmpty(t, a.ID)
	})

	t.Run("parses with the final URL after redirects", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*newsextract.FetchResult, error) {
				return &newsextract.FetchResult{URL: "https://example.com/final", HTML: "Body"}, nil
			},
		}
		var parsedURL string
		parser := &mock.ArticleParser{
			ParseArticleDataFn: func(html, url string) *newsextract.ArticleData {
				parsedURL = url
				return &newsextract.ArticleData{Title: "T", Content: html}
			},
		}

		articles, err := newExtractor(fetcher, parser).ExtractURL(context.Background(), "https://example.com/start")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/final", parsedURL)
		assert.Equal(t, "https://example.com/final", articles[0].URL)
	})

	t.Run("rejects invalid URLs without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*newsextract.FetchResult, error) {
				t.Fatal("unexpected fetch")
				return nil, nil
			},
		}

		_, err := newExtractor(fetcher, echoParser()).ExtractURL(context.Background(), "https://www.facebook.com/post/1")

		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})

	t.Run("returns EINVALID when page has no content", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/empty": "",
		}), echoParser())

		_, err := e.ExtractURL(context.Background(), "https://example.com/empty")

		require.Error(t, err)
		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*newsextract.FetchResult, error) {
				if calls.Add(1) == 1 {
					return nil, errors.New("connection reset")
				}
				return &newsextract.FetchResult{URL: url, HTML: "Body"}, nil
			},
		}
		e := crawl.NewNewsExtractor(fetcher, echoParser(), crawl.WithRetryDelays([]time.Duration{time.Millisecond}))

		articles, err := e.ExtractURL(context.Background(), "https://example.com/news/1")

		require.NoError(t, err)
		assert.Len(t, articles, 1)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("waits on rate limiter per host", func(t *testing.T) {
		t.Parallel()

		var domains []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				domains = append(domains, domain)
				return nil
			},
		}
		e := newExtractor(htmlFetcher(map[string]string{
			"https://www.example.com/a": "Body",
		}), echoParser(), crawl.WithRateLimiter(limiter))

		_, err := e.ExtractURL(context.Background(), "https://www.example.com/a")

		require.NoError(t, err)
		assert.Equal(t, []string{"example.com"}, domains)
	})

	t.Run("extracts feed detected by URL", func(t *testing.T) {
		t.Parallel()

		published := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
		feeds := &mock.FeedParser{
			ParseFeedFn: func(_ context.Context, body, feedURL string) (*newsextract.Feed, error) {
				assert.Equal(t, "<rss/>", body)
				assert.Equal(t, "https://www.example.com/rss.xml", feedURL)
				return &newsextract.Feed{Entries: []*newsextract.FeedEntry{
					{Title: "First", URL: "https://example.com/1", ContentHTML: "<p>One</p>", Summary: "<b>S</b>", Author: "A", PublishedAt: &published, Tags: []string{"world"}},
					{Title: "No body", URL: "https://example.com/2"},
					{Title: "Third", URL: "https://example.com/3", ContentHTML: "<p>Three</p>"},
				}}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "md(" + html + ")", nil
			},
		}
		parser := &mock.ArticleParser{
			ParseArticleDataFn: func(string, string) *newsextract.ArticleData {
				t.Fatal("feed must not be parsed as an article page")
				return nil
			},
		}
		e := newExtractor(htmlFetcher(map[string]string{
			"https://www.example.com/rss.xml": "<rss/>",
		}), parser, crawl.WithFeedParser(feeds), crawl.WithConverter(converter))

		articles, err := e.ExtractURL(context.Background(), "https://www.example.com/rss.xml")

		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "First", articles[0].Title)
		assert.Equal(t, "md(<p>One</p>)", articles[0].Content)
		assert.Equal(t, "md(<b>S</b>)", articles[0].Summary)
		assert.Equal(t, "example.com", articles[0].Source)
		assert.Equal(t, &published, articles[0].PublishedAt)
		assert.Equal(t, []string{"world"}, articles[0].Tags)
		assert.Equal(t, newsextract.LanguageUnknown, articles[0].Language)
		assert.Equal(t, "Third", articles[1].Title)
	})

	t.Run("extracts feed detected by content type", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*newsextract.FetchResult, error) {
				return &newsextract.FetchResult{URL: url, HTML: "<feed/>", ContentType: "application/atom+xml"}, nil
			},
		}
		feeds := &mock.FeedParser{
			ParseFeedFn: func(context.Context, string, string) (*newsextract.Feed, error) {
				return &newsextract.Feed{Entries: []*newsextract.FeedEntry{
					{Title: "Entry", URL: "https://example.com/e", ContentHTML: "Plain body"},
				}}, nil
			},
		}

		articles, err := newExtractor(fetcher, echoParser(), crawl.WithFeedParser(feeds)).
			ExtractURL(context.Background(), "https://example.com/latest")

		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "Plain body", articles[0].Content)
	})

	t.Run("treats feed URLs as pages without a feed parser", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/feed": "Body",
		}), echoParser())

		articles, err := e.ExtractURL(context.Background(), "https://example.com/feed")

		require.NoError(t, err)
		assert.Len(t, articles, 1)
	})

	t.Run("enriches and stores articles", func(t *testing.T) {
		t.Parallel()

		var stored, written []string
		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/a": "Body",
		}), echoParser(),
			crawl.WithLanguageProcessor(&crawl.LanguageProcessor{
				Detector: &mock.LanguageDetector{DetectLanguageFn: func(string) string { return "en" }},
			}),
			crawl.WithAnalyzer(&mock.Analyzer{
				AnalyzeFn: func(context.Context, string, string) (*newsextract.Analysis, error) {
					return &newsextract.Analysis{
						Entities:  map[string][]string{"ORG": {"ACME"}},
						Sentiment: newsextract.Sentiment{Label: "positive", Score: 0.8},
						Summary:   "Short.",
					}, nil
				},
			}),
			crawl.WithArticles(&mock.ArticleService{
				CreateArticleFn: func(_ context.Context, a *newsextract.Article) error {
					stored = append(stored, a.ID)
					return nil
				},
			}),
			crawl.WithWriter(&mock.ArticleWriter{
				CreateArticleFn: func(_ context.Context, a *newsextract.Article) error {
					written = append(written, a.ID)
					return nil
				},
			}),
		)

		articles, err := e.ExtractURL(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		a := articles[0]
		assert.Equal(t, "en", a.Language)
		assert.True(t, a.NLPProcessed)
		assert.Equal(t, []string{"ACME"}, a.Entities["ORG"])
		assert.Equal(t, "positive", a.Sentiment.Label)
		assert.Equal(t, "Short.", a.NLPSummary)
		assert.Equal(t, []string{a.ID}, stored)
		assert.Equal(t, []string{a.ID}, written)
	})

	t.Run("keeps article when analysis fails", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/a": "Body",
		}), echoParser(), crawl.WithAnalyzer(&mock.Analyzer{
			AnalyzeFn: func(context.Context, string, string) (*newsextract.Analysis, error) {
				return nil, errors.New("model unavailable")
			},
		}))

		articles, err := e.ExtractURL(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.False(t, articles[0].NLPProcessed)
		assert.Nil(t, articles[0].Sentiment)
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/a": "Body",
		}), echoParser(), crawl.WithArticles(&mock.ArticleService{
			CreateArticleFn: func(context.Context, *newsextract.Article) error {
				return errors.New("disk full")
			},
		}))

		_, err := e.ExtractURL(context.Background(), "https://example.com/a")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestNewsExtractor_ExtractFeed(t *testing.T) {
	t.Parallel()

	entries := func(n int) []*newsextract.FeedEntry {
		out := make([]*newsextract.FeedEntry, n)
		for i := range out {
			out[i] = &newsextract.FeedEntry{
				Title:       "Entry",
				URL:         "https://example.com/" + string(rune('a'+i)),
				ContentHTML: "Body",
			}
		}
		return out
	}
	feeds := &mock.FeedParser{
		ParseFeedFn: func(context.Context, string, string) (*newsextract.Feed, error) {
			return &newsextract.Feed{Entries: entries(5)}, nil
		},
	}
	fetcher := htmlFetcher(map[string]string{"https://example.com/feed": "<rss/>"})

	t.Run("limits number of entries", func(t *testing.T) {
		t.Parallel()

		articles, err := newExtractor(fetcher, echoParser(), crawl.WithFeedParser(feeds)).
			ExtractFeed(context.Background(), "https://example.com/feed", 2)

		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "https://example.com/a", articles[0].URL)
		assert.Equal(t, "https://example.com/b", articles[1].URL)
	})

	t.Run("returns all entries without a limit", func(t *testing.T) {
		t.Parallel()

		articles, err := newExtractor(fetcher, echoParser(), crawl.WithFeedParser(feeds)).
			ExtractFeed(context.Background(), "https://example.com/feed", 0)

		require.NoError(t, err)
		assert.Len(t, articles, 5)
	})

	t.Run("applies configured feed limit to feed URLs", func(t *testing.T) {
		t.Parallel()

		articles, err := newExtractor(fetcher, echoParser(), crawl.WithFeedParser(feeds), crawl.WithFeedLimit(3)).
			ExtractURL(context.Background(), "https://example.com/feed")

		require.NoError(t, err)
		assert.Len(t, articles, 3)
	})

	t.Run("filters entries before applying the limit", func(t *testing.T) {
		t.Parallel()

		filter, err := newsextract.NewURLFilter(nil, []string{`/[ab]$`})
		require.NoError(t, err)

		articles, err := newExtractor(fetcher, echoParser(), crawl.WithFeedParser(feeds), crawl.WithEntryFilter(filter)).
			ExtractFeed(context.Background(), "https://example.com/feed", 2)

		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "https://example.com/c", articles[0].URL)
		assert.Equal(t, "https://example.com/d", articles[1].URL)
	})

	t.Run("returns ENOTIMPLEMENTED without a feed parser", func(t *testing.T) {
		t.Parallel()

		_, err := newExtractor(fetcher, echoParser()).
			ExtractFeed(context.Background(), "https://example.com/feed", 0)

		assert.Equal(t, newsextract.ENOTIMPLEMENTED, newsextract.ErrorCode(err))
	})

	t.Run("wraps parse errors", func(t *testing.T) {
		t.Parallel()

		broken := &mock.FeedParser{
			ParseFeedFn: func(context.Context, string, string) (*newsextract.Feed, error) {
				return nil, newsextract.Errorf(newsextract.EINVALID, "not a feed")
			},
		}

		_, err := newExtractor(fetcher, echoParser(), crawl.WithFeedParser(broken)).
			ExtractFeed(context.Background(), "https://example.com/feed", 0)

		require.Error(t, err)
		assert.Equal(t, newsextract.EINVALID, newsextract.ErrorCode(err))
	})
}

func TestNewsExtractor_ExtractURLs(t *testing.T) {
	t.Parallel()

	t.Run("preserves input order and skips failures", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/1": "One",
			"https://example.com/3": "Three",
			"https://example.com/4": "Four",
		}), echoParser(), crawl.WithConcurrency(3))

		articles, err := e.ExtractURLs(context.Background(), []string{
			"https://example.com/1",
			"https://example.com/2",
			"https://example.com/3",
			"https://example.com/4",
		})

		require.NoError(t, err)
		require.Len(t, articles, 3)
		assert.Equal(t, "One", articles[0].Content)
		assert.Equal(t, "Three", articles[1].Content)
		assert.Equal(t, "Four", articles[2].Content)
	})

	t.Run("fetches duplicate URLs once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*newsextract.FetchResult, error) {
				calls.Add(1)
				return &newsextract.FetchResult{URL: url, HTML: "Body"}, nil
			},
		}

		articles, err := newExtractor(fetcher, echoParser()).ExtractURLs(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/a/",
			"https://example.com/a#comments",
			"https://example.com/b",
		})

		require.NoError(t, err)
		assert.Len(t, articles, 2)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("keeps every distinct URL in a large batch", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*newsextract.FetchResult, error) {
				calls.Add(1)
				return &newsextract.FetchResult{URL: url, HTML: "Body"}, nil
			},
		}
		urls := make([]string, 3000)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://example.com/news/%d", i)
		}

		articles, err := newExtractor(fetcher, echoParser(), crawl.WithConcurrency(16)).ExtractURLs(context.Background(), urls)

		require.NoError(t, err)
		assert.Len(t, articles, len(urls))
		assert.Equal(t, int32(len(urls)), calls.Load())
	})

	t.Run("limits concurrent fetches", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*newsextract.FetchResult, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				inFlight.Add(-1)
				return &newsextract.FetchResult{URL: url, HTML: "Body"}, nil
			},
		}
		var urls []string
		for i := range 8 {
			urls = append(urls, "https://example.com/"+string(rune('a'+i)))
		}

		articles, err := newExtractor(fetcher, echoParser(), crawl.WithConcurrency(2)).
			ExtractURLs(context.Background(), urls)

		require.NoError(t, err)
		assert.Len(t, articles, 8)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var events []crawl.ProgressEvent
		e := newExtractor(htmlFetcher(map[string]string{
			"https://example.com/ok": "Body",
		}), echoParser(), crawl.WithProgress(func(event crawl.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
		}))

		_, err := e.ExtractURLs(context.Background(), []string{
			"https://example.com/ok",
			"https://example.com/missing",
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)

		var completed, failed int
		for _, ev := range events[1:3] {
			switch ev.Type {
			case crawl.ProgressCompleted:
				completed++
			case crawl.ProgressFailed:
				failed++
				assert.Equal(t, "https://example.com/missing", ev.URL)
				assert.Equal(t, newsextract.EFETCH, newsextract.ErrorCode(ev.Error))
			}
		}
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, failed)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newExtractor(htmlFetcher(nil), echoParser()).
			ExtractURLs(ctx, []string{"https://example.com/a"})

		require.ErrorIs(t, err, context.Canceled)
	})
}
