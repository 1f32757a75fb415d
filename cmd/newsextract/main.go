package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/cascade"
	"github.com/fwojciec/newsextract/crawl"
	"github.com/fwojciec/newsextract/distiller"
	nefs "github.com/fwojciec/newsextract/fs"
	"github.com/fwojciec/newsextract/gemini"
	"github.com/fwojciec/newsextract/gofeed"
	"github.com/fwojciec/newsextract/goquery"
	"github.com/fwojciec/newsextract/htmltomarkdown"
	nehttp "github.com/fwojciec/newsextract/http"
	"github.com/fwojciec/newsextract/readability"
	"github.com/fwojciec/newsextract/rod"
	neslog "github.com/fwojciec/newsextract/slog"
	"github.com/fwojciec/newsextract/sqlite"
	"github.com/fwojciec/newsextract/trafilatura"
	"github.com/fwojciec/newsextract/whatlanggo"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	ArticleService newsextract.ArticleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsextract"),
		kong.Description("Extract news articles from web pages and feeds."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"model":     gemini.DefaultModel,
			"userAgent": nehttp.DefaultUserAgent,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsextract --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	deps.Logger = newLogger(stderr, cli.Verbose)

	// Extraction only needs the database when results are saved.
	if cmd != "extract" || cli.Extract.Save {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set NEWSEXTRACT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.ArticleService = sqlite.NewArticleService(m.DB)
		deps.Articles = m.ArticleService
	}

	if cmd == "extract" {
		extractor, closeFn, err := m.newExtractor(ctx, &cli.Extract, deps)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Extractor = extractor
	}

	return kongCtx.Run(deps)
}

// newExtractor wires the extraction pipeline for the extract command.
// The returned function releases the fetcher.
func (m *Main) newExtractor(ctx context.Context, c *ExtractCmd, deps *Dependencies) (*crawl.NewsExtractor, func(), error) {
	logger := deps.Logger

	filter, err := newsextract.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return nil, nil, err
	}

	var fetcher newsextract.Fetcher
	if c.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithUserAgent(c.UserAgent))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = nehttp.NewFetcher(nehttp.WithTimeout(c.Timeout), nehttp.WithUserAgent(c.UserAgent))
	}
	fetcher = neslog.NewLoggingFetcher(fetcher, logger)

	registry := cascade.NewRegistry(
		neslog.NewLoggingStrategy(trafilatura.NewExtractor(), logger),
		neslog.NewLoggingStrategy(readability.NewExtractor(), logger),
		neslog.NewLoggingStrategy(distiller.NewExtractor(), logger),
		neslog.NewLoggingStrategy(goquery.NewStructuralExtractor(), logger),
	)
	controller := cascade.NewController(registry,
		cascade.WithMode(newsextract.ExtractionMode(c.Mode)),
		cascade.WithFallback(c.Fallback),
		cascade.WithLogger(logger),
	)
	parser := goquery.NewParser(controller, goquery.NewMetadataExtractor(), goquery.WithParserLogger(logger))

	language := &crawl.LanguageProcessor{
		Detector: whatlanggo.NewDetector(),
		Logger:   logger,
	}

	opts := []crawl.Option{
		crawl.WithConcurrency(c.Concurrency),
		crawl.WithFeedLimit(c.Limit),
		crawl.WithEntryFilter(filter),
		crawl.WithRateLimiter(crawl.NewDomainLimiter(c.RateLimit)),
		crawl.WithFeedParser(neslog.NewLoggingFeedParser(gofeed.NewParser(), logger)),
		crawl.WithConverter(htmltomarkdown.NewConverter()),
		crawl.WithLanguageProcessor(language),
		crawl.WithLogger(logger),
	}

	if c.Lang != "" || c.NLP {
		client, err := newGeminiClient(ctx, c.GeminiAPIKey, deps.Stderr)
		if err != nil {
			_ = fetcher.Close()
			return nil, nil, err
		}

		if c.Lang != "" {
			language.Translator = neslog.NewLoggingTranslator(gemini.NewTranslator(client.Models, c.Model), logger)
			language.TargetLang = c.Lang
		}

		if c.NLP {
			tokenCounter, err := gemini.NewTokenCounter(gemini.TokenizerModel)
			if err != nil {
				_ = fetcher.Close()
				return nil, nil, fmt.Errorf("failed to create token counter: %w", err)
			}
			opts = append(opts, crawl.WithAnalyzer(gemini.NewAnalyzer(client.Models, c.Model,
				gemini.WithTokenBudget(tokenCounter, gemini.DefaultMaxTokens),
			)))
		}
	}

	if c.Save {
		opts = append(opts, crawl.WithArticles(m.ArticleService))
	}
	if c.Output != "" {
		opts = append(opts, crawl.WithWriter(nefs.NewWriter(c.Output)))
	}
	if c.Progress {
		opts = append(opts, crawl.WithProgress(progressPrinter(deps.Stderr)))
	}

	closeFn := func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("failed to close fetcher", "err", err)
		}
	}
	return crawl.NewNewsExtractor(fetcher, parser, opts...), closeFn, nil
}

func newGeminiClient(ctx context.Context, apiKey string, stderr io.Writer) (*genai.Client, error) {
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func progressPrinter(w io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(w, "[%d/%d] %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "[%d/%d] failed %s: %s\n", event.Completed, event.Total,
				crawl.TruncateURL(event.URL, 60), newsextract.ErrorMessage(event.Error))
		}
	}
}

func defaultDBPath() string {
	if path := os.Getenv("NEWSEXTRACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsextract.db"
	}
	dir := filepath.Join(home, ".newsextract")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newsextract.db")
}
