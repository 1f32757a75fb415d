package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Articles  newsextract.ArticleService
	Extractor *crawl.NewsExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `name:"db" help:"Database path (defaults to NEWSEXTRACT_DB or ~/.newsextract/newsextract.db)"`

	Extract ExtractCmd `cmd:"" help:"Extract articles from page or feed URLs"`
	List    ListCmd    `cmd:"" help:"List stored articles"`
	Show    ShowCmd    `cmd:"" help:"Show a stored article"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored article"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs         []string      `arg:"" name:"url" help:"Article or feed URLs"`
	Mode         string        `short:"m" default:"auto" enum:"auto,structural,custom,trafilatura,readability,distiller" help:"Extraction mode (${enum})"`
	Fallback     bool          `default:"true" negatable:"" help:"Fall back to structural extraction when the selected strategy fails"`
	Concurrency  int           `short:"c" default:"5" help:"Concurrent extraction limit"`
	RateLimit    float64       `name:"rate" default:"1.0" help:"Requests per second per host"`
	Timeout      time.Duration `default:"30s" help:"Per-request fetch timeout"`
	Limit        int           `short:"l" default:"0" help:"Maximum entries taken from each feed (0 for all)"`
	Include      []string      `name:"include" help:"Only take feed entries whose URL matches this regex (repeatable)"`
	Exclude      []string      `name:"exclude" help:"Skip feed entries whose URL matches this regex (repeatable)"`
	Browser      bool          `short:"b" help:"Render pages in a headless browser"`
	UserAgent    string        `name:"user-agent" default:"${userAgent}" help:"User-Agent sent to news sites"`
	Lang         string        `name:"lang" help:"Translate articles into this ISO 639-1 language"`
	NLP          bool          `name:"nlp" help:"Extract entities, sentiment and a summary"`
	Model        string        `default:"${model}" help:"Gemini model for translation and analysis"`
	GeminiAPIKey string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Output       string        `short:"o" type:"path" help:"Write articles as Markdown files under this directory"`
	Save         bool          `short:"s" help:"Store articles in the database"`
	JSON         bool          `name:"json" help:"Print articles as JSON"`
	Progress     bool          `short:"p" help:"Report per-URL progress on stderr"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source   string        `help:"Only articles from this source host"`
	Language string        `help:"Only articles in this language"`
	Tag      string        `help:"Only articles with this tag"`
	Since    time.Duration `help:"Only articles published within this duration (e.g. 24h)"`
	Limit    int           `short:"n" default:"20" help:"Maximum number of articles"`
	Offset   int           `help:"Number of articles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Article ID"`
	JSON bool   `name:"json" help:"Print the article as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}
