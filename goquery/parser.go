package goquery

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsextract"
)

// Ensure Parser implements newsextract.ArticleParser at compile time.
var _ newsextract.ArticleParser = (*Parser)(nil)

// Parser turns raw article HTML into title, content and metadata.
type Parser struct {
	content  newsextract.ContentExtractor
	metadata newsextract.MetadataExtractor
	logger   *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithParserLogger sets the logger that records recovered pass failures.
func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a Parser that recovers content with content and
// metadata with metadata.
func NewParser(content newsextract.ContentExtractor, metadata newsextract.MetadataExtractor, opts ...ParserOption) *Parser {
	p := &Parser{
		content:  content,
		metadata: metadata,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseArticleData parses rawHTML once and shares the tree between the
// title, content and metadata passes. It never returns nil. A panic in any
// pass is logged at debug and leaves that part at its default value.
func (p *Parser) ParseArticleData(rawHTML, pageURL string) *newsextract.ArticleData {
	data := &newsextract.ArticleData{
		Title:    newsextract.UnknownTitle,
		Metadata: newsextract.NewMetadata(),
	}
	page := Parse(rawHTML, pageURL)

	p.safely("title", pageURL, func() {
		data.Title = ExtractTitle(goquery.NewDocumentFromNode(page.Root))
	})
	p.safely("content", pageURL, func() {
		data.Content = p.content.ExtractContent(page)
	})
	p.safely("metadata", pageURL, func() {
		if meta := p.metadata.ExtractMetadata(page); meta != nil {
			data.Metadata = meta
		}
	})
	return data
}

func (p *Parser) safely(pass, pageURL string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("parse pass failed", "pass", pass, "url", pageURL, "panic", r)
		}
	}()
	fn()
}
