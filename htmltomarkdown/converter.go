// Package htmltomarkdown converts feed entry HTML into Markdown text
// using the html-to-markdown library.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/newsextract"
)

// Ensure Converter implements newsextract.Converter at compile time.
var _ newsextract.Converter = (*Converter)(nil)

// blankRuns matches three or more newlines left by removed elements.
var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter wraps html-to-markdown to convert HTML fragments to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and images against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	c := &Converter{conv: conv}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML fragment into Markdown. Fragments without
// markup come back trimmed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", newsextract.Errorf(newsextract.EINVALID, "empty HTML input")
	}

	var result string
	var err error
	if c.domain != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(c.domain))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(blankRuns.ReplaceAllString(result, "\n\n")), nil
}
