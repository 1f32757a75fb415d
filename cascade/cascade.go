// Package cascade runs content strategies in preference order until one
// of them recovers enough article text from a page.
package cascade

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/goquery"
)

// Ensure Controller implements newsextract.ContentExtractor at compile time.
var _ newsextract.ContentExtractor = (*Controller)(nil)

// autoOrder is the strategy preference of ModeAuto.
var autoOrder = []string{
	newsextract.StrategyTrafilatura,
	newsextract.StrategyReadability,
	newsextract.StrategyDistiller,
	newsextract.StrategyStructural,
}

// Controller resolves an extraction mode into an ordered plan of
// strategies once, at construction, and runs that plan for every page.
type Controller struct {
	registry *Registry
	mode     newsextract.ExtractionMode
	fallback bool
	logger   *slog.Logger

	plan []newsextract.ContentStrategy
}

// Option configures a Controller.
type Option func(*Controller)

// WithMode sets the extraction mode. Defaults to newsextract.ModeAuto.
func WithMode(mode newsextract.ExtractionMode) Option {
	return func(c *Controller) {
		c.mode = mode
	}
}

// WithFallback controls whether a pinned external mode falls back to
// structural extraction. Defaults to true.
func WithFallback(enabled bool) Option {
	return func(c *Controller) {
		c.fallback = enabled
	}
}

// WithLogger sets the logger for skipped strategies and exhausted plans.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a Controller over the strategies in registry.
func NewController(registry *Registry, opts ...Option) *Controller {
	c := &Controller{
		registry: registry,
		mode:     newsextract.ModeAuto,
		fallback: true,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.plan = c.resolve()
	return c
}

// resolve maps the mode onto registered strategies. Strategy names that
// are not registered are dropped from the plan.
func (c *Controller) resolve() []newsextract.ContentStrategy {
	var names []string
	switch c.mode {
	case newsextract.ModeAuto:
		names = autoOrder
	case newsextract.ModeTrafilatura, newsextract.ModeReadability, newsextract.ModeDistiller:
		names = []string{string(c.mode)}
		if c.fallback {
			names = append(names, newsextract.StrategyStructural)
		}
	default:
		names = []string{newsextract.StrategyStructural}
	}

	plan := make([]newsextract.ContentStrategy, 0, len(names))
	for _, name := range names {
		s, ok := c.registry.Lookup(name)
		if !ok {
			c.logger.Debug("strategy not available", "strategy", name)
			continue
		}
		plan = append(plan, s)
	}
	return plan
}

// Plan returns the names of the strategies the controller runs, in order.
func (c *Controller) Plan() []string {
	names := make([]string, len(c.plan))
	for i, s := range c.plan {
		names[i] = s.Name()
	}
	return names
}

// ExtractContent runs the plan against page and returns the cleaned text
// of the first strategy whose output is longer than
// newsextract.MinContentLength. Failing strategies are skipped. It returns
// "" when every strategy failed or came up short.
func (c *Controller) ExtractContent(page *newsextract.Page) string {
	if page == nil {
		return ""
	}
	for _, s := range c.plan {
		text, err := run(s, page)
		if err != nil {
			c.logger.Debug("strategy failed",
				"strategy", s.Name(),
				"url", page.URL,
				"code", newsextract.ErrorCode(err),
				"err", err,
			)
			continue
		}
		if !newsextract.HasSufficientContent(text) {
			c.logger.Debug("insufficient content",
				"strategy", s.Name(),
				"url", page.URL,
				"chars", utf8.RuneCountInString(strings.TrimSpace(text)),
			)
			continue
		}
		return goquery.CleanContent(text)
	}
	c.logger.Warn("all extraction strategies failed",
		"url", page.URL,
		"mode", string(c.mode),
		"plan", c.Plan(),
	)
	return ""
}

// run calls the strategy and converts a panic into an error.
func run(s newsextract.ContentStrategy, page *newsextract.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newsextract.Errorf(newsextract.EINTERNAL, "strategy %s panicked: %v", s.Name(), r)
		}
	}()
	text, err = s.Extract(page)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.Name(), err)
	}
	return text, nil
}
