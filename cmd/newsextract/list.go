package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/newsextract"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := newsextract.ArticleFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Source != "" {
		filter.Source = &c.Source
	}
	if c.Language != "" {
		filter.Language = &c.Language
	}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}
	if c.Since > 0 {
		since := time.Now().Add(-c.Since).UTC()
		filter.Since = &since
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsextract.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'newsextract extract --save' to store some.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-8s %s  %s\n",
			a.ID, listDate(a), a.Language, a.Source, a.TitlePreview(60))
	}

	return nil
}

// listDate prefers the publication date and falls back to the
// extraction date.
func listDate(a *newsextract.Article) string {
	if a.PublishedAt != nil {
		return a.PublishedAt.Format(time.DateOnly)
	}
	return a.ExtractedAt.Format(time.DateOnly)
}
