package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/newsextract"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		if newsextract.ErrorCode(err) == newsextract.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'newsextract list' to see stored articles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsextract.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, article)
	}

	fmt.Fprintln(deps.Stdout, newsextract.FormatArticles([]*newsextract.Article{article}))
	if len(article.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "\nTags: %s\n", strings.Join(article.Tags, ", "))
	}
	if article.NLPProcessed {
		if article.NLPSummary != "" {
			fmt.Fprintf(deps.Stdout, "\nSummary: %s\n", article.NLPSummary)
		}
		if article.Sentiment != nil {
			fmt.Fprintf(deps.Stdout, "Sentiment: %s (%.2f)\n", article.Sentiment.Label, article.Sentiment.Score)
		}
	}
	return nil
}
