package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/newsextract"
	"github.com/fwojciec/newsextract/crawl"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	articles, err := deps.Extractor.ExtractURLs(deps.Ctx, c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsextract.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no articles extracted. Run with --verbose to see why each URL failed.")
		return newsextract.Errorf(newsextract.EINVALID, "no articles extracted")
	}

	if c.JSON {
		if err := writeJSON(deps.Stdout, articles); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsextract.ErrorMessage(err))
			return err
		}
	} else {
		fmt.Fprintln(deps.Stdout, newsextract.FormatArticles(articles))
	}

	fmt.Fprintf(deps.Stderr, "Extracted %s\n", crawl.Summarize(articles))
	if c.Save {
		fmt.Fprintf(deps.Stderr, "Saved %d articles to the database\n", len(articles))
	}
	if c.Output != "" {
		fmt.Fprintf(deps.Stderr, "Wrote %d articles to %s\n", len(articles), c.Output)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
