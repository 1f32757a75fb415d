package main

import (
	"fmt"

	"github.com/fwojciec/newsextract"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return newsextract.Errorf(newsextract.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, c.ID); err != nil {
		if newsextract.ErrorCode(err) == newsextract.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'newsextract list' to see stored articles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %q\n", c.ID)
	return nil
}
