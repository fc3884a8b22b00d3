package main

import (
	"fmt"

	"github.com/wikimeta/commonsmeta"
)

// Run executes the categories command. It only needs the raw wikitext, so
// the parse tree is fetched but never walked.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	rev, err := deps.Fetcher.FetchRevision(deps.Ctx, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", commonsmeta.ErrorMessage(err))
		return err
	}

	for _, cat := range commonsmeta.ExtractCategories(rev.Wikitext) {
		fmt.Fprintln(deps.Stdout, cat)
	}

	return nil
}
