package main

import (
	"fmt"

	"github.com/wikimeta/commonsmeta"
	"github.com/wikimeta/commonsmeta/bloom"
	"github.com/wikimeta/commonsmeta/fetch"
)

// Bloom filter sizing for batch deduplication.
const (
	batchExpectedTitles    = 10000
	batchFalsePositiveRate = 0.01
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	pipeline := &fetch.Pipeline{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Seen:        bloom.NewFilter(batchExpectedTitles, batchFalsePositiveRate),
		Concurrency: c.Concurrency,
	}

	progress := func(event fetch.ProgressEvent) {
		switch event.Type {
		case fetch.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "fetched %d/%d %s\n", event.Completed, event.Total, event.Title)
		case fetch.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "skipped %d/%d %s (duplicate)\n", event.Completed, event.Total, event.Title)
		case fetch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "failed %d/%d %s: %s\n", event.Completed, event.Total, event.Title,
				commonsmeta.ErrorMessage(event.Error))
		}
	}

	result, err := pipeline.Run(deps.Ctx, c.Titles, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", commonsmeta.ErrorMessage(err))
		return err
	}

	for _, page := range result.Pages {
		if page == nil {
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  categories=%d languages=%d author=%q\n",
			page.Title, len(page.Metadata.Categories), len(page.Metadata.Descriptions), page.Metadata.Author)
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d, skipped %d, failed %d.\n",
		result.Fetched, result.Skipped, result.Failed)

	return nil
}
