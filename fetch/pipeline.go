// Package fetch orchestrates batch metadata extraction: it fetches
// revisions for many file titles concurrently, runs the extractor on each,
// and reports progress to the caller.
package fetch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/wikimeta/commonsmeta"
	"github.com/wikimeta/commonsmeta/bloom"
	"golang.org/x/sync/errgroup"
)

// Pipeline fetches and extracts metadata for batches of file titles.
type Pipeline struct {
	Fetcher   commonsmeta.RevisionFetcher
	Extractor commonsmeta.Extractor

	// Seen, when set, skips titles already processed in this or an earlier
	// run. The filter is only touched from the dispatch goroutine; it is
	// not safe for concurrent use.
	Seen *bloom.Filter

	// Concurrency bounds the number of in-flight fetches. Defaults to 10.
	Concurrency int
}

// Result holds the outcome of a batch run.
type Result struct {
	// Pages has one entry per input title, in input order. Entries for
	// failed or skipped titles are nil.
	Pages []*commonsmeta.Page

	Fetched int
	Failed  int
	Skipped int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Title     string
	Error     error
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single title.
type pageResult struct {
	position int
	title    string
	page     *commonsmeta.Page
	skipped  bool
	err      error
}

// Run processes all titles and returns the collected pages. A failure on
// one title never aborts the batch; it is counted and reported through the
// progress callback. The returned error covers setup problems only.
func (p *Pipeline) Run(ctx context.Context, titles []string, progress ProgressFunc) (*Result, error) {
	if p.Fetcher == nil || p.Extractor == nil {
		return nil, commonsmeta.Errorf(commonsmeta.EINVALID, "pipeline requires a fetcher and an extractor")
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	total := len(titles)
	resultCh := make(chan pageResult, total)

	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, title := range titles {
			// Dedupe serially here; the bloom filter is not thread-safe.
			if p.Seen != nil {
				if p.Seen.Seen(title) {
					resultCh <- pageResult{position: i, title: title, skipped: true}
					continue
				}
				p.Seen.Add(title)
			}

			i, title := i, title
			g.Go(func() error {
				resultCh <- p.process(gctx, i, title)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{
		Pages: make([]*commonsmeta.Page, total),
	}

	for r := range resultCh {
		completed.Add(1)

		switch {
		case r.skipped:
			result.Skipped++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressSkipped,
					Completed: int(completed.Load()),
					Total:     total,
					Title:     r.title,
				})
			}
		case r.err != nil:
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Title:     r.title,
					Error:     r.err,
				})
			}
		default:
			result.Fetched++
			result.Pages[r.position] = r.page
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Load()),
					Total:     total,
					Title:     r.title,
				})
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

// process fetches and extracts a single title.
func (p *Pipeline) process(ctx context.Context, position int, title string) pageResult {
	rev, err := p.Fetcher.FetchRevision(ctx, title)
	if err != nil {
		return pageResult{position: position, title: title, err: err}
	}

	meta, err := p.Extractor.Extract(rev)
	if err != nil {
		return pageResult{position: position, title: title, err: err}
	}

	return pageResult{
		position: position,
		title:    title,
		page: &commonsmeta.Page{
			Title:       title,
			Metadata:    meta,
			ContentHash: computeHash(rev.Wikitext),
			FetchedAt:   time.Now().UTC(),
		},
	}
}

// computeHash computes a hash of the content using xxhash. The hash is
// exposed on the page so external caches can detect changed revisions.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
