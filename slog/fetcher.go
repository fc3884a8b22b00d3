// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/wikimeta/commonsmeta"
)

// Ensure LoggingFetcher implements commonsmeta.RevisionFetcher.
var _ commonsmeta.RevisionFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a RevisionFetcher with request logging.
type LoggingFetcher struct {
	next   commonsmeta.RevisionFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next commonsmeta.RevisionFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchRevision delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) FetchRevision(ctx context.Context, title string) (rev *commonsmeta.Revision, err error) {
	defer func(begin time.Time) {
		var bytes int
		if rev != nil {
			bytes = len(rev.Wikitext) + len(rev.ParseTree)
		}
		f.logger.Info("fetch revision",
			"title", title,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchRevision(ctx, title)
}
