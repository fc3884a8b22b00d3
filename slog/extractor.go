package slog

import (
	"log/slog"
	"time"

	"github.com/wikimeta/commonsmeta"
)

// Ensure LoggingExtractor implements commonsmeta.Extractor.
var _ commonsmeta.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with result logging.
type LoggingExtractor struct {
	next   commonsmeta.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next commonsmeta.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(rev *commonsmeta.Revision) (meta *commonsmeta.Metadata, err error) {
	defer func(begin time.Time) {
		var categories, languages int
		if meta != nil {
			categories = len(meta.Categories)
			languages = len(meta.Descriptions)
		}
		var title string
		if rev != nil {
			title = rev.Title
		}
		e.logger.Info("extract metadata",
			"title", title,
			"categories", categories,
			"languages", languages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(rev)
}
