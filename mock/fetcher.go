package mock

import (
	"context"

	"github.com/wikimeta/commonsmeta"
)

var _ commonsmeta.RevisionFetcher = (*RevisionFetcher)(nil)

// RevisionFetcher is a mock implementation of commonsmeta.RevisionFetcher.
type RevisionFetcher struct {
	FetchRevisionFn func(ctx context.Context, title string) (*commonsmeta.Revision, error)
}

func (f *RevisionFetcher) FetchRevision(ctx context.Context, title string) (*commonsmeta.Revision, error) {
	return f.FetchRevisionFn(ctx, title)
}
