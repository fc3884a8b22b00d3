package mock

import "github.com/wikimeta/commonsmeta"

var _ commonsmeta.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of commonsmeta.Extractor.
type Extractor struct {
	ExtractFn func(rev *commonsmeta.Revision) (*commonsmeta.Metadata, error)
}

func (e *Extractor) Extract(rev *commonsmeta.Revision) (*commonsmeta.Metadata, error) {
	return e.ExtractFn(rev)
}
