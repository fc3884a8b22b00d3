package mock

import (
	"context"

	"github.com/wikimeta/commonsmeta"
)

var _ commonsmeta.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of commonsmeta.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
