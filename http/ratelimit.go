package http

import (
	"context"

	"github.com/wikimeta/commonsmeta"
	"golang.org/x/time/rate"
)

// Ensure Limiter implements commonsmeta.Limiter at compile time.
var _ commonsmeta.Limiter = (*Limiter)(nil)

// Limiter paces requests to the API endpoint using a token bucket.
// All requests share a single bucket since the fetcher talks to one host.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second with a
// burst of 1 (no bursting allowed).
func NewLimiter(rps float64) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the rate limit allows a request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
