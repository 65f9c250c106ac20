package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacer spaces LLM requests at least delay apart using a token bucket
// with a burst of one, so the first request goes out immediately.
type pacer struct {
	limiter *rate.Limiter
}

// newPacer creates a pacer. A non-positive delay disables pacing.
func newPacer(delay time.Duration) *pacer {
	if delay <= 0 {
		return &pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request may be sent or ctx is done.
func (p *pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
