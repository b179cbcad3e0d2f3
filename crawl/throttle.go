package crawl

import (
	"context"
	"time"

	"github.com/sitetext/sitetext"
	"golang.org/x/time/rate"
)

var _ sitetext.Pacer = (*Throttle)(nil)

// Throttle enforces the minimum gap between requests to the crawled host.
// Wait is a token-bucket start gate shared by all workers: at most one
// request starts per delay window, with a burst of 1 (no bursting).
// Pause is the unconditional post-attempt delay the sequential loop applies
// after every fetch, which spaces requests relative to request completion
// rather than request start.
type Throttle struct {
	delay   time.Duration
	limiter *rate.Limiter
}

// NewThrottle creates a Throttle with the given minimum delay between
// requests. A non-positive delay disables pacing.
func NewThrottle(delay time.Duration) *Throttle {
	t := &Throttle{delay: delay}
	if delay > 0 {
		t.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return t
}

// Wait blocks until the start gate allows the next request.
// Returns an error if the context is canceled before the wait completes.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.limiter == nil {
		return ctx.Err()
	}
	return t.limiter.Wait(ctx)
}

// Pause blocks for the full inter-request delay, or until the context is
// canceled.
func (t *Throttle) Pause(ctx context.Context) error {
	if t.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(t.delay):
		return nil
	}
}
