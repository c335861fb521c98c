package client

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter is a token-bucket rate limiter for outgoing API calls. The
// backend sits behind marketplace providers with their own quotas, so the
// client stays polite by default.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter creates a limiter allowing perSecond sustained calls with the
// given burst size.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until the limiter allows the call or the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}
