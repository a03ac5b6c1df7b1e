package service

import (
	"context"
	"time"
)

const (
	DefaultOpTimeout = 5 * time.Second
	DefaultInviteTTL = 7 * 24 * time.Hour
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// withOpTimeout bounds a single service call. A zero timeout uses
// DefaultOpTimeout.
func withOpTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultOpTimeout
	}
	return context.WithTimeout(ctx, d)
}
