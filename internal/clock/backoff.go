// Package clock holds time helpers shared by the retrying HTTP layer.
package clock

import (
	"context"
	"time"
)

// Backoff yields an exponential delay schedule: Base, 2*Base, 4*Base, ...
// The schedule is unbounded; callers cap it by limiting the number of
// retries. The zero value yields zero delays.
type Backoff struct {
	// Base is the first delay returned by Next.
	Base time.Duration

	next time.Duration
}

// Next returns the current delay and doubles the one after it.
func (b *Backoff) Next() time.Duration {
	if b.next == 0 {
		b.next = b.Base
	}
	d := b.next
	b.next *= 2
	return d
}

// Sleep blocks for d or until the context is done, returning the context
// error in the latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
