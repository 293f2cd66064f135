package service

import (
	"context"
	"time"
)

// Suspender pauses the current unit of work between send attempts.
type Suspender interface {
	Suspend(ctx context.Context, d time.Duration) error
}

// TimerSuspender waits on a timer and gives up early when ctx is done.
// Only the calling goroutine is blocked.
type TimerSuspender struct{}

// Suspend waits for d or until ctx is cancelled, whichever comes first.
func (TimerSuspender) Suspend(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
