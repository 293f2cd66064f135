package entity

import (
	"fmt"
	"time"

	"github.com/ruudy-sib/udpout/internal/domain"
)

// RetryPolicy bounds the immediate retry loop for a single send.
// MaxRetries of 0 disables retry entirely.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// NewRetryPolicy builds a policy from a retry count and a backoff in whole
// milliseconds.
func NewRetryPolicy(retryCount, backoffMs int) (RetryPolicy, error) {
	if retryCount < 0 {
		return RetryPolicy{}, fmt.Errorf("%w: retry_count must be >= 0, got %d", domain.ErrInvalidConfig, retryCount)
	}
	if backoffMs < 0 {
		return RetryPolicy{}, fmt.Errorf("%w: retry_backoff_ms must be >= 0, got %d", domain.ErrInvalidConfig, backoffMs)
	}
	return RetryPolicy{
		MaxRetries: retryCount,
		Backoff:    time.Duration(backoffMs) * time.Millisecond,
	}, nil
}

// AllowsRetry reports whether a failure on the given 1-based attempt may be
// retried.
func (p RetryPolicy) AllowsRetry(attempt int) bool {
	return attempt <= p.MaxRetries
}

// MaxAttempts is the total number of sends the policy permits.
func (p RetryPolicy) MaxAttempts() int {
	return p.MaxRetries + 1
}
