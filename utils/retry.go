package utils

import (
	"context"
	"math/rand"
	"time"
)

// Retry policy for idempotent reads. Writes are never retried: without
// idempotency keys a retried insert can duplicate.
const (
	ReadAttempts  = 3
	ReadBaseDelay = 100 * time.Millisecond
)

// Do runs op up to maxAttempts times, sleeping between attempts with
// exponential backoff plus jitter. It returns nil on the first success and the
// last error otherwise. Context cancellation stops the loop early.
func Do(ctx context.Context, maxAttempts int, baseDelay time.Duration, op func(context.Context) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == maxAttempts {
			break
		}

		delay := baseDelay << (attempt - 1)
		jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
		select {
		case <-time.After(delay + jitter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
