package retry

import (
	"context"
	"fmt"
	"time"
)

// Do invokes fn up to attempts times. After a failed attempt it waits with
// exponential backoff starting at baseDelay (doubling each round), honoring
// context cancellation during the wait. The last error is returned once the
// attempt ceiling is exhausted.
func Do(ctx context.Context, attempts int, baseDelay time.Duration, fn func(ctx context.Context) error) error {
	if attempts <= 0 {
		attempts = 1
	}

	delay := baseDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last attempt failed with: %w)", ctx.Err(), lastErr)
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
