package retry

import (
	"context"
	"time"

	ai "github.com/spetersoncode/mailroute"
)

// Do calls fn until it succeeds, returns a non-transient error, or the
// attempts are exhausted. The server's Retry-After wins when it is longer
// than the computed backoff. Cancellation of ctx interrupts the wait.
func Do[T any](ctx context.Context, cfg Config, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := cfg.attempts()
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) || attempt == attempts-1 {
			break
		}

		delay := cfg.Delay(attempt)
		if server := ai.RetryAfterOf(err); server > delay {
			delay = server
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}
