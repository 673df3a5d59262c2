package plisio

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"PlisioPay/internal/domain/invoice"
)

// RetryConfig holds configuration for retry with exponential backoff.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DoWithRetry executes fn with exponential backoff.
// It only retries when the API could not be reached.
func DoWithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !errors.Is(err, invoice.ErrServiceUnavailable) {
			return err
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		delay := calculateBackoff(attempt, cfg.BaseDelay, cfg.MaxDelay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// calculateBackoff computes exponential backoff with ±25% jitter, capped at maxDelay.
func calculateBackoff(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	delay := float64(baseDelay) * math.Pow(2, float64(attempt))

	jitter := delay * 0.25 * (rand.Float64()*2 - 1)
	delay += jitter

	if maxDelay > 0 && delay > float64(maxDelay) {
		delay = float64(maxDelay)
	}

	return time.Duration(delay)
}
