package instrument

import (
	"context"
	"fmt"
	"time"

	"github.com/raymanaeron/liblogger"
)

// RetryPolicy bounds the attempts made by Retry
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration // Delay before the second attempt, doubled for each later one
}

// DefaultRetryPolicy makes three attempts starting with a 50ms delay
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 50 * time.Millisecond}
}

// backoff returns the delay after the given failed attempt
func (rp RetryPolicy) backoff(attempt int) time.Duration {
	return rp.BaseDelay * time.Duration(1<<(attempt-1))
}

// Retry runs fn until it succeeds, the attempts are exhausted or ctx is done.
// The last error is returned.
func Retry(p Producer, name string, policy RetryPolicy, fn func(context.Context) error) func(context.Context) error {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	return func(ctx context.Context) error {
		var err error
		for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
			if attempt > 1 {
				_ = p.Output(2, liblogger.LevelInfo,
					fmt.Sprintf("Retry attempt %d of %d for %s", attempt, policy.MaxAttempts, name), "")
			}

			err = fn(ctx)
			if err == nil {
				if attempt > 1 {
					_ = p.Output(2, liblogger.LevelInfo, fmt.Sprintf("%s succeeded after %d attempts", name, attempt), "")
				}
				return nil
			}

			if attempt == policy.MaxAttempts {
				break
			}
			_ = p.Output(2, liblogger.LevelWarn, fmt.Sprintf("%s attempt %d failed", name, attempt),
				liblogger.FormatContext("error", err))

			timer := time.NewTimer(policy.backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				_ = p.Output(2, liblogger.LevelError, fmt.Sprintf("%s cancelled after %d attempts", name, attempt),
					liblogger.FormatContext("error", ctx.Err()))
				return ctx.Err()
			case <-timer.C:
			}
		}

		_ = p.Output(2, liblogger.LevelError, fmt.Sprintf("%s failed after %d attempts", name, policy.MaxAttempts),
			liblogger.FormatContext("error", err))
		return err
	}
}
