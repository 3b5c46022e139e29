package instrument

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raymanaeron/liblogger"
)

// ErrCircuitOpen is returned without calling the wrapped function while the breaker is open
var ErrCircuitOpen = errors.New("instrument: circuit breaker open")

// BreakerOptions configures CircuitBreaker
type BreakerOptions struct {
	Threshold    int           // Consecutive failures that open the circuit, default 3
	ResetTimeout time.Duration // Time before a trial call is let through, default 30s
}

// CircuitBreaker stops calling fn after Threshold consecutive failures.
// Once ResetTimeout has passed a single trial call is allowed: success closes
// the circuit, failure opens it again.
func CircuitBreaker(p Producer, name string, opts BreakerOptions, fn func() error) func() error {
	if opts.Threshold <= 0 {
		opts.Threshold = 3
	}
	if opts.ResetTimeout <= 0 {
		opts.ResetTimeout = 30 * time.Second
	}

	var (
		mu       sync.Mutex
		failures int
		openedAt time.Time
		trial    bool
	)

	return func() error {
		mu.Lock()
		if failures >= opts.Threshold {
			if trial || time.Since(openedAt) < opts.ResetTimeout {
				mu.Unlock()
				_ = p.Output(2, liblogger.LevelWarn, "Circuit breaker open for "+name,
					liblogger.FormatContext("failures", failures, "threshold", opts.Threshold))
				return fmt.Errorf("%w: %s", ErrCircuitOpen, name)
			}
			trial = true
		}
		mu.Unlock()

		err := fn()

		mu.Lock()
		defer mu.Unlock()
		trial = false
		if err == nil {
			if failures >= opts.Threshold {
				_ = p.Output(2, liblogger.LevelInfo, "Circuit breaker closed for "+name, "")
			}
			failures = 0
			return nil
		}

		failures++
		if failures >= opts.Threshold {
			openedAt = time.Now()
		}
		_ = p.Output(2, liblogger.LevelWarn,
			fmt.Sprintf("Circuit breaker: %s failed (%d/%d failures)", name, failures, opts.Threshold),
			liblogger.FormatContext("error", err))
		return err
	}
}
