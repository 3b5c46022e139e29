package instrument

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/raymanaeron/liblogger"
)

// ErrPanicked wraps the value of a panic recovered by CatchPanic
var ErrPanicked = errors.New("instrument: recovered panic")

// ResultLevels selects the levels LogResult uses for each outcome
type ResultLevels struct {
	Success int64
	Failure int64
}

// DefaultResultLevels logs successes at Info and failures at Error
func DefaultResultLevels() ResultLevels {
	return ResultLevels{Success: liblogger.LevelInfo, Failure: liblogger.LevelError}
}

// LogResult logs the value or the error returned by fn at the configured level
func LogResult[T any](p Producer, name string, levels ResultLevels, fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		val, err := fn()
		if err != nil {
			_ = p.Output(2, levels.Failure, fmt.Sprintf("%s failed with error: %v", name, err), "")
			return val, err
		}
		_ = p.Output(2, levels.Success, fmt.Sprintf("%s succeeded with result: %v", name, val), "")
		return val, nil
	}
}

// LogResponse logs the value returned by fn at debug level
func LogResponse[T any](p Producer, name string, fn func() T) func() T {
	return func() T {
		val := fn()
		_ = p.Output(2, liblogger.LevelDebug, fmt.Sprintf("%s returned: %v", name, val), "")
		return val
	}
}

// CatchPanic recovers a panic in fn, logs it and returns it as an error wrapping ErrPanicked
func CatchPanic(p Producer, name string, fn func() error) func() error {
	return func() error {
		recovered, err := protect(fn)
		if recovered == nil {
			return err
		}
		_ = p.Output(2, liblogger.LevelError, fmt.Sprintf("%s caught panic: %v", name, recovered), "")
		return fmt.Errorf("%w in %s: %v", ErrPanicked, name, recovered)
	}
}

// protect runs fn and returns the recovered panic value, if any
func protect(fn func() error) (recovered any, err error) {
	defer func() { recovered = recover() }()
	return nil, fn()
}

// DependencyLatency logs a call to an external dependency and how long it took
func DependencyLatency(p Producer, name, target string, fn func() error) func() error {
	return func() error {
		_ = p.Output(2, liblogger.LevelInfo, fmt.Sprintf("Dependency call to %s started for %s", target, name), "")
		start := time.Now()
		err := fn()
		elapsed := time.Since(start).Milliseconds()

		context := liblogger.FormatContext("target", target, "duration_ms", elapsed)
		if err != nil {
			_ = p.Output(2, liblogger.LevelError,
				fmt.Sprintf("Dependency call to %s failed after %d ms with error: %v", target, elapsed, err), context)
			return err
		}
		_ = p.Output(2, liblogger.LevelInfo,
			fmt.Sprintf("Dependency call to %s completed in %d ms", target, elapsed), context)
		return nil
	}
}

// HealthCheck logs whether fn passed and how long it took
func HealthCheck(p Producer, name string, fn func() error) func() error {
	return func() error {
		start := time.Now()
		err := fn()
		elapsed := time.Since(start).Milliseconds()
		if err != nil {
			_ = p.Output(2, liblogger.LevelError,
				fmt.Sprintf("Health check %s failed in %d ms: %v", name, elapsed, err), "")
			return err
		}
		_ = p.Output(2, liblogger.LevelInfo, fmt.Sprintf("Health check %s passed in %d ms", name, elapsed), "")
		return nil
	}
}

// TrackConcurrency logs how many calls of the returned function are running
// on entry and on exit
func TrackConcurrency(p Producer, name string, fn func()) func() {
	var active atomic.Int64
	return func() {
		current := active.Add(1)
		_ = p.Output(2, liblogger.LevelDebug, fmt.Sprintf("%s concurrent invocations: %d", name, current), "")

		var after int64
		func() {
			defer func() { after = active.Add(-1) }()
			fn()
		}()
		_ = p.Output(2, liblogger.LevelDebug, fmt.Sprintf("%s concurrent invocations after exit: %d", name, after), "")
	}
}
