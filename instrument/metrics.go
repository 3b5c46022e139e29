package instrument

import (
	"fmt"
	"sync/atomic"

	"github.com/raymanaeron/liblogger"
)

// CallCounter counts calls of functions wrapped by MetricsCounter.
// The zero value is ready to use and safe for concurrent use.
type CallCounter struct {
	name  string
	count atomic.Uint64
}

// NewCallCounter returns a counter reported under name
func NewCallCounter(name string) *CallCounter {
	return &CallCounter{name: name}
}

// Name returns the name the counter is reported under
func (c *CallCounter) Name() string {
	if c.name == "" {
		return "function_calls"
	}
	return c.name
}

// Load returns the current count
func (c *CallCounter) Load() uint64 {
	return c.count.Load()
}

// MetricsCounter increments counter on every call of fn and logs the new total at debug level
func MetricsCounter(p Producer, name string, counter *CallCounter, fn func()) func() {
	return func() {
		n := counter.count.Add(1)
		_ = p.Output(2, liblogger.LevelDebug, fmt.Sprintf("%s call count: %d", name, n),
			liblogger.FormatContext("counter", counter.Name(), "count", n))
		fn()
	}
}
