package instrument

import (
	"fmt"
	"sync"
	"time"

	"github.com/raymanaeron/liblogger"
)

// Throttle logs "name executed" at most once per interval. Calls inside the
// window still run fn; their records are counted and the count is reported
// on the next record that is emitted.
func Throttle(p Producer, name string, interval time.Duration, fn func()) func() {
	var (
		mu         sync.Mutex
		last       time.Time
		suppressed int
	)

	return func() {
		fn()

		mu.Lock()
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < interval {
			suppressed++
			mu.Unlock()
			return
		}
		last = now
		n := suppressed
		suppressed = 0
		mu.Unlock()

		msg := name + " executed"
		if n > 0 {
			msg = fmt.Sprintf("%s (%d suppressed)", msg, n)
		}
		_ = p.Output(2, liblogger.LevelInfo, msg, "")
	}
}
