package liblogger

import (
	"fmt"
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the logger
type State struct {
	ShutdownCalled atomic.Bool
	Abandoned      atomic.Bool // Shutdown gave up waiting, the writer discards what is left

	// Statistics
	LoggerStartTime    atomic.Value // stores time.Time for uptime calculation
	HeartbeatSequence  atomic.Uint64
	TotalLogsProcessed atomic.Uint64
	FallbackWrites     atomic.Uint64
	FailedWrites       atomic.Uint64
	RejectedLogs       atomic.Uint64
	LostLogs           atomic.Uint64

	// closeErr is set by the writer before it closes done
	closeErr error
}

// Shutdown stops accepting records, waits for the writer to drain the channel
// and closes the sink. Without an argument the configured shutdown timeout applies.
//
// Records submitted after Shutdown begins are rejected with ErrLoggerClosed.
// If draining does not finish in time, the error wraps ErrShutdownTimeout and
// the number of records still buffered is reported as lost.
// Calling Shutdown again returns nil immediately.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	effectiveTimeout := l.cfg.shutdownTimeout()
	if len(timeout) > 0 && timeout[0] > 0 {
		effectiveTimeout = timeout[0]
	}
	timer := time.NewTimer(effectiveTimeout)
	defer timer.Stop()

	// In-flight fallback writes hold mu for reading; the wait for them counts
	// against the same deadline as the drain.
	closed := make(chan struct{})
	go func() {
		l.mu.Lock()
		l.closed = true
		close(l.ch)
		l.mu.Unlock()
		close(closed)
	}()

	select {
	case <-closed:
		select {
		case <-l.done:
			return l.state.closeErr
		case <-timer.C:
		}
	case <-timer.C:
	}

	l.state.Abandoned.Store(true)
	pending := len(l.ch)
	l.internalLog("writer did not drain within %v, %d buffered records lost\n", effectiveTimeout, pending)
	return fmt.Errorf("%w: writer did not drain within %v, %d buffered records lost",
		ErrShutdownTimeout, effectiveTimeout, pending)
}

// Flush waits until every record accepted before the call has been written
// and the sink synced, or until timeout.
func (l *Logger) Flush(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	ack := make(chan struct{})
	backoff := minFlushBackoff
	for {
		sent, err := l.offerFlush(ack)
		if err != nil {
			return err
		}
		if sent {
			break
		}
		select {
		case <-time.After(backoff):
		case <-timer.C:
			return fmtErrorf("timeout sending flush request (%v)", timeout)
		}
		backoff = min(backoff*2, maxFlushBackoff)
	}

	select {
	case <-ack:
		return nil
	case <-timer.C:
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// offerFlush tries once to queue a flush marker without blocking
func (l *Logger) offerFlush(ack chan struct{}) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed || l.state.ShutdownCalled.Load() {
		return false, ErrLoggerClosed
	}
	select {
	case l.ch <- logEntry{flushAck: ack}:
		return true, nil
	default:
		return false, nil
	}
}

// Done is closed once the writer has drained the channel and closed the sink
func (l *Logger) Done() <-chan struct{} {
	return l.done
}

// Stats returns a snapshot of the logger counters
func (l *Logger) Stats() Stats {
	s := Stats{
		Processed:      l.state.TotalLogsProcessed.Load(),
		FallbackWrites: l.state.FallbackWrites.Load(),
		FailedWrites:   l.state.FailedWrites.Load(),
		Rejected:       l.state.RejectedLogs.Load(),
		Lost:           l.state.LostLogs.Load(),
		Buffered:       len(l.ch),
	}
	if rc, ok := l.sink.(rotationCounter); ok {
		s.Rotations = rc.Rotations()
	}
	return s
}
