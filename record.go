package liblogger

// Submit is the dispatcher every producer goes through.
//
// A record below the threshold returns immediately. Otherwise it is offered to
// the channel without blocking. If the channel is full, the record is written
// synchronously to the sink on the caller's goroutine and any write error is
// returned. Records that went through the channel never report errors here.
//
// Once Shutdown has begun, Submit rejects records with ErrLoggerClosed.
func (l *Logger) Submit(r Record) error {
	if r.Level < l.cfg.Threshold {
		return nil
	}

	// Checked before mu, a Shutdown waiting for the write lock must not stall producers
	if l.state.ShutdownCalled.Load() {
		l.state.RejectedLogs.Add(1)
		return ErrLoggerClosed
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		l.state.RejectedLogs.Add(1)
		return ErrLoggerClosed
	}

	select {
	case l.ch <- logEntry{record: r}:
		return nil
	default:
	}

	return l.writeFallback(r)
}

// writeFallback writes a record on the producer's goroutine, caller holds mu for reading
func (l *Logger) writeFallback(r Record) error {
	l.state.FallbackWrites.Add(1)
	if err := l.sink.Write(r); err != nil {
		l.state.FailedWrites.Add(1)
		return fmtErrorf("fallback write failed: %w", err)
	}
	l.state.TotalLogsProcessed.Add(1)
	return nil
}
