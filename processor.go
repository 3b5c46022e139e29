package liblogger

// processLogs is the single consumer of the channel and the sink's owner.
// It exits once the channel is closed and drained, after closing the sink.
func (l *Logger) processLogs(ch <-chan logEntry) {
	defer close(l.done)

	timers := l.setupProcessingTimers()
	defer l.closeProcessingTimers(timers)

	for {
		select {
		case entry, ok := <-ch:
			if !ok {
				l.closeSink()
				return
			}
			if entry.flushAck != nil {
				l.handleFlushRequest(entry.flushAck)
				continue
			}
			l.processLogRecord(entry.record)

		case <-timers.flushTicker.C:
			l.performSync()

		case <-timers.heartbeatChan:
			l.handleHeartbeat()
		}
	}
}

// processLogRecord writes one record; a failed write is reported and the loop continues
func (l *Logger) processLogRecord(r Record) {
	if l.state.Abandoned.Load() {
		l.state.LostLogs.Add(1)
		return
	}

	if err := l.sink.Write(r); err != nil {
		l.state.FailedWrites.Add(1)
		l.internalLog("failed to write record: %v\n", err)
		return
	}
	l.state.TotalLogsProcessed.Add(1)
}

// handleFlushRequest syncs the sink; every record queued before the request is already written
func (l *Logger) handleFlushRequest(ack chan struct{}) {
	l.performSync()
	close(ack)
}

// performSync syncs the sink if it supports it
func (l *Logger) performSync() {
	if l.state.Abandoned.Load() {
		return
	}
	if syncer, ok := l.sink.(Syncer); ok {
		if err := syncer.Sync(); err != nil {
			l.internalLog("sink sync failed: %v\n", err)
		}
	}
}

// closeSink runs after the channel is drained; the close error is reported by Shutdown
func (l *Logger) closeSink() {
	if err := l.sink.Close(); err != nil {
		l.state.closeErr = fmtErrorf("failed to close sink: %w", err)
	}
}
