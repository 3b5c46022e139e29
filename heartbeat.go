package liblogger

import (
	"fmt"
	"runtime"
	"time"
)

// handleHeartbeat writes a statistics record straight to the sink from the writer goroutine
func (l *Logger) handleHeartbeat() {
	if l.state.Abandoned.Load() || LevelInfo < l.cfg.Threshold {
		return
	}

	r := l.heartbeatRecord(time.Now())
	if err := l.sink.Write(r); err != nil {
		l.state.FailedWrites.Add(1)
		l.internalLog("failed to write heartbeat: %v\n", err)
	}
}

// heartbeatRecord builds the heartbeat record from current counters
func (l *Logger) heartbeatRecord(now time.Time) Record {
	sequence := l.state.HeartbeatSequence.Add(1)

	var uptimeHours float64
	if startTime, ok := l.state.LoggerStartTime.Load().(time.Time); ok && !startTime.IsZero() {
		uptimeHours = now.Sub(startTime).Hours()
	}

	stats := l.Stats()
	return Record{
		Timestamp: now,
		Level:     LevelInfo,
		Message:   "heartbeat",
		Context: FormatContext(
			"sequence", sequence,
			"uptime_hours", fmt.Sprintf("%.2f", uptimeHours),
			"processed_logs", stats.Processed,
			"fallback_writes", stats.FallbackWrites,
			"failed_writes", stats.FailedWrites,
			"rotations", stats.Rotations,
			"buffered", stats.Buffered,
			"num_goroutine", runtime.NumGoroutine(),
		),
		Module:   "github.com/raymanaeron/liblogger",
		Function: "heartbeat",
	}
}
