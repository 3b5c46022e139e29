package liblogger

import (
	"time"
)

// Record is a single log event. It is built once by a producer and handed
// to the dispatcher by value.
type Record struct {
	Timestamp time.Time
	Level     int64
	Message   string
	Context   string // empty means no context
	File      string
	Line      int
	Module    string
	Function  string
}

// logEntry is the unit carried by the channel: either a record or a flush marker
type logEntry struct {
	record   Record
	flushAck chan struct{}
}

// Stats is a point-in-time snapshot of logger counters
type Stats struct {
	Processed      uint64 // Records written by the writer or the fallback path
	FallbackWrites uint64 // Records written synchronously because the channel was full
	FailedWrites   uint64 // Sink write failures (writer loop and fallback)
	Rejected       uint64 // Submits refused after shutdown began
	Lost           uint64 // Records discarded after a shutdown timeout
	Rotations      uint64 // File rotations, zero for other sinks
	Buffered       int    // Records currently waiting in the channel
}
