package liblogger

// Sink writes one record to a destination. Both the background writer and
// producers on the fallback path call Write, so implementations must be
// safe for concurrent use.
type Sink interface {
	Write(r Record) error
	Close() error
}

// Syncer is implemented by sinks that buffer output and can commit it on demand
type Syncer interface {
	Sync() error
}

// rotationCounter is implemented by sinks that rotate their output
type rotationCounter interface {
	Rotations() uint64
}
