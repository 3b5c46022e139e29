package liblogger

import (
	"io"
	"os"
	"sync"
)

// newSink builds the sink selected by cfg.SinkKind.
// Errors are fatal to the sink and surface from New.
func newSink(cfg *Config) (Sink, error) {
	switch cfg.SinkKind {
	case SinkConsole:
		w := io.Writer(os.Stdout)
		if cfg.ConsoleTarget == TargetStderr {
			w = os.Stderr
		}
		return NewConsoleSink(w, cfg.TimestampFormat), nil
	case SinkFile:
		return NewFileSink(cfg.LogFolder, cfg.FilePath, cfg.MaxFileSizeBytes, cfg.TimestampFormat)
	case SinkHTTP:
		return NewHTTPSink(cfg.HTTPEndpoint, cfg.httpTimeout())
	default:
		return nil, fmtErrorf("unknown sink kind '%s'", cfg.SinkKind)
	}
}

// ConsoleSink writes formatted lines to a terminal stream
type ConsoleSink struct {
	mu              sync.Mutex
	w               io.Writer
	timestampFormat string
}

// NewConsoleSink creates a sink writing to w, typically os.Stdout or os.Stderr
func NewConsoleSink(w io.Writer, timestampFormat string) *ConsoleSink {
	return &ConsoleSink{w: w, timestampFormat: timestampFormat}
}

// Write formats the record and writes it as a single call
func (s *ConsoleSink) Write(r Record) error {
	line := formatLine(r, s.timestampFormat)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		return fmtErrorf("failed to write to console: %w", err)
	}
	return nil
}

// Close is a no-op, the process owns its standard streams
func (s *ConsoleSink) Close() error {
	return nil
}
