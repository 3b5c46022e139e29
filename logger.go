package liblogger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Logger is the asynchronous delivery engine: a bounded channel drained by a
// single writer goroutine, with a synchronous fallback when the channel is full.
type Logger struct {
	cfg   *Config
	sink  Sink
	state State

	// mu is held for reading around every channel send and fallback write,
	// and for writing while Shutdown closes the channel.
	mu     sync.RWMutex
	closed bool
	ch     chan logEntry
	done   chan struct{}

	internalOut io.Writer // Destination for internal diagnostics
}

// New validates cfg, builds the configured sink and starts the writer.
// Failure to create the log directory or open the initial file is returned here.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		return nil, fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sink, err := newSink(cfg)
	if err != nil {
		return nil, err
	}
	return start(cfg.Clone(), sink), nil
}

// NewWithSink starts a logger that writes to a caller-provided sink.
// The sink fields of cfg are ignored; the logger closes sink on shutdown.
func NewWithSink(cfg *Config, sink Sink) (*Logger, error) {
	if cfg == nil {
		return nil, fmtErrorf("configuration cannot be nil")
	}
	if sink == nil {
		return nil, fmtErrorf("sink cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return start(cfg.Clone(), sink), nil
}

// start wires the channel and launches the writer goroutine
func start(cfg *Config, sink Sink) *Logger {
	l := &Logger{
		cfg:         cfg,
		sink:        sink,
		ch:          make(chan logEntry, cfg.BufferSize),
		done:        make(chan struct{}),
		internalOut: os.Stderr,
	}
	l.state.LoggerStartTime.Store(time.Now())

	go l.processLogs(l.ch)
	return l
}

// Config returns a copy of the configuration the logger was built with
func (l *Logger) Config() *Config {
	return l.cfg.Clone()
}

// Threshold returns the minimum level that is delivered
func (l *Logger) Threshold() int64 {
	return l.cfg.Threshold
}

// Enabled reports whether records at level pass the threshold
func (l *Logger) Enabled(level int64) bool {
	return level >= l.cfg.Threshold
}

// Debug logs a message at debug level with optional key/value context
func (l *Logger) Debug(msg string, kv ...any) error {
	return l.output(2, LevelDebug, msg, kv)
}

// Info logs a message at info level with optional key/value context
func (l *Logger) Info(msg string, kv ...any) error {
	return l.output(2, LevelInfo, msg, kv)
}

// Warn logs a message at warning level with optional key/value context
func (l *Logger) Warn(msg string, kv ...any) error {
	return l.output(2, LevelWarn, msg, kv)
}

// Error logs a message at error level with optional key/value context
func (l *Logger) Error(msg string, kv ...any) error {
	return l.output(2, LevelError, msg, kv)
}

// Log logs a message at an arbitrary level
func (l *Logger) Log(level int64, msg string, kv ...any) error {
	return l.output(2, level, msg, kv)
}

// LogContext logs a message with a preformatted context string
func (l *Logger) LogContext(level int64, msg, context string) error {
	if level < l.cfg.Threshold {
		return nil
	}
	return l.Submit(l.newRecord(2, level, msg, context))
}

// Output logs with the source location taken calldepth frames above the caller.
// calldepth 1 reports the function that called Output.
func (l *Logger) Output(calldepth int, level int64, msg, context string) error {
	if level < l.cfg.Threshold {
		return nil
	}
	return l.Submit(l.newRecord(calldepth+1, level, msg, context))
}

// output checks the threshold before any caller capture or formatting
func (l *Logger) output(skip int, level int64, msg string, kv []any) error {
	if level < l.cfg.Threshold {
		return nil
	}
	return l.Submit(l.newRecord(skip+1, level, msg, FormatContext(kv...)))
}

// newRecord stamps a record with the time and the caller skip frames above newRecord
func (l *Logger) newRecord(skip int, level int64, msg, context string) Record {
	r := Record{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Context:   context,
	}
	if pc, file, line, ok := runtime.Caller(skip); ok {
		r.File = shortFile(file)
		r.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			r.Module, r.Function = SplitFunctionName(fn.Name())
		}
	}
	return r
}

// internalLog writes logger diagnostics to stderr, if enabled
func (l *Logger) internalLog(format string, args ...any) {
	if !l.cfg.InternalErrorsToStderr {
		return
	}
	if !strings.HasPrefix(format, errPrefix) {
		format = errPrefix + format
	}
	fmt.Fprintf(l.internalOut, format, args...)
}
