package liblogger

import (
	"sync/atomic"
	"time"
)

// defaultLogger is the write-once process-wide handle
var defaultLogger atomic.Pointer[Logger]

// Init builds a logger from cfg and installs it as the default.
// It fails if a default is already installed.
func Init(cfg *Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	if !SetDefault(l) {
		_ = l.Shutdown()
		return fmtErrorf("default logger already initialized")
	}
	return nil
}

// SetDefault installs l as the default logger once, reporting whether it was installed
func SetDefault(l *Logger) bool {
	if l == nil {
		return false
	}
	return defaultLogger.CompareAndSwap(nil, l)
}

// Default returns the default logger, or nil before Init
func Default() *Logger {
	return defaultLogger.Load()
}

// Debug logs a message at debug level
func Debug(msg string, kv ...any) error {
	l := Default()
	if l == nil {
		return ErrNotInitialized
	}
	return l.output(2, LevelDebug, msg, kv)
}

// Info logs a message at info level
func Info(msg string, kv ...any) error {
	l := Default()
	if l == nil {
		return ErrNotInitialized
	}
	return l.output(2, LevelInfo, msg, kv)
}

// Warn logs a message at warning level
func Warn(msg string, kv ...any) error {
	l := Default()
	if l == nil {
		return ErrNotInitialized
	}
	return l.output(2, LevelWarn, msg, kv)
}

// Error logs a message at error level
func Error(msg string, kv ...any) error {
	l := Default()
	if l == nil {
		return ErrNotInitialized
	}
	return l.output(2, LevelError, msg, kv)
}

// Flush waits for buffered records of the default logger to be written
func Flush(timeout time.Duration) error {
	l := Default()
	if l == nil {
		return ErrNotInitialized
	}
	return l.Flush(timeout)
}

// Shutdown drains and closes the default logger. The handle stays installed
// and rejects further records.
func Shutdown(timeout ...time.Duration) error {
	l := Default()
	if l == nil {
		return ErrNotInitialized
	}
	return l.Shutdown(timeout...)
}
