package liblogger

import (
	"errors"
	"time"
)

// Log level constants
const (
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
)

// Sink kinds
const (
	SinkConsole = "console"
	SinkFile    = "file"
	SinkHTTP    = "http"
)

// Console targets
const (
	TargetStdout = "stdout"
	TargetStderr = "stderr"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Retry bounds while Flush waits for room in a full channel
	minFlushBackoff = time.Millisecond
	maxFlushBackoff = 20 * time.Millisecond
	// Width of the zero-padded archive sequence in rotated file names
	archiveSeqWidth = 6
)

var (
	// ErrLoggerClosed is returned by Submit and Flush once Shutdown has begun
	ErrLoggerClosed = errors.New("liblogger: logger is shut down")
	// ErrShutdownTimeout is returned when buffered records could not be drained in time
	ErrShutdownTimeout = errors.New("liblogger: shutdown timed out")
	// ErrNotInitialized is returned by package-level functions before Init
	ErrNotInitialized = errors.New("liblogger: default logger not initialized")
)
