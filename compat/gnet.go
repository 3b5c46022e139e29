package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/raymanaeron/liblogger"
)

var _ logging.Logger = (*GnetAdapter)(nil)

const (
	// gnetSource tags every record forwarded from gnet
	gnetSource = "source=gnet"
	// fatalFlushTimeout bounds the wait for a fatal record to reach the sink
	fatalFlushTimeout = 100 * time.Millisecond
)

// GnetAdapter routes gnet's engine logs into a liblogger.Logger.
// Records carry the gnet call site, not the adapter.
type GnetAdapter struct {
	logger       *liblogger.Logger
	fatalHandler func(msg string)
}

// GnetOption configures a GnetAdapter
type GnetOption func(*GnetAdapter)

// NewGnetAdapter returns an adapter for gnet.WithLogger. Fatalf exits the
// process unless WithFatalHandler replaces that behavior.
func NewGnetAdapter(logger *liblogger.Logger, opts ...GnetOption) *GnetAdapter {
	a := &GnetAdapter{
		logger:       logger,
		fatalHandler: func(string) { os.Exit(1) },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithFatalHandler replaces the process exit done by Fatalf
func WithFatalHandler(handler func(msg string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logf(2, liblogger.LevelDebug, gnetSource, format, args)
}

func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logf(2, liblogger.LevelInfo, gnetSource, format, args)
}

func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logf(2, liblogger.LevelWarn, gnetSource, format, args)
}

func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logf(2, liblogger.LevelError, gnetSource, format, args)
}

// Fatalf writes an error record marked fatal=true, waits briefly for it to
// be written and then calls the fatal handler.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.emit(2, liblogger.LevelError, msg, gnetSource+" fatal=true")
	_ = a.logger.Flush(fatalFlushTimeout)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// logf formats only when level passes the threshold
func (a *GnetAdapter) logf(skip int, level int64, context, format string, args []any) {
	if !a.logger.Enabled(level) {
		return
	}
	_ = a.logger.Output(skip+1, level, fmt.Sprintf(format, args...), context)
}

// emit attributes the record to the frame skip levels above its caller
func (a *GnetAdapter) emit(skip int, level int64, msg, context string) {
	_ = a.logger.Output(skip+1, level, msg, context)
}
