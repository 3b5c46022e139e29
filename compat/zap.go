package compat

import (
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/raymanaeron/liblogger"
)

var _ zapcore.Core = (*ZapCore)(nil)

// ZapCore is a zapcore.Core that hands entries to a liblogger.Logger.
// Fields become the record context, sorted by key.
type ZapCore struct {
	logger *liblogger.Logger
	fields []zapcore.Field
}

// NewZapCore creates a core writing through logger
func NewZapCore(logger *liblogger.Logger) *ZapCore {
	return &ZapCore{logger: logger}
}

// NewZapLogger builds a *zap.Logger on top of a ZapCore with caller annotation enabled
func NewZapLogger(logger *liblogger.Logger, opts ...zap.Option) *zap.Logger {
	return zap.New(NewZapCore(logger), append([]zap.Option{zap.AddCaller()}, opts...)...)
}

// Enabled defers to the logger threshold
func (c *ZapCore) Enabled(lvl zapcore.Level) bool {
	return c.logger.Enabled(zapLevel(lvl))
}

// With returns a core carrying additional fields
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &ZapCore{logger: c.logger, fields: merged}
}

// Check adds this core to the entry if its level passes the threshold
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry into a record and submits it
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	if ent.LoggerName != "" {
		enc.AddString("logger", ent.LoggerName)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		kv = append(kv, k, enc.Fields[k])
	}

	r := liblogger.Record{
		Timestamp: ent.Time,
		Level:     zapLevel(ent.Level),
		Message:   ent.Message,
		Context:   liblogger.FormatContext(kv...),
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	if ent.Caller.Defined {
		r.File = filepath.Base(ent.Caller.File)
		r.Line = ent.Caller.Line
		r.Module, r.Function = liblogger.SplitFunctionName(ent.Caller.Function)
	}

	if err := c.logger.Submit(r); err != nil {
		return err
	}

	// Panic and fatal entries terminate the process after Write returns
	if ent.Level > zapcore.ErrorLevel {
		return c.Sync()
	}
	return nil
}

// Sync waits for buffered records to be written
func (c *ZapCore) Sync() error {
	return c.logger.Flush(time.Second)
}

// zapLevel maps zap levels onto the four logger levels
func zapLevel(lvl zapcore.Level) int64 {
	switch {
	case lvl <= zapcore.DebugLevel:
		return liblogger.LevelDebug
	case lvl == zapcore.InfoLevel:
		return liblogger.LevelInfo
	case lvl == zapcore.WarnLevel:
		return liblogger.LevelWarn
	default:
		return liblogger.LevelError
	}
}
