package compat

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/raymanaeron/liblogger"
)

var _ zerolog.LevelWriter = (*ZerologWriter)(nil)

// ZerologWriter receives zerolog's JSON events and resubmits them as records.
// The message, level, time and caller fields map onto the record; every other
// field is rendered into the context.
type ZerologWriter struct {
	logger *liblogger.Logger
}

// NewZerologWriter creates a writer submitting to logger
func NewZerologWriter(logger *liblogger.Logger) *ZerologWriter {
	return &ZerologWriter{logger: logger}
}

// NewZerolog builds a zerolog.Logger with timestamps that writes through logger
func NewZerolog(logger *liblogger.Logger) zerolog.Logger {
	return zerolog.New(NewZerologWriter(logger)).With().Timestamp().Logger()
}

// Write decodes one event, taking the level from its level field
func (w *ZerologWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel decodes one event logged at level
func (w *ZerologWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	event := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if err := dec.Decode(&event); err != nil {
		// Not an event, keep the raw text
		r := liblogger.Record{
			Timestamp: time.Now(),
			Level:     zerologLevel(level),
			Message:   strings.TrimSpace(string(p)),
		}
		if err := w.logger.Submit(r); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	if level == zerolog.NoLevel {
		if s, ok := event[zerolog.LevelFieldName].(string); ok {
			if parsed, err := zerolog.ParseLevel(s); err == nil {
				level = parsed
			}
		}
	}

	r := liblogger.Record{
		Timestamp: eventTime(event[zerolog.TimestampFieldName]),
		Level:     zerologLevel(level),
	}
	if msg, ok := event[zerolog.MessageFieldName].(string); ok {
		r.Message = msg
	}
	if caller, ok := event[zerolog.CallerFieldName].(string); ok {
		r.File, r.Line = splitCaller(caller)
	}

	delete(event, zerolog.MessageFieldName)
	delete(event, zerolog.LevelFieldName)
	delete(event, zerolog.TimestampFieldName)
	delete(event, zerolog.CallerFieldName)

	keys := make([]string, 0, len(event))
	for k := range event {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		kv = append(kv, k, event[k])
	}
	r.Context = liblogger.FormatContext(kv...)

	if err := w.logger.Submit(r); err != nil {
		return 0, err
	}
	return len(p), nil
}

// zerologLevel maps zerolog levels onto the four logger levels
func zerologLevel(level zerolog.Level) int64 {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return liblogger.LevelDebug
	case zerolog.WarnLevel:
		return liblogger.LevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return liblogger.LevelError
	default:
		return liblogger.LevelInfo
	}
}

// eventTime parses the event timestamp, falling back to now
func eventTime(v any) time.Time {
	switch ts := v.(type) {
	case string:
		if t, err := time.Parse(zerolog.TimeFieldFormat, ts); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t
		}
	case json.Number:
		if n, err := ts.Int64(); err == nil {
			return time.Unix(n, 0)
		}
	}
	return time.Now()
}

// splitCaller splits zerolog's "path/file.go:line" caller field
func splitCaller(caller string) (string, int) {
	idx := strings.LastIndexByte(caller, ':')
	if idx < 0 {
		return filepath.Base(caller), 0
	}
	line, err := strconv.Atoi(caller[idx+1:])
	if err != nil {
		return filepath.Base(caller), 0
	}
	return filepath.Base(caller[:idx]), line
}
