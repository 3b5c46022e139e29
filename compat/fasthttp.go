package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/raymanaeron/liblogger"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

const fasthttpSource = "source=fasthttp"

// FastHTTPAdapter is a fasthttp.Logger for fasthttp.Server and Client.
// fasthttp logs without levels, so the level is derived from the message text.
type FastHTTPAdapter struct {
	logger        *liblogger.Logger
	defaultLevel  int64
	levelDetector func(string) int64
}

// FastHTTPOption configures a FastHTTPAdapter
type FastHTTPOption func(*FastHTTPAdapter)

// NewFastHTTPAdapter returns an adapter that logs at Info unless
// DetectLogLevel finds a stronger keyword
func NewFastHTTPAdapter(logger *liblogger.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	a := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  liblogger.LevelInfo,
		levelDetector: DetectLogLevel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithDefaultLevel sets the level used when the detector reports LevelInfo
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector replaces DetectLogLevel. A detector result of LevelInfo
// means "no opinion" and falls back to the default level.
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp.Logger; the record points at fasthttp's call site
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_ = a.logger.Output(2, a.levelFor(msg), msg, fasthttpSource)
}

func (a *FastHTTPAdapter) levelFor(msg string) int64 {
	if a.levelDetector == nil {
		return a.defaultLevel
	}
	if detected := a.levelDetector(msg); detected != liblogger.LevelInfo {
		return detected
	}
	return a.defaultLevel
}

// levelKeywords are checked in order, the first level with a match wins
var levelKeywords = []struct {
	level    int64
	keywords []string
}{
	{liblogger.LevelError, []string{"error", "failed", "fatal", "panic"}},
	{liblogger.LevelWarn, []string{"warn", "deprecated"}},
	{liblogger.LevelDebug, []string{"debug", "trace"}},
}

// DetectLogLevel maps keywords in a fasthttp message to a level, LevelInfo when none match
func DetectLogLevel(msg string) int64 {
	lower := strings.ToLower(msg)
	for _, lk := range levelKeywords {
		for _, kw := range lk.keywords {
			if strings.Contains(lower, kw) {
				return lk.level
			}
		}
	}
	return liblogger.LevelInfo
}
