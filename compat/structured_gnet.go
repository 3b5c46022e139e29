package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/raymanaeron/liblogger"
)

var _ logging.Logger = (*StructuredGnetAdapter)(nil)

// keyValuePattern detects "key=%v" or "key: %v" verbs in a format string
var keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)

// parseFormat splits a printf-style call into a message and key/value context.
// Text outside the matched pairs forms the message; if nothing matches, or the
// format has more pairs than args, the whole formatted string is the message.
func parseFormat(format string, args []any) (string, []any) {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 || len(matches) > len(args) || strings.Contains(format, "%%") {
		return fmt.Sprintf(format, args...), nil
	}

	var msgParts []string
	fields := make([]any, 0, len(matches)*2)
	lastEnd := 0
	argIndex := 0

	for _, match := range matches {
		// Verbs before this pair consume args too
		prefix := format[lastEnd:match[0]]
		if n := countVerbs(prefix); n > 0 {
			if argIndex+n > len(args) {
				return fmt.Sprintf(format, args...), nil
			}
			prefix = fmt.Sprintf(prefix, args[argIndex:argIndex+n]...)
			argIndex += n
		}
		if p := strings.TrimSpace(prefix); p != "" {
			msgParts = append(msgParts, p)
		}

		if argIndex >= len(args) {
			return fmt.Sprintf(format, args...), nil
		}
		key := format[match[2]:match[3]]
		fields = append(fields, key, args[argIndex])
		argIndex++
		lastEnd = match[1]
	}

	if lastEnd < len(format) {
		remaining := fmt.Sprintf(format[lastEnd:], args[argIndex:]...)
		if r := strings.TrimSpace(remaining); r != "" {
			msgParts = append(msgParts, r)
		}
	}

	return strings.Join(msgParts, " "), fields
}

// countVerbs counts formatting verbs in s
func countVerbs(s string) int {
	return strings.Count(s, "%")
}

// StructuredGnetAdapter provides structured logging for gnet by lifting
// "key=%v" pairs out of format strings into the record context
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(logger *liblogger.Logger, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(logger, opts...),
		extractFields: true,
	}
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	a.emitStructured(liblogger.LevelDebug, format, args)
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	a.emitStructured(liblogger.LevelInfo, format, args)
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	a.emitStructured(liblogger.LevelWarn, format, args)
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	a.emitStructured(liblogger.LevelError, format, args)
}

func (a *StructuredGnetAdapter) emitStructured(level int64, format string, args []any) {
	if !a.logger.Enabled(level) {
		return
	}
	if !a.extractFields {
		a.emit(3, level, fmt.Sprintf(format, args...), gnetSource)
		return
	}
	msg, fields := parseFormat(format, args)
	context := liblogger.FormatContext(append(fields, "source", "gnet")...)
	a.emit(3, level, msg, context)
}
