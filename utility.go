package liblogger

import (
	"fmt"
	"path/filepath"
	"strings"
)

// errPrefix is prepended to every error and diagnostic produced by the package
const errPrefix = "liblogger: "

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, errPrefix) {
		format = errPrefix + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// Level converts level string to numeric constant.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use debug, info, warn, error)", levelStr)
	}
}

// levelToString returns the upper-case name written to sinks
func levelToString(level int64) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// SplitFunctionName splits a fully qualified runtime function name into
// its package path and the function part.
//
//	"github.com/x/app/store.(*DB).Get" -> "github.com/x/app/store", "(*DB).Get"
//	"main.main.func1"                  -> "main", "main.func1"
func SplitFunctionName(qualified string) (module, function string) {
	if qualified == "" {
		return "", ""
	}
	slash := strings.LastIndex(qualified, "/")
	dot := strings.Index(qualified[slash+1:], ".")
	if dot < 0 {
		return qualified, ""
	}
	dot += slash + 1
	return qualified[:dot], qualified[dot+1:]
}

// shortFile trims a source path to its base name
func shortFile(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
