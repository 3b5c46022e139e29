// Package instrument wraps functions with logging around their execution.
//
// Every wrapper takes a Producer, a name used in the messages, and the
// function to wrap, and returns a function with the same shape. Records are
// attributed to the code that calls the wrapped function.
package instrument

import (
	"fmt"
	"strings"
	"time"

	"github.com/raymanaeron/liblogger"
)

// Producer is the part of *liblogger.Logger the wrappers need
type Producer interface {
	Output(calldepth int, level int64, msg, context string) error
}

var _ Producer = (*liblogger.Logger)(nil)

// EntryExit logs "ENTRY: name" before and "EXIT: name" after fn
func EntryExit(p Producer, name string, fn func()) func() {
	return func() {
		_ = p.Output(2, liblogger.LevelInfo, "ENTRY: "+name, "")
		fn()
		_ = p.Output(2, liblogger.LevelInfo, "EXIT: "+name, "")
	}
}

// MeasureTime logs how long fn took in milliseconds. A panic is logged with
// the elapsed time and propagated.
func MeasureTime(p Producer, name string, fn func()) func() {
	return func() {
		start := time.Now()
		completed := false
		defer func() {
			if completed {
				return
			}
			elapsed := time.Since(start).Milliseconds()
			_ = p.Output(2, liblogger.LevelError, fmt.Sprintf("%s panicked after %d ms", name, elapsed), "")
		}()

		fn()
		completed = true

		elapsed := time.Since(start).Milliseconds()
		_ = p.Output(2, liblogger.LevelInfo, fmt.Sprintf("%s completed in %d ms", name, elapsed),
			liblogger.FormatContext("duration_ms", elapsed))
	}
}

// LogErrors logs a non-nil error returned by fn. A panic is logged and re-raised.
func LogErrors(p Producer, name string, fn func() error) func() error {
	return func() error {
		defer func() {
			if v := recover(); v != nil {
				_ = p.Output(2, liblogger.LevelError, fmt.Sprintf("%s panicked: %v", name, v), "")
				panic(v)
			}
		}()

		err := fn()
		if err != nil {
			_ = p.Output(2, liblogger.LevelError, fmt.Sprintf("%s failed: %v", name, err), "")
		}
		return err
	}
}

// Arg is a named argument value for LogArgs
type Arg struct {
	Name  string
	Value any
}

// LogArgs logs the arguments, in order, before running fn
func LogArgs(p Producer, name string, fn func(), args ...Arg) func() {
	parts := make([]string, 0, len(args))
	kv := make([]any, 0, len(args)*2)
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%s = %v", a.Name, a.Value))
		kv = append(kv, a.Name, a.Value)
	}
	msg := fmt.Sprintf("Entering %s with args: %s", name, strings.Join(parts, ", "))
	context := liblogger.FormatContext(kv...)

	return func() {
		_ = p.Output(2, liblogger.LevelInfo, msg, context)
		fn()
	}
}

// Audit logs "AUDIT: name called" with the acting user before running fn,
// and the outcome after it
func Audit(p Producer, name, userID string, fn func() error) func() error {
	return func() error {
		_ = p.Output(2, liblogger.LevelInfo, "AUDIT: "+name+" called", liblogger.FormatContext("user_id", userID))
		err := fn()
		if err != nil {
			_ = p.Output(2, liblogger.LevelWarn, "AUDIT: "+name+" failed",
				liblogger.FormatContext("user_id", userID, "error", err))
			return err
		}
		_ = p.Output(2, liblogger.LevelInfo, "AUDIT: "+name+" succeeded", liblogger.FormatContext("user_id", userID))
		return nil
	}
}
