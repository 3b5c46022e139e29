package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/raymanaeron/liblogger"
)

// TestPayload defines a struct for testing complex type rendering.
type TestPayload struct {
	RequestID uint64
	User      string
	Metrics   map[string]float64
}

func main() {
	fmt.Println("--- Logger Context Rendering Test ---")

	// A byte slice with special characters (newline, tab, null).
	byteRecord := []byte("binary\ndata\twith\x00null")

	// A struct containing a uint64, a string, and a map.
	structRecord := TestPayload{
		RequestID: 9223372036854775807,
		User:      "test_user",
		Metrics: map[string]float64{
			"latency_ms":  15.7,
			"cpu_percent": 88.2,
		},
	}

	logger, err := liblogger.NewWithSink(liblogger.DefaultConfig(),
		liblogger.NewConsoleSink(os.Stdout, time.RFC3339))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}

	// Control characters are hex encoded, one record always stays on one line
	fmt.Println("\n[1] Byte and multi-line values")
	logger.Info("byte record", "payload", byteRecord)
	logger.Info("multi\nline message", "note", "second\r\nline")

	// Composite values are rendered compactly
	fmt.Println("\n[2] Struct, map and error values")
	logger.Info("struct record", "payload", structRecord)
	logger.Warn("map record", "tags", map[string]int{"a": 1, "b": 2})
	logger.Error("error record", "err", errors.New("disk quota exceeded"))

	// Odd argument counts keep the dangling value
	fmt.Println("\n[3] Pre-rendered and odd contexts")
	logger.LogContext(liblogger.LevelInfo, "pre-rendered", liblogger.FormatContext("trace", "abc", "span", 7))
	logger.Info("dangling key", "orphan")

	if err := logger.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
	fmt.Println("\n--- Test Complete ---")
}
