package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/raymanaeron/liblogger"
)

const (
	logDirectory = "./temp_logs"
	logInterval  = 200 * time.Millisecond
)

// main runs the same phase against every sink kind.
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- Running Sink Test Suite ---")
	fmt.Printf("! All file-based logs will be in the '%s' directory.\n\n", logDirectory)

	runTestPhase("1: File", liblogger.NewBuilder().File(logDirectory, "file_only.log"))
	runTestPhase("2: Stdout", liblogger.NewBuilder().Console(liblogger.TargetStdout))

	fmt.Fprintln(os.Stderr, "\n---")
	runTestPhase("3: Stderr", liblogger.NewBuilder().Console(liblogger.TargetStderr))
	fmt.Fprintln(os.Stderr, "---")

	testHTTPSink()
	testCustomSink()

	fmt.Println("\n--- Sink Test Suite Complete ---")
	fmt.Printf("Check the '%s' directory for log files.\n", logDirectory)
}

// testHTTPSink posts records to a local collector that prints each payload.
func testHTTPSink() {
	srv := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			var payload map[string]any
			if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
				ctx.Error(err.Error(), fasthttp.StatusBadRequest)
				return
			}
			fmt.Printf("  collector received: level=%v message=%v context=%v\n",
				payload["level"], payload["message"], payload["context"])
			ctx.SetStatusCode(fasthttp.StatusNoContent)
		},
	}
	go srv.ListenAndServe("127.0.0.1:18080")
	defer srv.Shutdown()
	time.Sleep(50 * time.Millisecond)

	runTestPhase("4: HTTP", liblogger.NewBuilder().HTTP("http://127.0.0.1:18080/logs", time.Second))
}

// upperSink is a custom sink that prints upper-cased messages.
type upperSink struct {
	mu sync.Mutex
}

func (s *upperSink) Write(r liblogger.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Printf("  CUSTOM %d %s %s\n", r.Level, strings.ToUpper(r.Message), r.Context)
	return err
}

func (s *upperSink) Close() error { return nil }

func testCustomSink() {
	runTestPhase("5: Custom sink", liblogger.NewBuilder().Sink(&upperSink{}))
}

// runTestPhase builds a logger, writes one record per level and shuts down.
func runTestPhase(phaseName string, builder *liblogger.Builder) {
	fmt.Printf("\n[Phase %s]\n", phaseName)

	logger, err := builder.ThresholdString("debug").Build()
	if err != nil {
		fmt.Printf("  ERROR: Failed to build logger: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("start phase", "name", phaseName)
	logger.Info("This is an info message.")
	logger.Warn("This is a warning message.")
	logger.Error("This is an error message.", "phase", phaseName)
	time.Sleep(logInterval)

	if err := logger.Shutdown(500 * time.Millisecond); err != nil {
		fmt.Printf("  WARNING: Shutdown error in phase '%s': %v\n", phaseName, err)
	}
	stats := logger.Stats()
	fmt.Printf("  processed=%d failed=%d\n", stats.Processed, stats.FailedWrites)
}
