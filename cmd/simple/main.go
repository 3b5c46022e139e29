package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/raymanaeron/liblogger"
	"github.com/raymanaeron/liblogger/instrument"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[logging]
  sink_kind = "file"
  threshold = -4 # Debug
  log_folder = "./simple_logs"
  file_path = "simple.log"
  max_file_size_bytes = 65536
  buffer_size = 1024
  flush_interval_ms = 100
  # Other settings use defaults
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// --- Setup Config ---
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write example config: %v\n", err)
	} else {
		fmt.Printf("Created example config file: %s\n", configFile)
	}

	cfg, err := liblogger.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// --- Initialize Logger ---
	if err := liblogger.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	// --- Logging ---
	liblogger.Debug("This is a debug message.", "user_id", 123)
	liblogger.Info("Application starting...")
	liblogger.Warn("Potential issue detected.", "threshold", 0.95)
	liblogger.Error("An error occurred!", "code", 500)

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			liblogger.Info("Goroutine started", "id", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			liblogger.Info("Goroutine finished", "id", id)
		}(i)
	}
	wg.Wait()
	fmt.Println("Goroutines finished.")

	// --- Instrumented functions ---
	logger := liblogger.Default()
	instrument.MeasureTime(logger, "warmup", func() {
		time.Sleep(25 * time.Millisecond)
	})()
	_ = instrument.LogErrors(logger, "load_profile", func() error {
		return errors.New("profile not found")
	})()

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger...")
	if err := liblogger.Shutdown(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	stats := logger.Stats()
	fmt.Printf("Processed %d records (%d fallback writes, %d rotations)\n",
		stats.Processed, stats.FallbackWrites, stats.Rotations)
	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in './simple_logs' and the config '%s'.\n", configFile)
}
