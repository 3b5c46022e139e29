package main

import (
	"fmt"
	"os"
	"time"

	"github.com/raymanaeron/liblogger"
)

func main() {
	// Test cycle: disabled -> 1s -> 2s -> threshold above info -> disabled
	rounds := []struct {
		intervalS   int64
		threshold   string
		description string
	}{
		{0, "debug", "Heartbeats disabled"},
		{1, "debug", "Heartbeat every second"},
		{2, "info", "Heartbeat every two seconds"},
		{1, "warn", "Heartbeats filtered by threshold"},
		{0, "debug", "Heartbeats disabled (final)"},
	}

	for i, round := range rounds {
		// Each round gets its own logger, the previous one is shut down first
		logger, err := liblogger.NewBuilder().
			File("./logs", "heartbeat.log").
			ThresholdString(round.threshold).
			HeartbeatIntervalS(round.intervalS).
			Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n--- Round %d: %s ---\n", i+1, round.description)
		logger.Warn("Heartbeat test started", "interval_s", round.intervalS, "description", round.description)

		// Generate some logs to move the heartbeat counters
		for j := 0; j < 10; j++ {
			logger.Debug("Debug test log", "iteration", j)
			logger.Info("Info test log", "iteration", j)
			logger.Warn("Warning test log", "iteration", j)
			logger.Error("Error test log", "iteration", j)
			time.Sleep(100 * time.Millisecond)
		}

		waitTime := 3 * time.Second
		fmt.Printf("Waiting %v for heartbeats to generate...\n", waitTime)
		time.Sleep(waitTime)

		logger.Warn("Heartbeat test completed for round", "round", i+1)
		if err := logger.Shutdown(2 * time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to shut down logger: %v\n", err)
		}
	}

	fmt.Println("\nHeartbeat test program completed successfully")
	fmt.Println("Check logs directory for generated log files")
}
