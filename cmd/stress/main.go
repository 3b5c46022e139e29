package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/raymanaeron/liblogger"
)

var levels = []int64{
	liblogger.LevelDebug,
	liblogger.LevelInfo,
	liblogger.LevelWarn,
	liblogger.LevelError,
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

// payload returns a random message of up to maxLen bytes
func payload(rng *rand.Rand, maxLen int) string {
	b := make([]byte, rng.Intn(maxLen)+10)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

// produce logs perWorker records, stopping early when ctx is cancelled
func produce(ctx context.Context, logger *liblogger.Logger, id, perWorker, maxLen int) (fallbackErrs int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
	for seq := 0; seq < perWorker; seq++ {
		if ctx.Err() != nil {
			return
		}
		err := logger.Log(levels[rng.Intn(len(levels))], payload(rng, maxLen),
			"worker", id,
			"seq", seq,
			"rnd", rng.Int63(),
		)
		if err != nil {
			fallbackErrs++
		}
	}
	return
}

// report prints the logger counters until ctx is done
func report(ctx context.Context, logger *liblogger.Logger) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := logger.Stats()
			fmt.Printf("\rprocessed=%d fallback=%d buffered=%d rotations=%d   ",
				s.Processed, s.FallbackWrites, s.Buffered, s.Rotations)
		}
	}
}

func main() {
	workers := flag.Int("workers", 500, "number of producer goroutines")
	perWorker := flag.Int("records", 100, "records per producer")
	maxLen := flag.Int("max-message", 10000, "maximum message size in bytes")
	bufferSize := flag.Int("buffer", 500, "channel capacity")
	logsDir := flag.String("dir", "./logs", "log folder, removed before the run")
	flag.Parse()

	fmt.Println("--- Logger Stress Test ---")
	_ = os.RemoveAll(*logsDir)

	// Small buffer and file size force fallback writes and frequent rotation
	cfg, err := liblogger.NewConfigFromOverrides(
		"sink_kind=file",
		"log_folder="+*logsDir,
		"file_path=stress.log",
		"threshold=debug",
		fmt.Sprintf("buffer_size=%d", *bufferSize),
		"max_file_size_bytes=1MB",
		"flush_interval_ms=50",
		"shutdown_timeout_ms=10000",
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build config: %v\n", err)
		os.Exit(1)
	}

	logger, err := liblogger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	reportCtx, stopReport := context.WithCancel(ctx)
	go report(reportCtx, logger)

	fmt.Printf("%d workers x %d records, buffer %d. Press Ctrl+C to stop early.\n",
		*workers, *perWorker, *bufferSize)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		fallbackErrs int
	)
	start := time.Now()
	for id := 0; id < *workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			n := produce(ctx, logger, id, *perWorker, *maxLen)
			mu.Lock()
			fallbackErrs += n
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	elapsed := time.Since(start)
	stopReport()

	fmt.Printf("\n--- Producers finished in %v ---\n", elapsed.Round(time.Millisecond))

	if err := logger.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	}

	s := logger.Stats()
	fmt.Printf("Processed:        %d\n", s.Processed)
	fmt.Printf("Fallback writes:  %d\n", s.FallbackWrites)
	fmt.Printf("Fallback errors:  %d\n", fallbackErrs)
	fmt.Printf("Failed writes:    %d\n", s.FailedWrites)
	fmt.Printf("Lost:             %d\n", s.Lost)
	fmt.Printf("Rotations:        %d\n", s.Rotations)
	if elapsed > 0 {
		fmt.Printf("Records/sec:      %.0f\n", float64(s.Processed)/elapsed.Seconds())
	}
	fmt.Printf("Check log files in '%s'.\n", *logsDir)
}
