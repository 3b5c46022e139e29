package main

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/raymanaeron/liblogger"
)

// Simulate rapid reconfiguration by swapping logger instances under load
func main() {
	var attempted, rejected atomic.Int64
	var current atomic.Pointer[liblogger.Logger]

	first, err := liblogger.NewBuilder().File("./logs", "reconfig.log").Build()
	if err != nil {
		fmt.Printf("Initial build error: %v\n", err)
		return
	}
	current.Store(first)

	// Log something constantly
	stop := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			err := current.Load().Info("Test log", "i", i)
			attempted.Add(1)
			if errors.Is(err, liblogger.ErrLoggerClosed) {
				rejected.Add(1)
			}
			time.Sleep(time.Millisecond)
		}
	}()

	// Trigger multiple reconfigurations rapidly
	for i := 0; i < 10; i++ {
		next, err := liblogger.NewBuilder().
			File("./logs", "reconfig.log").
			BufferSize(int64(100 * (i + 1))).
			Build()
		if err != nil {
			fmt.Printf("Build error: %v\n", err)
			continue
		}
		old := current.Swap(next)
		if err := old.Shutdown(time.Second); err != nil {
			fmt.Printf("Shutdown error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	close(stop)
	<-finished

	last := current.Load()
	if err := last.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}

	// Records that raced a swap are rejected, never lost silently
	fmt.Printf("Total logs attempted: %d\n", attempted.Load())
	fmt.Printf("Rejected during swaps: %d\n", rejected.Load())
}
