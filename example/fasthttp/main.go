package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/raymanaeron/liblogger"
	"github.com/raymanaeron/liblogger/compat"
)

func main() {
	// Create and configure logger
	logger, err := liblogger.NewBuilder().
		File("/var/log/fasthttp", "server.log").
		ThresholdString("info").
		BufferSize(2048).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	builder := compat.NewBuilder().WithLogger(logger)

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter, err := builder.BuildFastHTTP(
		compat.WithDefaultLevel(liblogger.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)
	if err != nil {
		panic(err)
	}

	// Request logging goes through zap, backed by the same logger
	accessLog, err := builder.BuildZap()
	if err != nil {
		panic(err)
	}
	defer accessLog.Sync()

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			requestHandler(ctx)
			accessLog.Info("request served",
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("path", ctx.Path()),
				zap.Int("status", ctx.Response.StatusCode()),
				zap.Duration("took", time.Since(start)),
			)
		},
		Logger: fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection cannot be served") {
		return liblogger.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return liblogger.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
