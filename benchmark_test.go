package liblogger

import (
	"testing"
)

// BenchmarkLoggerInfo benchmarks the performance of standard Info logging to a file
func BenchmarkLoggerInfo(b *testing.B) {
	logger, _ := createTestLogger(b)
	defer logger.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "i", i)
	}
}

// BenchmarkLoggerContext benchmarks context rendering with mixed value types
func BenchmarkLoggerContext(b *testing.B) {
	logger, _ := createMemoryLogger(b, nil)
	defer logger.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark", "user_id", 123, "action", "benchmark", "value", 42.5)
	}
}

// BenchmarkFilteredRecord benchmarks the cost of a record below the threshold
func BenchmarkFilteredRecord(b *testing.B) {
	logger, _ := createMemoryLogger(b, func(c *Config) { c.Threshold = LevelError })
	defer logger.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("dropped", "i", i)
	}
}

// BenchmarkFormatLine benchmarks text rendering of a record
func BenchmarkFormatLine(b *testing.B) {
	r := testRecord(LevelInfo, "benchmark message")
	r.Context = "user_id=123 action=benchmark"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = formatLine(r, "2006-01-02T15:04:05.000Z07:00")
	}
}

// BenchmarkConcurrentLogging benchmarks the logger's performance under concurrent load
func BenchmarkConcurrentLogging(b *testing.B) {
	logger, _ := createTestLogger(b)
	defer logger.Shutdown()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info("concurrent", "i", i)
			i++
		}
	})
}
