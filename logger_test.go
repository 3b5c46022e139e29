package liblogger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySink records everything written to it
type memorySink struct {
	mu       sync.Mutex
	records  []Record
	closed   bool
	syncs    int
	closeErr error
}

func (s *memorySink) Write(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("memory sink closed")
	}
	s.records = append(s.records, r)
	return nil
}

func (s *memorySink) Sync() error {
	s.mu.Lock()
	s.syncs++
	s.mu.Unlock()
	return nil
}

func (s *memorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.closeErr
}

func (s *memorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *memorySink) Messages() []string {
	var msgs []string
	for _, r := range s.Records() {
		msgs = append(msgs, r.Message)
	}
	return msgs
}

// gatedSink blocks the write of a record whose message is "gate" until release is closed.
// Records named in discard are swallowed without reaching the inner sink.
type gatedSink struct {
	inner   Sink
	entered chan struct{}
	release chan struct{}
	discard map[string]bool
	failOn  map[string]error
}

func newGatedSink(inner Sink) *gatedSink {
	return &gatedSink{
		inner:   inner,
		entered: make(chan struct{}),
		release: make(chan struct{}),
		discard: map[string]bool{"gate": true},
		failOn:  map[string]error{},
	}
}

func (s *gatedSink) Write(r Record) error {
	if r.Message == "gate" {
		close(s.entered)
		<-s.release
	}
	if err, ok := s.failOn[r.Message]; ok {
		return err
	}
	if s.discard[r.Message] {
		return nil
	}
	return s.inner.Write(r)
}

func (s *gatedSink) Close() error {
	return s.inner.Close()
}

// createTestLogger creates a file logger in a temp directory
func createTestLogger(t testing.TB) (*Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.SinkKind = SinkFile
	cfg.LogFolder = tmpDir
	cfg.FilePath = "app.log"
	cfg.BufferSize = 100
	cfg.FlushIntervalMs = 10

	logger, err := New(cfg)
	require.NoError(t, err)
	return logger, tmpDir
}

// createMemoryLogger creates a logger backed by a memorySink
func createMemoryLogger(t testing.TB, modify func(*Config)) (*Logger, *memorySink) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Threshold = LevelDebug
	cfg.FlushIntervalMs = 10
	if modify != nil {
		modify(cfg)
	}
	sink := &memorySink{}
	logger, err := NewWithSink(cfg, sink)
	require.NoError(t, err)
	return logger, sink
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimSuffix(string(content), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// TestNewValidatesConfig verifies construction errors for bad input
func TestNewValidatesConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.BufferSize = 0
	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer_size")

	_, err = NewWithSink(DefaultConfig(), nil)
	assert.Error(t, err)
}

// TestNewFileSinkFatalError verifies that an unusable log folder fails at construction
func TestNewFileSinkFatalError(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cfg := DefaultConfig()
	cfg.SinkKind = SinkFile
	cfg.LogFolder = filepath.Join(blocker, "logs")

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

// TestThresholdFiltering verifies that only records at or above the threshold are written
func TestThresholdFiltering(t *testing.T) {
	logger, sink := createMemoryLogger(t, func(c *Config) { c.Threshold = LevelWarn })

	require.NoError(t, logger.Debug("debug message"))
	require.NoError(t, logger.Info("info message"))
	require.NoError(t, logger.Error("error message"))
	require.NoError(t, logger.Shutdown())

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "error message", records[0].Message)
	assert.Equal(t, LevelError, records[0].Level)
	assert.False(t, logger.Enabled(LevelInfo))
	assert.True(t, logger.Enabled(LevelWarn))
}

// TestThresholdFilteringFile verifies the threshold scenario against a real file
func TestThresholdFilteringFile(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewBuilder().
		File(tmpDir, "app.log").
		ThresholdString("warn").
		Build()
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Error("visible")
	require.NoError(t, logger.Shutdown())

	lines := readLines(t, filepath.Join(tmpDir, "app.log"))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[ERROR]")
	assert.Contains(t, lines[0], "visible")
}

// TestCallerCapture verifies the source location of level methods
func TestCallerCapture(t *testing.T) {
	logger, sink := createMemoryLogger(t, nil)

	logger.Info("where am i")
	require.NoError(t, logger.Shutdown())

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "logger_test.go", records[0].File)
	assert.Greater(t, records[0].Line, 0)
	assert.Equal(t, "github.com/raymanaeron/liblogger", records[0].Module)
	assert.Equal(t, "TestCallerCapture", records[0].Function)
	assert.False(t, records[0].Timestamp.IsZero())
}

// TestContextRendering verifies key/value pairs become the record context
func TestContextRendering(t *testing.T) {
	logger, sink := createMemoryLogger(t, nil)

	logger.Info("with context", "user", "alice", "attempt", 2)
	logger.Warn("no context")
	logger.LogContext(LevelError, "raw context", "request_id=42")
	require.NoError(t, logger.Shutdown())

	records := sink.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "user=alice attempt=2", records[0].Context)
	assert.Equal(t, "", records[1].Context)
	assert.Equal(t, "request_id=42", records[2].Context)
	assert.Equal(t, "logger_test.go", records[2].File)
}

// helperThatLogs reports its caller's location through Output
func helperThatLogs(l *Logger) error {
	return l.Output(2, LevelInfo, "from helper", "")
}

// TestOutputCallDepth verifies Output attributes the record to the requested frame
func TestOutputCallDepth(t *testing.T) {
	logger, sink := createMemoryLogger(t, nil)

	require.NoError(t, helperThatLogs(logger))
	require.NoError(t, logger.Shutdown())

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "TestOutputCallDepth", records[0].Function)
}

// TestInternalLogDisabled verifies diagnostics respect configuration
func TestInternalLogDisabled(t *testing.T) {
	logger, _ := createMemoryLogger(t, func(c *Config) { c.InternalErrorsToStderr = false })
	var buf bytes.Buffer
	logger.internalOut = &buf

	logger.internalLog("should not appear\n")
	assert.Empty(t, buf.String())

	logger.cfg.InternalErrorsToStderr = true
	logger.internalLog("visible %d\n", 1)
	assert.Equal(t, "liblogger: visible 1\n", buf.String())

	require.NoError(t, logger.Shutdown())
}

// TestConcurrentLogging verifies no record is lost under concurrent producers
func TestConcurrentLogging(t *testing.T) {
	logger, tmpDir := createTestLogger(t)

	const goroutines = 10
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				assert.NoError(t, logger.Info("concurrent", "goroutine", id, "n", j))
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, logger.Shutdown(5*time.Second))

	lines := readLines(t, filepath.Join(tmpDir, "app.log"))
	assert.Len(t, lines, goroutines*perGoroutine)
	stats := logger.Stats()
	assert.Equal(t, uint64(goroutines*perGoroutine), stats.Processed)
}
