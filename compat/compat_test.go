package compat

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raymanaeron/liblogger"
)

// captureSink keeps every record the logger writes
type captureSink struct {
	mu      sync.Mutex
	records []liblogger.Record
}

func (s *captureSink) Write(r liblogger.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *captureSink) Close() error { return nil }

func (s *captureSink) Records() []liblogger.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]liblogger.Record, len(s.records))
	copy(out, s.records)
	return out
}

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T) (*Builder, *liblogger.Logger, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	appLogger, err := liblogger.NewBuilder().
		Sink(sink).
		ThresholdString("debug").
		Build()
	require.NoError(t, err)

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, sink
}

// drain shuts the logger down and returns what reached the sink
func drain(t *testing.T, logger *liblogger.Logger, sink *captureSink) []liblogger.Record {
	t.Helper()
	require.NoError(t, logger.Shutdown(time.Second))
	return sink.Records()
}

func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)
		defer logger.Shutdown()

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Same(t, logger, gnetAdapter.logger)

		got, err := builder.GetLogger()
		require.NoError(t, err)
		assert.Same(t, logger, got)
	})

	t.Run("with config", func(t *testing.T) {
		cfg := liblogger.DefaultConfig()
		cfg.SinkKind = liblogger.SinkFile
		cfg.LogFolder = t.TempDir()

		builder := NewBuilder().WithConfig(cfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger1, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger1.Shutdown()
		assert.Same(t, logger1, fasthttpAdapter.logger)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildGnet()
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := liblogger.DefaultConfig()
		cfg.BufferSize = 0
		_, err := NewBuilder().WithConfig(cfg).BuildZerolog()
		assert.Error(t, err)
	})
}

func TestGnetAdapter(t *testing.T) {
	builder, logger, sink := createTestCompatBuilder(t)

	var fatalCalled bool
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalCalled = true
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	records := drain(t, logger, sink)
	expected := []struct {
		level int64
		msg   string
	}{
		{liblogger.LevelDebug, "gnet debug id=1"},
		{liblogger.LevelInfo, "gnet info id=2"},
		{liblogger.LevelWarn, "gnet warn id=3"},
		{liblogger.LevelError, "gnet error id=4"},
		{liblogger.LevelError, "gnet fatal id=5"},
	}
	require.Len(t, records, len(expected))

	for i, r := range records {
		assert.Equal(t, expected[i].level, r.Level)
		assert.Equal(t, expected[i].msg, r.Message)
		assert.Equal(t, "compat_test.go", r.File, "record %d should point at the call site", i)
		assert.Equal(t, "TestGnetAdapter", r.Function)
	}
	assert.Equal(t, "source=gnet", records[0].Context)
	assert.Equal(t, "source=gnet fatal=true", records[4].Context)
	assert.True(t, fatalCalled, "Custom fatal handler should have been called")
}

func TestGnetAdapterThreshold(t *testing.T) {
	sink := &captureSink{}
	logger, err := liblogger.NewBuilder().Sink(sink).Threshold(liblogger.LevelWarn).Build()
	require.NoError(t, err)

	adapter := NewGnetAdapter(logger)
	adapter.Debugf("poller %d idle", 1)
	adapter.Infof("engine started on %s", "tcp://:9000")
	adapter.Warnf("slow loop %d", 3)

	records := drain(t, logger, sink)
	require.Len(t, records, 1)
	assert.Equal(t, "slow loop 3", records[0].Message)
	assert.Equal(t, "TestGnetAdapterThreshold", records[0].Function)
}

func TestStructuredGnetAdapter(t *testing.T) {
	builder, logger, sink := createTestCompatBuilder(t)

	adapter, err := builder.BuildStructuredGnet()
	require.NoError(t, err)

	adapter.Infof("request served status=%d client_ip=%s", 200, "127.0.0.1")
	adapter.Warnf("plain message %d", 7)

	records := drain(t, logger, sink)
	require.Len(t, records, 2)

	assert.Equal(t, "request served", records[0].Message)
	assert.Equal(t, "status=200 client_ip=127.0.0.1 source=gnet", records[0].Context)
	assert.Equal(t, "compat_test.go", records[0].File)
	assert.Equal(t, "TestStructuredGnetAdapter", records[0].Function)

	assert.Equal(t, "plain message 7", records[1].Message)
	assert.Equal(t, "source=gnet", records[1].Context)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		msg    string
		fields []any
	}{
		{"no pairs", "hello %s", []any{"world"}, "hello world", nil},
		{"pairs", "served status=%d ip=%s", []any{200, "::1"}, "served", []any{"status", 200, "ip", "::1"}},
		{"colon pair", "conn fd: %d", []any{5}, "conn", []any{"fd", 5}},
		{"verb before pair", "worker %d done took=%v", []any{3, "1s"}, "worker 3 done", []any{"took", "1s"}},
		{"trailing text", "id=%d finished %s", []any{1, "ok"}, "finished ok", []any{"id", 1}},
		{"missing args", "a=%d b=%d", []any{1}, "a=1 b=%!d(MISSING)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, fields := parseFormat(tt.format, tt.args)
			assert.Equal(t, tt.msg, msg)
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, sink := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	records := drain(t, logger, sink)
	expectedLevels := []int64{liblogger.LevelInfo, liblogger.LevelDebug, liblogger.LevelWarn, liblogger.LevelError}
	require.Len(t, records, 4)

	for i, r := range records {
		assert.Equal(t, expectedLevels[i], r.Level)
		assert.Equal(t, testMessages[i], r.Message)
		assert.Equal(t, "source=fasthttp", r.Context)
		assert.Equal(t, "compat_test.go", r.File)
	}
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, logger, sink := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(liblogger.LevelWarn),
		WithLevelDetector(func(string) int64 { return liblogger.LevelInfo }),
	)
	require.NoError(t, err)

	adapter.Printf("error words are ignored here")

	records := drain(t, logger, sink)
	require.Len(t, records, 1)
	assert.Equal(t, liblogger.LevelWarn, records[0].Level)
}

func TestDetectLogLevel(t *testing.T) {
	assert.Equal(t, liblogger.LevelError, DetectLogLevel("connection FAILED"))
	assert.Equal(t, liblogger.LevelWarn, DetectLogLevel("deprecated header"))
	assert.Equal(t, liblogger.LevelDebug, DetectLogLevel("trace enabled"))
	assert.Equal(t, liblogger.LevelInfo, DetectLogLevel("listening on :8080"))
}

func TestZapCore(t *testing.T) {
	builder, logger, sink := createTestCompatBuilder(t)

	zl, err := builder.BuildZap()
	require.NoError(t, err)

	zl.Named("api").With(zap.String("service", "billing")).
		Info("charge created", zap.Int("amount", 1299), zap.Error(errors.New("retry later")))
	zl.Debug("cache miss")
	zl.Warn("slow upstream", zap.Duration("took", 1500*time.Millisecond))
	require.NoError(t, zl.Sync())

	records := drain(t, logger, sink)
	require.Len(t, records, 3)

	r := records[0]
	assert.Equal(t, liblogger.LevelInfo, r.Level)
	assert.Equal(t, "charge created", r.Message)
	assert.Equal(t, `amount=1299 error="retry later" logger=api service=billing`, r.Context)
	assert.Equal(t, "compat_test.go", r.File)
	assert.Greater(t, r.Line, 0)
	assert.Equal(t, "TestZapCore", r.Function)

	assert.Equal(t, liblogger.LevelDebug, records[1].Level)
	assert.Equal(t, "", records[1].Context)
	assert.Equal(t, liblogger.LevelWarn, records[2].Level)
	assert.Equal(t, "took=1.5s", records[2].Context)
}

func TestZapCoreThreshold(t *testing.T) {
	sink := &captureSink{}
	logger, err := liblogger.NewBuilder().Sink(sink).Threshold(liblogger.LevelWarn).Build()
	require.NoError(t, err)

	core := NewZapCore(logger)
	assert.False(t, core.Enabled(zap.InfoLevel))
	assert.True(t, core.Enabled(zap.WarnLevel))
	assert.True(t, core.Enabled(zap.DPanicLevel))

	zap.New(core).Info("dropped")
	records := drain(t, logger, sink)
	assert.Empty(t, records)
}

func TestZerologWriter(t *testing.T) {
	builder, logger, sink := createTestCompatBuilder(t)

	zl, err := builder.BuildZerolog()
	require.NoError(t, err)

	zl.Info().Str("user", "alice").Int("attempt", 2).Msg("login ok")
	zl.Error().Err(errors.New("bad password")).Msg("login failed")
	zl.Debug().Caller().Msg("with caller")

	records := drain(t, logger, sink)
	require.Len(t, records, 3)

	assert.Equal(t, liblogger.LevelInfo, records[0].Level)
	assert.Equal(t, "login ok", records[0].Message)
	assert.Equal(t, "attempt=2 user=alice", records[0].Context)
	assert.False(t, records[0].Timestamp.IsZero())

	assert.Equal(t, liblogger.LevelError, records[1].Level)
	assert.Equal(t, `error="bad password"`, records[1].Context)

	assert.Equal(t, liblogger.LevelDebug, records[2].Level)
	assert.Equal(t, "compat_test.go", records[2].File)
	assert.Greater(t, records[2].Line, 0)
}

func TestZerologWriterRawInput(t *testing.T) {
	_, logger, sink := createTestCompatBuilder(t)

	w := NewZerologWriter(logger)
	n, err := w.Write([]byte(`{"level":"warn","message":"from json"}`))
	require.NoError(t, err)
	assert.Equal(t, 38, n)

	_, err = w.WriteLevel(zerolog.ErrorLevel, []byte("not json at all\n"))
	require.NoError(t, err)

	records := drain(t, logger, sink)
	require.Len(t, records, 2)
	assert.Equal(t, liblogger.LevelWarn, records[0].Level)
	assert.Equal(t, "from json", records[0].Message)
	assert.Equal(t, liblogger.LevelError, records[1].Level)
	assert.Equal(t, "not json at all", records[1].Message)
}

func TestSplitCaller(t *testing.T) {
	file, line := splitCaller("/src/app/handler.go:42")
	assert.Equal(t, "handler.go", file)
	assert.Equal(t, 42, line)

	file, line = splitCaller("weird")
	assert.Equal(t, "weird", file)
	assert.Zero(t, line)
}
