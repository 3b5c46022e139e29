package liblogger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("successful build returns configured logger", func(t *testing.T) {
		tmpDir := t.TempDir()

		logger, err := NewBuilder().
			File(tmpDir, "svc.log").
			ThresholdString("debug").
			BufferSize(2048).
			MaxFileSizeMB(10).
			ShutdownTimeout(2 * time.Second).
			FlushIntervalMs(50).
			TimestampFormat(time.RFC3339).
			HeartbeatIntervalS(60).
			Build()
		if logger != nil {
			defer logger.Shutdown()
		}

		require.NoError(t, err, "Build should not return an error on valid config")
		require.NotNil(t, logger)

		cfg := logger.Config()
		assert.Equal(t, SinkFile, cfg.SinkKind)
		assert.Equal(t, tmpDir, cfg.LogFolder)
		assert.Equal(t, "svc.log", cfg.FilePath)
		assert.Equal(t, LevelDebug, cfg.Threshold)
		assert.Equal(t, int64(2048), cfg.BufferSize)
		assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSizeBytes)
		assert.Equal(t, int64(2000), cfg.ShutdownTimeoutMs)
		assert.Equal(t, int64(50), cfg.FlushIntervalMs)
		assert.Equal(t, time.RFC3339, cfg.TimestampFormat)
		assert.Equal(t, int64(60), cfg.HeartbeatIntervalS)
		assert.FileExists(t, filepath.Join(tmpDir, "svc.log"))
	})

	t.Run("builder error accumulation", func(t *testing.T) {
		logger, err := NewBuilder().
			ThresholdString("invalid-level-string").
			Overrides("buffer_size=10").
			Build()

		require.Error(t, err, "Build should fail with an invalid level string")
		assert.Contains(t, err.Error(), "invalid level string")
		assert.Nil(t, logger)
	})

	t.Run("validation error", func(t *testing.T) {
		logger, err := NewBuilder().
			Console("stdlog").
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "console_target")
		assert.Nil(t, logger)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := NewBuilder().
			Overrides("threshold=error", "buffer_size=32").
			Config()
		require.NoError(t, err)
		assert.Equal(t, LevelError, cfg.Threshold)
		assert.Equal(t, int64(32), cfg.BufferSize)

		_, err = NewBuilder().Overrides("bogus=1").Build()
		assert.Error(t, err)
	})

	t.Run("custom sink", func(t *testing.T) {
		sink := &memorySink{}
		logger, err := NewBuilder().
			Sink(sink).
			Threshold(LevelWarn).
			Build()
		require.NoError(t, err)

		logger.Info("skipped")
		logger.Warn("kept")
		require.NoError(t, logger.Shutdown())

		assert.Equal(t, []string{"kept"}, sink.Messages())
	})

	t.Run("http selection", func(t *testing.T) {
		cfg, err := NewBuilder().
			HTTP("https://collector.example.com/logs", 750*time.Millisecond).
			Config()
		require.NoError(t, err)
		assert.Equal(t, SinkHTTP, cfg.SinkKind)
		assert.Equal(t, int64(750), cfg.HTTPTimeoutMs)
	})
}
