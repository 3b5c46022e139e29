package liblogger

import "time"

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	sink Sink
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build validates the configuration and starts a new Logger.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.sink != nil {
		return NewWithSink(b.cfg, b.sink)
	}
	return New(b.cfg)
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Threshold sets the minimum delivered level.
func (b *Builder) Threshold(level int64) *Builder {
	b.cfg.Threshold = level
	return b
}

// ThresholdString sets the minimum delivered level from a name.
func (b *Builder) ThresholdString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Threshold = levelVal
	return b
}

// Console selects the console sink writing to target ("stdout" or "stderr").
func (b *Builder) Console(target string) *Builder {
	b.cfg.SinkKind = SinkConsole
	b.cfg.ConsoleTarget = target
	return b
}

// File selects the file sink.
func (b *Builder) File(folder, filePath string) *Builder {
	b.cfg.SinkKind = SinkFile
	b.cfg.LogFolder = folder
	b.cfg.FilePath = filePath
	return b
}

// MaxFileSizeBytes sets the rotation threshold, 0 disables rotation.
func (b *Builder) MaxFileSizeBytes(size int64) *Builder {
	b.cfg.MaxFileSizeBytes = size
	return b
}

// MaxFileSizeMB sets the rotation threshold in MiB. Convenience.
func (b *Builder) MaxFileSizeMB(size int64) *Builder {
	b.cfg.MaxFileSizeBytes = size * 1024 * 1024
	return b
}

// HTTP selects the HTTP sink.
func (b *Builder) HTTP(endpoint string, timeout time.Duration) *Builder {
	b.cfg.SinkKind = SinkHTTP
	b.cfg.HTTPEndpoint = endpoint
	b.cfg.HTTPTimeoutMs = timeout.Milliseconds()
	return b
}

// Sink uses a custom sink instead of the configured kind.
func (b *Builder) Sink(sink Sink) *Builder {
	b.sink = sink
	return b
}

// BufferSize sets the channel capacity.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// ShutdownTimeout sets the default drain wait of Shutdown.
func (b *Builder) ShutdownTimeout(timeout time.Duration) *Builder {
	b.cfg.ShutdownTimeoutMs = timeout.Milliseconds()
	return b
}

// FlushIntervalMs sets the periodic sink sync interval.
func (b *Builder) FlushIntervalMs(interval int64) *Builder {
	b.cfg.FlushIntervalMs = interval
	return b
}

// TimestampFormat sets the layout used in text output.
func (b *Builder) TimestampFormat(layout string) *Builder {
	b.cfg.TimestampFormat = layout
	return b
}

// HeartbeatIntervalS enables periodic statistics records, 0 disables.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// InternalErrorsToStderr toggles internal diagnostics.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Overrides applies "key=value" strings, errors are deferred to Build.
func (b *Builder) Overrides(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err == nil {
			err = applyConfigField(b.cfg, key, value)
		}
		if err != nil {
			b.err = err
			return b
		}
	}
	return b
}

// Example usage:
// logger, err := liblogger.NewBuilder().
//
//	File("/var/log/app", "app.log").
//	ThresholdString("debug").
//	MaxFileSizeMB(10).
//	BufferSize(4096).
//	Build()
//
// if err == nil {
//
//	 defer logger.Shutdown()
//	 logger.Info("Logger initialized successfully")
//
// }
