package compat

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/raymanaeron/liblogger"
)

// Builder creates adapters for gnet, fasthttp, zap and zerolog that share one logger.
// It can use an existing *liblogger.Logger instance or create a new one from a *liblogger.Config.
type Builder struct {
	logger *liblogger.Logger
	logCfg *liblogger.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithLogger(l *liblogger.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("liblogger/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance.
// If neither WithLogger nor WithConfig is used, a default logger is created.
func (b *Builder) WithConfig(cfg *liblogger.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*liblogger.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = liblogger.DefaultConfig()
	}

	l, err := liblogger.New(cfg)
	if err != nil {
		return nil, err
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that extracts key=value pairs
// from format strings into the record context
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildZap creates a *zap.Logger backed by a ZapCore
func (b *Builder) BuildZap(opts ...zap.Option) (*zap.Logger, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l, opts...), nil
}

// BuildZerolog creates a zerolog.Logger backed by a ZerologWriter
func (b *Builder) BuildZerolog() (zerolog.Logger, error) {
	l, err := b.getLogger()
	if err != nil {
		return zerolog.Nop(), err
	}
	return NewZerolog(l), nil
}

// GetLogger returns the underlying *liblogger.Logger instance.
// If a logger has not been provided or created yet, it will be initialized.
func (b *Builder) GetLogger() (*liblogger.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
//	appLogger, err := liblogger.NewBuilder().
//		File("/var/log/app", "app.log").
//		ThresholdString("debug").
//		Build()
//	if err != nil { /* handle error */ }
//	defer appLogger.Shutdown()
//
//	builder := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//
//	zapLogger, _ := builder.BuildZap()
//	zapLogger.Info("ready", zap.Int("port", 8080))
