package liblogger

import (
	"fmt"
	"strconv"
	"strings"
)

// NewConfigFromOverrides builds a Config from the defaults and "key=value" overrides.
//
// Example:
//
//	cfg, err := liblogger.NewConfigFromOverrides(
//	    "sink_kind=file",
//	    "log_folder=/var/log/app",
//	    "threshold=warn",
//	)
func NewConfigFromOverrides(overrides ...string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyOverride(overrides...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverride applies "key=value" overrides to the configuration and validates the result.
// All parse errors are collected and returned together.
func (c *Config) ApplyOverride(overrides ...string) error {
	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(c, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return c.Validate()
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("liblogger: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), errPrefix)
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Output selection
	case "sink_kind":
		cfg.SinkKind = strings.ToLower(value)
	case "threshold":
		// Accept both numeric and named values
		if numVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			cfg.Threshold = numVal
		} else {
			levelVal, err := Level(value)
			if err != nil {
				return fmtErrorf("invalid threshold value '%s': %w", value, err)
			}
			cfg.Threshold = levelVal
		}

	// File sink
	case "file_path":
		cfg.FilePath = value
	case "log_folder":
		cfg.LogFolder = value
	case "max_file_size_bytes":
		intVal, err := parseSize(value)
		if err != nil {
			return fmtErrorf("invalid size value for max_file_size_bytes '%s': %w", value, err)
		}
		cfg.MaxFileSizeBytes = intVal

	// HTTP sink
	case "http_endpoint":
		cfg.HTTPEndpoint = value
	case "http_timeout_ms":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for http_timeout_ms '%s': %w", value, err)
		}
		cfg.HTTPTimeoutMs = intVal

	// Console sink and formatting
	case "console_target":
		cfg.ConsoleTarget = value
	case "timestamp_format":
		cfg.TimestampFormat = value

	// Delivery engine
	case "buffer_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for buffer_size '%s': %w", value, err)
		}
		cfg.BufferSize = intVal
	case "shutdown_timeout_ms":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for shutdown_timeout_ms '%s': %w", value, err)
		}
		cfg.ShutdownTimeoutMs = intVal
	case "flush_interval_ms":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for flush_interval_ms '%s': %w", value, err)
		}
		cfg.FlushIntervalMs = intVal

	// Heartbeat
	case "heartbeat_interval_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for heartbeat_interval_s '%s': %w", value, err)
		}
		cfg.HeartbeatIntervalS = intVal

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}

// parseSize accepts a plain byte count or a KB/MB suffixed value (1024 based)
func parseSize(value string) (int64, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(v, "MB"):
		multiplier = 1024 * 1024
		v = strings.TrimSuffix(v, "MB")
	case strings.HasSuffix(v, "KB"):
		multiplier = 1024
		v = strings.TrimSuffix(v, "KB")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, err
	}
	return n * multiplier, nil
}
