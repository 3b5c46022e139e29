package liblogger

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Output selection
	SinkKind  string `toml:"sink_kind" validate:"oneof=console file http"`
	Threshold int64  `toml:"threshold" validate:"oneof=-4 0 4 8"` // Minimum level that is delivered

	// File sink
	FilePath         string `toml:"file_path" validate:"required_if=SinkKind file"`
	LogFolder        string `toml:"log_folder" validate:"required_if=SinkKind file"`
	MaxFileSizeBytes int64  `toml:"max_file_size_bytes" validate:"gte=0"` // 0 disables rotation

	// HTTP sink
	HTTPEndpoint  string `toml:"http_endpoint" validate:"required_if=SinkKind http,omitempty,url"`
	HTTPTimeoutMs int64  `toml:"http_timeout_ms" validate:"gt=0"`

	// Console sink
	ConsoleTarget string `toml:"console_target" validate:"oneof=stdout stderr"`

	// Formatting
	TimestampFormat string `toml:"timestamp_format" validate:"required"`

	// Delivery engine
	BufferSize        int64 `toml:"buffer_size" validate:"gt=0"`         // Channel capacity
	ShutdownTimeoutMs int64 `toml:"shutdown_timeout_ms" validate:"gt=0"` // Bounded drain wait
	FlushIntervalMs   int64 `toml:"flush_interval_ms" validate:"gt=0"`   // Periodic sink sync

	// Heartbeat
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s" validate:"gte=0"` // 0 disables

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	SinkKind:  SinkConsole,
	Threshold: LevelInfo,

	FilePath:         "app.log",
	LogFolder:        "logs",
	MaxFileSizeBytes: 10 * 1024 * 1024,

	HTTPEndpoint:  "http://localhost:8080/logs",
	HTTPTimeoutMs: 5000,

	ConsoleTarget:   TargetStdout,
	TimestampFormat: time.RFC3339Nano,

	BufferSize:        1024,
	ShutdownTimeoutMs: 5000,
	FlushIntervalMs:   1000,

	HeartbeatIntervalS: 0,

	InternalErrorsToStderr: true,
}

// configSection is the TOML table holding logger settings
const configSection = "logging."

var (
	configValidator *validator.Validate
	validatorOnce   sync.Once
)

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [logging] table of a TOML file.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct(configSection, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, configSection, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig copies loaded values into cfg, keeping defaults for absent keys
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(tomlTag, v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", tomlTag, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(key, fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets the field named key with proper type conversion.
// String values for integer fields are parsed per key, see parseIntField.
func setFieldValue(key string, field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		case string:
			n, err := parseIntField(key, v)
			if err != nil {
				return err
			}
			field.SetInt(n)
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// parseIntField parses a string given for an integer field. threshold also
// accepts level names, max_file_size_bytes also accepts KB/MB suffixes.
func parseIntField(key, value string) (int64, error) {
	switch key {
	case "threshold":
		if n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return n, nil
		}
		return Level(value)
	case "max_file_size_bytes":
		n, err := parseSize(value)
		if err != nil {
			return 0, fmt.Errorf("invalid size '%s' for %s: %w", value, key, err)
		}
		return n, nil
	default:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer '%s' for %s: %w", value, key, err)
		}
		return n, nil
	}
}

// getValidator returns the shared validator, reporting fields by toml name
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		configValidator = validator.New(validator.WithRequiredStructEnabled())
		configValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return configValidator
}

// Validate checks the configuration and reports every invalid field
func (c *Config) Validate() error {
	if c == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmtErrorf("invalid configuration: %w", err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		check := fe.Tag()
		if fe.Param() != "" {
			check += "=" + fe.Param()
		}
		errs = append(errs, fmtErrorf("invalid %s: '%v' (failed %s)", fe.Field(), fe.Value(), check))
	}
	return combineConfigErrors(errs)
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

func (c *Config) httpTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

func (c *Config) shutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

func (c *Config) flushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}
