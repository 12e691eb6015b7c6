// SPDX-License-Identifier: EPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/ik5/dcadec/formats/dca"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// FileLoggingConfig represents rotating log file settings
type FileLoggingConfig struct {
	Enabled    bool   `json:"enabled"`      // Whether file logging is enabled
	Filename   string `json:"filename"`     // Log file path (empty = XDG cache path)
	MaxSizeMB  int    `json:"max_size_mb"`  // Max file size in MB before rotation
	MaxBackups int    `json:"max_backups"`  // Max number of backup files to keep
	MaxAgeDays int    `json:"max_age_days"` // Max age in days before deletion
	Compress   bool   `json:"compress"`     // Whether to compress rotated files
}

// Config represents dcadec configuration
type Config struct {
	LogLevel     string             `json:"log_level"`              // Log level (debug, info, warn, error)
	Core         string             `json:"core"`                   // Registered decoding core name
	Gain         float64            `json:"gain"`                   // Level multiplier handed to the core
	LevelAdjust  bool               `json:"level_adjust"`           // Ask the core to apply the gain
	DynamicRange bool               `json:"dynamic_range"`          // Keep the stream's dynamic range compression
	ProbeLimit   int                `json:"probe_limit"`            // Bytes searched for the first header
	RetryBudget  int                `json:"retry_budget"`           // Consecutive bad frames before stopping, 0 = no limit
	FileLogging  *FileLoggingConfig `json:"file_logging,omitempty"` // File logging configuration
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Manager loads, validates and saves configuration
type Manager struct {
	fs   afero.Fs
	dirs PathResolver
}

// NewManager creates a configuration manager working on fs
func NewManager(fs afero.Fs) *Manager {
	slog.Debug("creating new config manager")
	return &Manager{
		fs:   fs,
		dirs: NewXDGDirs(),
	}
}

// NewManagerWithPaths is NewManager with custom path discovery
func NewManagerWithPaths(fs afero.Fs, dirs PathResolver) *Manager {
	return &Manager{fs: fs, dirs: dirs}
}

// Default returns the default configuration
func (m *Manager) Default() *Config {
	return &Config{
		LogLevel:     "warn",
		Core:         dca.DefaultCore,
		Gain:         1,
		LevelAdjust:  true,
		DynamicRange: true,
		ProbeLimit:   dca.DefaultProbeLimit,
		RetryBudget:  dca.DefaultRetryBudget,
		FileLogging: &FileLoggingConfig{
			Enabled:    false,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// LoadFromFile loads configuration from a specific file. Fields missing
// from the file keep their default values.
func (m *Manager) LoadFromFile(path string) (*Config, error) {
	slog.Debug("loading config from file", "file_path", path)

	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := m.Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := m.Validate(cfg); err != nil {
		return nil, err
	}

	slog.Debug("config loaded",
		"file_path", path,
		"core", cfg.Core,
		"log_level", cfg.LogLevel)

	return cfg, nil
}

// SaveToFile saves configuration to a specific file
func (m *Manager) SaveToFile(cfg *Config, path string) error {
	if err := m.Validate(cfg); err != nil {
		return fmt.Errorf("cannot save invalid config: %w", err)
	}

	if err := m.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(m.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	slog.Debug("config saved", "file_path", path)
	return nil
}

// Load uses the first config.json found in the XDG config directories, or
// the defaults when there is none.
func (m *Manager) Load() (*Config, error) {
	for _, path := range m.dirs.ConfigPaths("config.json") {
		if _, err := m.fs.Stat(path); err != nil {
			slog.Debug("config file not found", "path", path)
			continue
		}
		return m.LoadFromFile(path)
	}

	slog.Debug("no config file found, using defaults")
	return m.Default(), nil
}

// Validate checks every value and reports all problems at once
func (m *Manager) Validate(cfg *Config) error {
	var problems []string

	if cfg.LogLevel != "" && !slices.Contains(validLogLevels, cfg.LogLevel) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s', must be one of: %s",
			cfg.LogLevel, strings.Join(validLogLevels, ", ")))
	}

	if cfg.Core == "" {
		problems = append(problems, "core cannot be empty")
	}

	if cfg.Gain <= 0 {
		problems = append(problems, fmt.Sprintf("gain must be positive, got %g", cfg.Gain))
	}

	if cfg.ProbeLimit != 0 && cfg.ProbeLimit < dca.HeaderSize {
		problems = append(problems, fmt.Sprintf("probe_limit must be at least %d bytes, got %d",
			dca.HeaderSize, cfg.ProbeLimit))
	}

	if cfg.RetryBudget < 0 {
		problems = append(problems, fmt.Sprintf("retry_budget must be >= 0, got %d", cfg.RetryBudget))
	}

	if fl := cfg.FileLogging; fl != nil {
		if fl.MaxSizeMB < 0 {
			problems = append(problems, fmt.Sprintf("file logging max_size_mb must be >= 0, got %d", fl.MaxSizeMB))
		}
		if fl.MaxBackups < 0 {
			problems = append(problems, fmt.Sprintf("file logging max_backups must be >= 0, got %d", fl.MaxBackups))
		}
		if fl.MaxAgeDays < 0 {
			problems = append(problems, fmt.Sprintf("file logging max_age_days must be >= 0, got %d", fl.MaxAgeDays))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ApplyEnvironmentOverrides returns a copy of cfg with DCADEC_* variables
// applied. Unparsable values are logged and ignored.
func (m *Manager) ApplyEnvironmentOverrides(cfg *Config) *Config {
	result := *cfg
	if cfg.FileLogging != nil {
		fl := *cfg.FileLogging
		result.FileLogging = &fl
	}

	if v := os.Getenv("DCADEC_LOG_LEVEL"); v != "" {
		result.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("DCADEC_CORE"); v != "" {
		result.Core = v
	}

	if v := os.Getenv("DCADEC_GAIN"); v != "" {
		if gain, err := strconv.ParseFloat(v, 64); err == nil {
			result.Gain = gain
		} else {
			slog.Warn("invalid DCADEC_GAIN environment variable", "value", v, "error", err)
		}
	}

	boolEnv := func(name string, dst *bool) {
		v := os.Getenv(name)
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean environment variable", "name", name, "value", v, "error", err)
			return
		}
		*dst = b
	}
	boolEnv("DCADEC_LEVEL_ADJUST", &result.LevelAdjust)
	boolEnv("DCADEC_DYNAMIC_RANGE", &result.DynamicRange)

	intEnv := func(name string, dst *int) {
		v := os.Getenv(name)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer environment variable", "name", name, "value", v, "error", err)
			return
		}
		*dst = n
	}
	intEnv("DCADEC_PROBE_LIMIT", &result.ProbeLimit)
	intEnv("DCADEC_RETRY_BUDGET", &result.RetryBudget)

	if v := os.Getenv("DCADEC_LOG_FILE"); v != "" {
		if result.FileLogging == nil {
			result.FileLogging = m.Default().FileLogging
		}
		result.FileLogging.Enabled = true
		result.FileLogging.Filename = v
	}

	return &result
}

// ResolveLogFilePath returns filename, or the XDG cache location when it
// is empty.
func (m *Manager) ResolveLogFilePath(filename string) string {
	if filename != "" {
		return filename
	}
	return filepath.Join(m.dirs.CachePath("logs"), "dcadec.log")
}

// ParseLevel maps a configured level name to a slog.Level. An empty name
// is LevelWarn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("%w: invalid log level '%s', must be one of: %s",
		ErrInvalidConfig, name, strings.Join(validLogLevels, ", "))
}

// DecoderOptions translates cfg into session options
func (c *Config) DecoderOptions(logger *slog.Logger) []dca.Option {
	opts := []dca.Option{
		dca.WithRetryBudget(c.RetryBudget),
	}
	if logger != nil {
		opts = append(opts, dca.WithLogger(logger))
	}
	if c.Gain > 0 {
		opts = append(opts, dca.WithGain(float32(c.Gain)))
	}
	if !c.LevelAdjust {
		opts = append(opts, dca.WithoutLevelAdjust())
	}
	if !c.DynamicRange {
		opts = append(opts, dca.WithoutDynamicRange())
	}
	if c.ProbeLimit > 0 {
		opts = append(opts, dca.WithProbeLimit(c.ProbeLimit))
	}
	return opts
}
