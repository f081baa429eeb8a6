// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config represents the configuration that can be loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Layout
	Template     string  `json:"template,omitempty" toml:"template" validate:"omitempty,oneof=classic banner"` // Template variant
	PageBudgetMm float64 `json:"page_budget_mm,omitempty" toml:"page_budget_mm" validate:"gte=0,lte=297"`      // Overrides the variant's budget when > 0
	FailOnTight  bool    `json:"fail_on_tight,omitempty" toml:"fail_on_tight"`                                 // Treat estimated overflow as an error

	// Output
	Format string `json:"format,omitempty" toml:"format" validate:"omitempty,oneof=html latex"` // Render format
	Output string `json:"output,omitempty" toml:"output"`                                       // Output path ("" = stdout)

	// Behavior
	Verbose     bool `json:"verbose,omitempty" toml:"verbose"`                          // Print detailed debug information
	Concurrency int  `json:"concurrency,omitempty" toml:"concurrency" validate:"gte=0"` // Parallel documents in batch mode

	// Server
	Port        int    `json:"port,omitempty" toml:"port" validate:"gte=0,lte=65535"` // HTTP port
	DatabaseURL string `json:"database_url,omitempty" toml:"database_url"`            // PostgreSQL connection URL (optional)

	// Printing
	ChromePath   string `json:"chrome_path,omitempty" toml:"chrome_path"`     // Chrome/Chromium binary
	PrintTimeout string `json:"print_timeout,omitempty" toml:"print_timeout"` // Go duration, e.g. "45s"

	Logger LoggerConfig `json:"logger" toml:"logger"`
}

// LoggerConfig configures the zap logger and its optional rotating file sink.
type LoggerConfig struct {
	ServiceName string `json:"service_name,omitempty" toml:"service_name"`
	Level       string `json:"level,omitempty" toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format      string `json:"format,omitempty" toml:"format" validate:"omitempty,oneof=console json"`
	File        string `json:"file,omitempty" toml:"file"`
	MaxSize     int    `json:"max_size,omitempty" toml:"max_size" validate:"gte=0"` // megabytes
	MaxBackups  int    `json:"max_backups,omitempty" toml:"max_backups" validate:"gte=0"`
	MaxAge      int    `json:"max_age,omitempty" toml:"max_age" validate:"gte=0"` // days
	Compress    bool   `json:"compress,omitempty" toml:"compress"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Template:     "classic",
		Format:       "html",
		Concurrency:  4,
		Port:         8080,
		PrintTimeout: "60s",
		Logger: LoggerConfig{
			ServiceName: "resume-layout",
			Level:       "info",
			Format:      "console",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
		},
	}
}

// LoadConfig loads configuration from a JSON or TOML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.PrintTimeout != "" {
		d, err := time.ParseDuration(c.PrintTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'print_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'print_timeout' must be positive")
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// PrintTimeoutDuration returns the parsed print timeout, or 60s when unset or invalid.
func (c *Config) PrintTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.PrintTimeout); err == nil && d > 0 {
		return d
	}
	return 60 * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.PrintTimeout == "" {
		result.PrintTimeout = defaults.PrintTimeout
	}

	// Numeric fields: use default if zero
	if result.PageBudgetMm == 0 {
		result.PageBudgetMm = defaults.PageBudgetMm
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Logger
	if result.Logger.ServiceName == "" {
		result.Logger.ServiceName = defaults.Logger.ServiceName
	}
	if result.Logger.Level == "" {
		result.Logger.Level = defaults.Logger.Level
	}
	if result.Logger.Format == "" {
		result.Logger.Format = defaults.Logger.Format
	}
	if result.Logger.File == "" {
		result.Logger.File = defaults.Logger.File
	}
	if result.Logger.MaxSize == 0 {
		result.Logger.MaxSize = defaults.Logger.MaxSize
	}
	if result.Logger.MaxBackups == 0 {
		result.Logger.MaxBackups = defaults.Logger.MaxBackups
	}
	if result.Logger.MaxAge == 0 {
		result.Logger.MaxAge = defaults.Logger.MaxAge
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv fills connection settings from the environment when they are not set.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.ChromePath == "" {
		c.ChromePath = os.Getenv("CHROME_PATH")
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" && c.Logger.Level == "" {
		c.Logger.Level = lvl
	}
}
