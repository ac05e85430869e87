// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/jonathan/resume-builder/internal/types"
)

// Config represents the application configuration that can be loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or environment overrides.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty" toml:"database_url"` // PostgreSQL connection URL
	CachePath   string `json:"cache_path,omitempty" toml:"cache_path"`     // Local SQLite cache file

	// Server
	Port           int      `json:"port,omitempty" toml:"port"`                       // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty" toml:"allowed_origins"` // CORS origins; empty allows any

	// Rendering
	LaTeXTemplate   string `json:"latex_template,omitempty" toml:"latex_template"`     // Path to a LaTeX preamble template
	DefaultTemplate string `json:"default_template,omitempty" toml:"default_template"` // Template for the CLI when none is given

	// Sessions
	SaveTimeoutSeconds int `json:"save_timeout_seconds,omitempty" toml:"save_timeout_seconds"`
	SessionIdleMinutes int `json:"session_idle_minutes,omitempty" toml:"session_idle_minutes"`
	AccentDebounceMS   int `json:"accent_debounce_ms,omitempty" toml:"accent_debounce_ms"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" toml:"verbose"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:               8080,
		DefaultTemplate:    string(types.DefaultTemplate),
		SaveTimeoutSeconds: 10,
		SessionIdleMinutes: 30,
		AccentDebounceMS:   100,
	}
}

// LoadConfig loads configuration from a JSON file, or a TOML file when the
// path ends in .toml. Returns an error if the file cannot be read or parsed.
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
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
		return &cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Load builds the effective configuration: .env files, the optional config
// file, defaults, then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	LoadDotEnv()

	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Defaults())
	merged.ApplyEnv()
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadDotEnv loads .env files when present. Missing files are ignored and
// variables already set in the environment win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		_ = godotenv.Load()
		return
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("RESUME_CACHE_PATH"); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv("RESUME_LATEX_TEMPLATE"); v != "" {
		c.LaTeXTemplate = v
	}
	if v := os.Getenv("RESUME_DEFAULT_TEMPLATE"); v != "" {
		c.DefaultTemplate = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the command.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SaveTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'save_timeout_seconds' must be non-negative")
	}
	if c.SessionIdleMinutes < 0 {
		return fmt.Errorf("config error: 'session_idle_minutes' must be non-negative")
	}
	if c.AccentDebounceMS < 0 {
		return fmt.Errorf("config error: 'accent_debounce_ms' must be non-negative")
	}

	if c.DefaultTemplate != "" {
		if _, err := types.ParseTemplateName(c.DefaultTemplate); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	// Validate file paths exist (if specified)
	if c.LaTeXTemplate != "" {
		if _, err := os.Stat(c.LaTeXTemplate); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.LaTeXTemplate)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.LaTeXTemplate == "" {
		result.LaTeXTemplate = defaults.LaTeXTemplate
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SaveTimeoutSeconds == 0 {
		result.SaveTimeoutSeconds = defaults.SaveTimeoutSeconds
	}
	if result.SessionIdleMinutes == 0 {
		result.SessionIdleMinutes = defaults.SessionIdleMinutes
	}
	if result.AccentDebounceMS == 0 {
		result.AccentDebounceMS = defaults.AccentDebounceMS
	}

	// Bool fields: OR with default
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// SaveTimeout returns the session save timeout.
func (c *Config) SaveTimeout() time.Duration {
	return time.Duration(c.SaveTimeoutSeconds) * time.Second
}

// SessionIdle returns how long an untouched session stays open.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

// AccentDebounce returns the accent colour debounce delay.
func (c *Config) AccentDebounce() time.Duration {
	return time.Duration(c.AccentDebounceMS) * time.Millisecond
}

// Template returns the configured default template, falling back to modern.
func (c *Config) Template() types.TemplateName {
	if name, err := types.ParseTemplateName(c.DefaultTemplate); err == nil {
		return name
	}
	return types.DefaultTemplate
}
