// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment selects which override section of the file applies.
type Environment string

const (
	// Development is a local workstation talking to a local API.
	Development Environment = "development"
	// Production is a deployed API.
	Production Environment = "production"
)

// DefaultBaseURL is the student collection root used when nothing else
// is configured.
const DefaultBaseURL = "http://localhost:8080/api/students"

// Config is the complete roster configuration.
type Config struct {
	// Environment is development or production.
	Environment Environment `yaml:"environment"`

	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
	Mock    MockConfig    `yaml:"mock"`

	// Per-environment overrides, applied after the base values.
	Development *Overrides `yaml:"development,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides holds the fields an environment section may replace.
// Empty and zero values leave the base value in place.
type Overrides struct {
	API     *APIConfig     `yaml:"api,omitempty"`
	Session *SessionConfig `yaml:"session,omitempty"`
	UI      *UIConfig      `yaml:"ui,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// APIConfig locates the remote student API.
type APIConfig struct {
	// BaseURL is the student collection root.
	// Default: http://localhost:8080/api/students
	BaseURL string `yaml:"base_url"`

	// RequestTimeout bounds each request. Zero (the default) means
	// requests never time out.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// SessionConfig locates the session file.
type SessionConfig struct {
	// File overrides the session file path. Empty means
	// session.DefaultPath().
	File string `yaml:"file"`
}

// UIConfig configures the terminal application.
type UIConfig struct {
	// MessageTimeout is how long a flash message stays visible.
	// Default: 3s
	MessageTimeout time.Duration `yaml:"message_timeout"`

	// LogFile receives the application's JSON logs. Empty discards
	// them; the terminal is never used for logs while drawing.
	LogFile string `yaml:"log_file"`
}

// LogConfig configures command logging.
type LogConfig struct {
	// Level is debug, info, warn, or error. Default: info
	Level string `yaml:"level"`
}

// MockConfig configures roster-mock-api.
type MockConfig struct {
	// Listen is the listen address. Default: 127.0.0.1:8080
	Listen string `yaml:"listen"`

	// Prefix is the collection path. Default: /api/students
	Prefix string `yaml:"prefix"`

	// TokenTTL is the lifetime of issued tokens. Default: 10h
	TokenTTL time.Duration `yaml:"token_ttl"`

	// SigningKey signs issued tokens. Empty means a random key per
	// process, so tokens do not survive a restart.
	SigningKey string `yaml:"signing_key"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		UI: UIConfig{
			MessageTimeout: 3 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Mock: MockConfig{
			Listen:   "127.0.0.1:8080",
			Prefix:   "/api/students",
			TokenTTL: 10 * time.Hour,
		},
	}
}

// Load builds the configuration from defaults, .env, the file at path
// (or $ROSTER_CONFIG when path is empty), the environment section, and
// the ROSTER_* override variables, then validates it.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("ROSTER_CONFIG")
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnvironmentOverrides()
	cfg.applyVariableOverrides()
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.RequestTimeout != 0 {
			c.API.RequestTimeout = overrides.API.RequestTimeout
		}
	}
	if overrides.Session != nil && overrides.Session.File != "" {
		c.Session.File = overrides.Session.File
	}
	if overrides.UI != nil {
		if overrides.UI.MessageTimeout != 0 {
			c.UI.MessageTimeout = overrides.UI.MessageTimeout
		}
		if overrides.UI.LogFile != "" {
			c.UI.LogFile = overrides.UI.LogFile
		}
	}
	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

func (c *Config) applyVariableOverrides() {
	if value := os.Getenv("ROSTER_API_URL"); value != "" {
		c.API.BaseURL = value
	}
	if value := os.Getenv("ROSTER_SESSION_FILE"); value != "" {
		c.Session.File = value
	}
	if value := os.Getenv("ROSTER_LOG_LEVEL"); value != "" {
		c.Log.Level = value
	}
}

func (c *Config) expandVariables() {
	c.API.BaseURL = expandVars(c.API.BaseURL)
	c.Session.File = expandVars(c.Session.File)
	c.UI.LogFile = expandVars(c.UI.LogFile)
	c.Mock.Listen = expandVars(c.Mock.Listen)
	c.Mock.SigningKey = expandVars(c.Mock.SigningKey)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment %q (want development or production)", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q must be an absolute http or https URL", c.API.BaseURL))
	}
	if c.API.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("api.request_timeout must not be negative, got %s", c.API.RequestTimeout))
	}
	if c.UI.MessageTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ui.message_timeout must be positive, got %s", c.UI.MessageTimeout))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if !strings.HasPrefix(c.Mock.Prefix, "/") {
		errs = append(errs, fmt.Errorf("mock.prefix %q must start with /", c.Mock.Prefix))
	}
	if c.Mock.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("mock.token_ttl must be positive, got %s", c.Mock.TokenTTL))
	}

	return errors.Join(errs...)
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q must be debug, info, warn, or error", l.Level)
	}
	return level, nil
}
