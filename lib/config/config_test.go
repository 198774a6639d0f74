// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/roster-project/roster/lib/testutil"
)

// isolate runs the test in an empty directory with no ROSTER_* variables
// set, so neither a stray .env nor the caller's environment leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	directory := t.TempDir()
	t.Chdir(directory)
	for _, name := range []string{"ROSTER_CONFIG", "ROSTER_API_URL", "ROSTER_SESSION_FILE", "ROSTER_LOG_LEVEL"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return directory
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Environment != Development {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api/students" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 0 {
		t.Errorf("API.RequestTimeout = %s, want 0 (no timeout)", cfg.API.RequestTimeout)
	}
	if cfg.UI.MessageTimeout != 3*time.Second {
		t.Errorf("UI.MessageTimeout = %s, want 3s", cfg.UI.MessageTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestLoadFile(t *testing.T) {
	directory := isolate(t)
	path := testutil.WriteFile(t, directory, "roster.yaml", `
environment: development
api:
  base_url: http://api.internal:9000/api/students
  request_timeout: 15s
session:
  file: /tmp/roster-session.json
ui:
  message_timeout: 5s
  log_file: /tmp/roster-ui.log
log:
  level: debug
mock:
  listen: 0.0.0.0:9000
  token_ttl: 1h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://api.internal:9000/api/students" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 15*time.Second {
		t.Errorf("API.RequestTimeout = %s", cfg.API.RequestTimeout)
	}
	if cfg.Session.File != "/tmp/roster-session.json" {
		t.Errorf("Session.File = %q", cfg.Session.File)
	}
	if cfg.UI.MessageTimeout != 5*time.Second || cfg.UI.LogFile != "/tmp/roster-ui.log" {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if cfg.Mock.Listen != "0.0.0.0:9000" || cfg.Mock.TokenTTL != time.Hour {
		t.Errorf("Mock = %+v", cfg.Mock)
	}
	// Unset keys keep their defaults.
	if cfg.Mock.Prefix != "/api/students" {
		t.Errorf("Mock.Prefix = %q, want default", cfg.Mock.Prefix)
	}
	level, _ := cfg.Log.SlogLevel()
	if level != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", level)
	}
}

func TestLoadFromRosterConfigVariable(t *testing.T) {
	directory := isolate(t)
	path := testutil.WriteFile(t, directory, "cfg.yaml", "log:\n  level: warn\n")
	t.Setenv("ROSTER_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	directory := isolate(t)
	content := `
environment: %s
api:
  base_url: http://localhost:8080/api/students
development:
  log:
    level: debug
production:
  api:
    base_url: https://students.example.com/api/students
    request_timeout: 30s
  ui:
    message_timeout: 10s
`
	t.Run("production", func(t *testing.T) {
		path := testutil.WriteFile(t, directory, "prod.yaml", strings.Replace(content, "%s", "production", 1))
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.API.BaseURL != "https://students.example.com/api/students" {
			t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
		}
		if cfg.API.RequestTimeout != 30*time.Second {
			t.Errorf("API.RequestTimeout = %s", cfg.API.RequestTimeout)
		}
		if cfg.UI.MessageTimeout != 10*time.Second {
			t.Errorf("UI.MessageTimeout = %s", cfg.UI.MessageTimeout)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %q, development section leaked", cfg.Log.Level)
		}
	})

	t.Run("development", func(t *testing.T) {
		path := testutil.WriteFile(t, directory, "dev.yaml", strings.Replace(content, "%s", "development", 1))
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.API.BaseURL != "http://localhost:8080/api/students" {
			t.Errorf("API.BaseURL = %q, production section leaked", cfg.API.BaseURL)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
	})
}

func TestVariableOverrides(t *testing.T) {
	directory := isolate(t)
	path := testutil.WriteFile(t, directory, "roster.yaml", "api:\n  base_url: http://from-file:1/api/students\n")
	t.Setenv("ROSTER_API_URL", "http://from-env:2/api/students")
	t.Setenv("ROSTER_SESSION_FILE", "/run/user/1000/session.json")
	t.Setenv("ROSTER_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://from-env:2/api/students" {
		t.Errorf("API.BaseURL = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.Session.File != "/run/user/1000/session.json" {
		t.Errorf("Session.File = %q", cfg.Session.File)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestExpandVariables(t *testing.T) {
	directory := isolate(t)
	t.Setenv("ROSTER_TEST_API_HOST", "api.test")
	path := testutil.WriteFile(t, directory, "roster.yaml", `
api:
  base_url: http://${ROSTER_TEST_API_HOST}:${ROSTER_TEST_API_PORT:-8080}/api/students
ui:
  log_file: ${ROSTER_TEST_UNSET_DIR:-/tmp}/ui.log
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://api.test:8080/api/students" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.UI.LogFile != "/tmp/ui.log" {
		t.Errorf("UI.LogFile = %q", cfg.UI.LogFile)
	}
}

func TestDotEnv(t *testing.T) {
	directory := isolate(t)
	t.Setenv("ROSTER_TEST_DOTENV_HOST", "")
	os.Unsetenv("ROSTER_TEST_DOTENV_HOST")
	testutil.WriteFile(t, directory, ".env", "ROSTER_LOG_LEVEL=debug\nROSTER_TEST_DOTENV_HOST=dotenv.test\n")
	path := testutil.WriteFile(t, directory, "roster.yaml", "api:\n  base_url: http://${ROSTER_TEST_DOTENV_HOST}/api/students\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want value from .env", cfg.Log.Level)
	}
	if cfg.API.BaseURL != "http://dotenv.test/api/students" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	directory := isolate(t)
	t.Setenv("ROSTER_LOG_LEVEL", "warn")
	testutil.WriteFile(t, directory, ".env", "ROSTER_LOG_LEVEL=debug\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want the process environment to win", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	directory := isolate(t)
	tests := map[string]string{
		"bad yaml":         "api: [unterminated",
		"bad environment":  "environment: staging\n",
		"relative url":     "api:\n  base_url: /api/students\n",
		"negative timeout": "api:\n  request_timeout: -1s\n",
		"zero message":     "ui:\n  message_timeout: 0s\n",
		"bad level":        "log:\n  level: loud\n",
		"bad prefix":       "mock:\n  prefix: api\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := testutil.WriteFile(t, directory, strings.ReplaceAll(name, " ", "-")+".yaml", content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load succeeded for %s", name)
			}
		})
	}

	if _, err := Load(directory + "/missing.yaml"); err == nil {
		t.Error("Load succeeded for a missing file")
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Environment = "qa"
	cfg.API.BaseURL = ""
	cfg.Log.Level = "chatty"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate succeeded")
	}
	for _, want := range []string{"environment", "api.base_url", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, missing %q", err, want)
		}
	}
}
