// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roster-project/roster/lib/authstate"
	"github.com/roster-project/roster/lib/clock"
	"github.com/roster-project/roster/lib/config"
	"github.com/roster-project/roster/lib/testutil"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// isolateEnvironment keeps Connect away from the developer's own
// config, .env, and session.
func isolateEnvironment(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range []string{"ROSTER_CONFIG", "ROSTER_API_URL", "ROSTER_SESSION_FILE", "ROSTER_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestConnectionConfig_ConnectWithoutSession(t *testing.T) {
	dir := isolateEnvironment(t)
	ctx, _, _ := captureContext()

	connectionConfig := ConnectionConfig{
		APIURL:      "http://api.test/api/students/",
		SessionFile: filepath.Join(dir, "session.json"),
		Clock:       clock.Fake(testNow),
	}
	connection, err := connectionConfig.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if connection.Client.BaseURL() != "http://api.test/api/students" {
		t.Errorf("BaseURL = %q", connection.Client.BaseURL())
	}
	if connection.SessionPath != filepath.Join(dir, "session.json") {
		t.Errorf("SessionPath = %q", connection.SessionPath)
	}
	if connection.Auth.State() != authstate.Unauthenticated {
		t.Errorf("State = %v, want Unauthenticated", connection.Auth.State())
	}

	err = connection.RequireLogin()
	if err == nil || err.Error() != NotLoggedInMessage {
		t.Fatalf("RequireLogin = %v, want %q", err, NotLoggedInMessage)
	}
	if CategoryOf(err) != CategoryForbidden {
		t.Errorf("category = %q, want forbidden", CategoryOf(err))
	}
}

func TestConnectionConfig_ConnectPicksUpStoredSession(t *testing.T) {
	dir := isolateEnvironment(t)
	ctx, _, _ := captureContext()
	sessionFile := filepath.Join(dir, "session.json")
	fake := clock.Fake(testNow)

	connectionConfig := ConnectionConfig{SessionFile: sessionFile, Clock: fake}
	first, err := connectionConfig.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	token := testutil.Token(t, "ada@example.com", testNow.Add(time.Hour))
	if err := first.Auth.Login(token, "ada@example.com"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := connectionConfig.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := second.RequireLogin(); err != nil {
		t.Errorf("RequireLogin after login: %v", err)
	}
	if second.Auth.UserEmail() != "ada@example.com" {
		t.Errorf("UserEmail = %q", second.Auth.UserEmail())
	}

	fake.Advance(2 * time.Hour)
	third, err := connectionConfig.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if third.Auth.IsLoggedIn() {
		t.Error("expired token should not count as logged in")
	}
}

func TestConnectionConfig_ConnectEphemeral(t *testing.T) {
	dir := isolateEnvironment(t)
	ctx, _, _ := captureContext()

	connection, err := (&ConnectionConfig{EphemeralSession: true}).Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if connection.SessionPath != "" || connection.Describe() != "memory (ephemeral)" {
		t.Errorf("ephemeral connection has path %q (%s)", connection.SessionPath, connection.Describe())
	}

	token := testutil.Token(t, "ada@example.com", time.Now().Add(time.Hour))
	if err := connection.Auth.Login(token, "ada@example.com"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "xdg", "roster", "session.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ephemeral session touched the default file: %v", err)
	}
}

func TestConnectionConfig_ConnectUsesConfigFile(t *testing.T) {
	dir := isolateEnvironment(t)
	ctx, _, _ := captureContext()
	path := testutil.WriteFile(t, dir, "roster.yaml", `
api:
  base_url: https://students.example.com/api/students
session:
  file: `+filepath.Join(dir, "from-config.json")+`
`)

	connection, err := (&ConnectionConfig{ConfigPath: path}).Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if connection.Client.BaseURL() != "https://students.example.com/api/students" {
		t.Errorf("BaseURL = %q", connection.Client.BaseURL())
	}
	if connection.SessionPath != filepath.Join(dir, "from-config.json") {
		t.Errorf("SessionPath = %q", connection.SessionPath)
	}
}

func TestConnectionConfig_ConnectRejectsBadFlags(t *testing.T) {
	isolateEnvironment(t)
	ctx, _, _ := captureContext()

	tests := []struct {
		name   string
		config ConnectionConfig
		want   string
	}{
		{"api url", ConnectionConfig{APIURL: "ftp://example.com", EphemeralSession: true}, "api.base_url"},
		{"log level", ConnectionConfig{LogLevel: "loud", EphemeralSession: true}, "log.level"},
		{"config file", ConnectionConfig{ConfigPath: "does-not-exist.yaml"}, "config"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.config.Connect(ctx)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Fatalf("Connect = %v, want error mentioning %q", err, test.want)
			}
			if CategoryOf(err) != CategoryValidation {
				t.Errorf("category = %q, want validation", CategoryOf(err))
			}
		})
	}
}

func TestConnectionConfig_OpenLogger(t *testing.T) {
	isolateEnvironment(t)
	ctx, _, stderr := captureContext()

	var records bytes.Buffer
	var gotLevel slog.Level
	connectionConfig := ConnectionConfig{
		EphemeralSession: true,
		LogLevel:         "debug",
		OpenLogger: func(cfg *config.Config, level slog.Level) (*slog.Logger, error) {
			gotLevel = level
			return slog.New(slog.NewJSONHandler(&records, &slog.HandlerOptions{Level: level})), nil
		},
	}
	connection, err := connectionConfig.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if gotLevel != slog.LevelDebug {
		t.Errorf("level = %v, want debug", gotLevel)
	}
	connection.Logger.Info("hello")
	if !strings.Contains(records.String(), `"msg":"hello"`) {
		t.Errorf("records = %q, want the message", records.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want nothing", stderr.String())
	}

	connectionConfig.OpenLogger = func(*config.Config, slog.Level) (*slog.Logger, error) {
		return nil, errors.New("disk full")
	}
	if _, err := connectionConfig.Connect(ctx); CategoryOf(err) != CategoryValidation {
		t.Errorf("Connect = %v, want a validation error", err)
	}
}

func TestReadPassword(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "password", "hunter2\n")
	ctx, _, _ := captureContext()

	buffer, err := ReadPassword(ctx, path, "Password: ")
	if err != nil {
		t.Fatalf("ReadPassword(file): %v", err)
	}
	if buffer.String() != "hunter2" {
		t.Errorf("password = %q", buffer.String())
	}
	buffer.Close()

	if _, err := ReadPassword(ctx, filepath.Join(dir, "missing"), "Password: "); CategoryOf(err) != CategoryValidation {
		t.Errorf("missing password file = %v, want validation error", err)
	}
}

func TestReadPassword_PromptsOnStreams(t *testing.T) {
	var stderr strings.Builder
	ctx := WithStreams(t.Context(), Streams{
		In:   strings.NewReader("s3cret\n"),
		Out:  &strings.Builder{},
		Err:  &stderr,
		InFd: -1,
	})

	buffer, err := ReadPassword(ctx, "", "Password: ")
	if err != nil {
		t.Fatalf("ReadPassword(prompt): %v", err)
	}
	defer buffer.Close()
	if buffer.String() != "s3cret" {
		t.Errorf("password = %q", buffer.String())
	}
	if stderr.String() != "Password: " {
		t.Errorf("prompt = %q", stderr.String())
	}
}
