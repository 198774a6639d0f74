// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package clitest runs roster commands against an in-process mock API
// with an isolated environment and captured output.
package clitest

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/clock"
	"github.com/roster-project/roster/lib/mockapi"
	"github.com/roster-project/roster/lib/session"
	"github.com/roster-project/roster/lib/studentapi"
	"github.com/roster-project/roster/lib/testutil"
)

// Harness is a mock API plus a private session file.
type Harness struct {
	Server      *mockapi.Server
	BaseURL     string
	Dir         string
	SessionFile string
}

// Result is the captured outcome of one command.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// New starts a mock API and points the roster environment variables
// and working directory at a temporary directory.
func New(t *testing.T) *Harness {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range []string{"ROSTER_CONFIG", "ROSTER_API_URL", "ROSTER_SESSION_FILE", "ROSTER_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	server, err := mockapi.New(mockapi.Config{
		BcryptCost: bcrypt.MinCost,
		Logger:     slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("mockapi.New: %v", err)
	}
	httpServer := httptest.NewServer(server)
	t.Cleanup(httpServer.Close)

	return &Harness{
		Server:      server,
		BaseURL:     httpServer.URL + server.Prefix(),
		Dir:         dir,
		SessionFile: filepath.Join(dir, "session.json"),
	}
}

// Run executes command with args followed by the harness's --api-url
// and --session-file flags. stdin feeds any password prompt.
func (h *Harness) Run(t *testing.T, command *cli.Command, stdin string, args ...string) Result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	ctx := cli.WithStreams(t.Context(), cli.Streams{
		In:   strings.NewReader(stdin),
		Out:  &stdout,
		Err:  &stderr,
		InFd: -1,
	})
	args = append(args, "--api-url", h.BaseURL, "--session-file", h.SessionFile)
	err := command.Execute(ctx, args)
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// PasswordFile writes password to a file in the harness directory and
// returns its path.
func (h *Harness) PasswordFile(t *testing.T, password string) string {
	t.Helper()
	return testutil.WriteFile(t, h.Dir, "password", password+"\n")
}

// Seed registers a student directly with the mock API.
func (h *Harness) Seed(t *testing.T, name, email, password, course string) studentapi.Student {
	t.Helper()
	student, err := h.Server.Seed(studentapi.StudentInput{Name: name, Email: email, Password: password, Course: course})
	if err != nil {
		t.Fatalf("Seed(%s): %v", email, err)
	}
	return student
}

// LogIn writes a session for email signed by the mock API.
func (h *Harness) LogIn(t *testing.T, email string) string {
	t.Helper()
	token, err := h.Server.IssueToken(email)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if err := h.Store().Save(token, email); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return token
}

// Store opens the harness's session file.
func (h *Harness) Store() *session.FileStore {
	return session.NewFileStore(h.SessionFile, clock.Real())
}

// StoredSession returns the saved session, or nil when there is none.
func (h *Harness) StoredSession(t *testing.T) *session.Session {
	t.Helper()
	stored, err := h.Store().Read()
	if err != nil {
		return nil
	}
	return stored
}
