// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/cmd/roster/cli/clitest"
)

func TestLogin(t *testing.T) {
	h := clitest.New(t)
	h.Seed(t, "Ada Lovelace", "ada@example.com", "hunter2", "Mathematics")

	result := h.Run(t, LoginCommand(), "", "ada@example.com", "--password-file", h.PasswordFile(t, "hunter2"))
	if result.Err != nil {
		t.Fatalf("login: %v", result.Err)
	}
	if !strings.Contains(result.Stdout, "Login Successful!") || !strings.Contains(result.Stdout, "ada@example.com") {
		t.Errorf("stdout = %q", result.Stdout)
	}

	stored := h.StoredSession(t)
	if stored == nil || stored.Email != "ada@example.com" || stored.Token == "" {
		t.Fatalf("stored session = %+v", stored)
	}
}

func TestLogin_PromptsForPassword(t *testing.T) {
	h := clitest.New(t)
	h.Seed(t, "Ada Lovelace", "ada@example.com", "hunter2", "Mathematics")

	result := h.Run(t, LoginCommand(), "hunter2\n", "ada@example.com", "--json")
	if result.Err != nil {
		t.Fatalf("login: %v", result.Err)
	}
	if !strings.HasPrefix(result.Stderr, "Password: ") {
		t.Errorf("stderr should start with the prompt, got %q", result.Stderr)
	}

	var output sessionOutput
	if err := json.Unmarshal([]byte(result.Stdout), &output); err != nil {
		t.Fatalf("decode JSON output %q: %v", result.Stdout, err)
	}
	if output.Email != "ada@example.com" || output.SessionFile != h.SessionFile || output.ExpiresAt.IsZero() {
		t.Errorf("output = %+v", output)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := clitest.New(t)
	h.Seed(t, "Ada Lovelace", "ada@example.com", "hunter2", "Mathematics")
	previous := h.LogIn(t, "someone@example.com")

	result := h.Run(t, LoginCommand(), "", "ada@example.com", "--password-file", h.PasswordFile(t, "wrong"))
	if result.Err == nil {
		t.Fatal("login with a wrong password should fail")
	}
	if result.Err.Error() != "login: Email or password is incorrect" {
		t.Errorf("error = %q", result.Err)
	}
	if cli.CategoryOf(result.Err) != cli.CategoryForbidden {
		t.Errorf("category = %q, want forbidden", cli.CategoryOf(result.Err))
	}

	stored := h.StoredSession(t)
	if stored == nil || stored.Token != previous {
		t.Error("a failed login must not touch the existing session")
	}
}

func TestLogin_RequiresEmail(t *testing.T) {
	h := clitest.New(t)

	result := h.Run(t, LoginCommand(), "")
	if cli.CategoryOf(result.Err) != cli.CategoryValidation {
		t.Errorf("login without email = %v", result.Err)
	}
	if h.Server.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want 0", h.Server.RequestCount())
	}
}

func TestRegister(t *testing.T) {
	h := clitest.New(t)

	result := h.Run(t, RegisterCommand(), "",
		"--name", "Grace Hopper",
		"--email", "grace@example.com",
		"--course", "Computer Science",
		"--password-file", h.PasswordFile(t, "cobol"),
	)
	if result.Err != nil {
		t.Fatalf("register: %v", result.Err)
	}
	if !strings.Contains(result.Stdout, "Registration Successful!") || !strings.Contains(result.Stdout, "Student:  1") {
		t.Errorf("stdout = %q", result.Stdout)
	}

	stored := h.StoredSession(t)
	if stored == nil || stored.Email != "grace@example.com" {
		t.Fatalf("stored session = %+v", stored)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	h := clitest.New(t)

	result := h.Run(t, RegisterCommand(), "", "--name", "Grace Hopper")
	if result.Err == nil || result.Err.Error() != "missing required flags: --email, --course" {
		t.Fatalf("register = %v", result.Err)
	}
	if h.Server.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want 0", h.Server.RequestCount())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := clitest.New(t)
	h.Seed(t, "Ada Lovelace", "ada@example.com", "hunter2", "Mathematics")

	result := h.Run(t, RegisterCommand(), "",
		"--name", "Another Ada",
		"--email", "ada@example.com",
		"--course", "Physics",
		"--password-file", h.PasswordFile(t, "secret"),
	)
	if cli.CategoryOf(result.Err) != cli.CategoryConflict {
		t.Fatalf("duplicate register = %v (%s)", result.Err, cli.CategoryOf(result.Err))
	}
	if h.StoredSession(t) != nil {
		t.Error("failed registration saved a session")
	}
}

func TestLogout(t *testing.T) {
	h := clitest.New(t)
	h.LogIn(t, "ada@example.com")

	result := h.Run(t, LogoutCommand(), "")
	if result.Err != nil {
		t.Fatalf("logout: %v", result.Err)
	}
	if strings.TrimSpace(result.Stdout) != "Logged out." {
		t.Errorf("stdout = %q", result.Stdout)
	}
	if h.StoredSession(t) != nil {
		t.Error("session should be cleared")
	}

	again := h.Run(t, LogoutCommand(), "")
	if again.Err != nil {
		t.Fatalf("second logout: %v", again.Err)
	}
	if strings.TrimSpace(again.Stdout) != "Not logged in." {
		t.Errorf("second stdout = %q", again.Stdout)
	}
	if h.Server.RequestCount() != 0 {
		t.Errorf("logout made %d requests", h.Server.RequestCount())
	}
}

func TestWhoAmI(t *testing.T) {
	h := clitest.New(t)
	h.LogIn(t, "ada@example.com")

	result := h.Run(t, WhoAmICommand(), "")
	if result.Err != nil {
		t.Fatalf("whoami: %v", result.Err)
	}
	if !strings.Contains(result.Stdout, "Email:    ada@example.com") {
		t.Errorf("stdout = %q", result.Stdout)
	}
	if strings.Contains(result.Stdout, "Status:") {
		t.Error("status should only be shown with --verify")
	}
	if h.Server.RequestCount() != 0 {
		t.Errorf("whoami without --verify made %d requests", h.Server.RequestCount())
	}
}

func TestWhoAmI_Verify(t *testing.T) {
	h := clitest.New(t)
	h.Seed(t, "Ada Lovelace", "ada@example.com", "hunter2", "Mathematics")
	h.LogIn(t, "ada@example.com")

	result := h.Run(t, WhoAmICommand(), "", "--verify", "--json")
	if result.Err != nil {
		t.Fatalf("whoami --verify: %v", result.Err)
	}
	var output whoamiOutput
	if err := json.Unmarshal([]byte(result.Stdout), &output); err != nil {
		t.Fatalf("decode %q: %v", result.Stdout, err)
	}
	if output.Status != "valid (1 students visible)" {
		t.Errorf("status = %q", output.Status)
	}
}

func TestWhoAmI_VerifyRevokedToken(t *testing.T) {
	h := clitest.New(t)
	// A token the server did not sign still decodes locally, so the
	// command believes it is logged in until the server says otherwise.
	token := h.LogIn(t, "ada@example.com")
	if err := h.Store().Save(token[:len(token)-4]+"AAAA", "ada@example.com"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	result := h.Run(t, WhoAmICommand(), "", "--verify")
	if result.Err == nil || result.Err.Error() != cli.SessionEndedMessage {
		t.Fatalf("whoami --verify = %v, want %q", result.Err, cli.SessionEndedMessage)
	}
	if h.StoredSession(t) != nil {
		t.Error("a rejected token should be cleared")
	}
}

func TestWhoAmI_NotLoggedIn(t *testing.T) {
	h := clitest.New(t)

	result := h.Run(t, WhoAmICommand(), "", "--verify")
	if result.Err == nil || result.Err.Error() != cli.NotLoggedInMessage {
		t.Fatalf("whoami = %v", result.Err)
	}
	if h.Server.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want 0", h.Server.RequestCount())
	}
}
