// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/roster-project/roster/lib/authstate"
	"github.com/roster-project/roster/lib/clock"
	"github.com/roster-project/roster/lib/session"
	"github.com/roster-project/roster/lib/studentapi"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	server *Server
	http   *httptest.Server
	clock  *clock.FakeClock
	auth   *authstate.Context
	client *studentapi.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := clock.Fake(epoch)
	server, err := New(Config{
		TokenTTL:   time.Hour,
		SigningKey: []byte("test-key"),
		BcryptCost: bcrypt.MinCost,
		Clock:      fake,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	httpServer := httptest.NewServer(server)
	t.Cleanup(httpServer.Close)

	auth := authstate.New(session.NewMemoryStore(fake), nil)
	auth.Init()
	client, err := studentapi.NewClient(studentapi.ClientConfig{
		BaseURL: httpServer.URL + server.Prefix(),
		Store:   auth,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return &harness{server: server, http: httpServer, clock: fake, auth: auth, client: client}
}

func (h *harness) raw(t *testing.T, method, path, token, body string) (*http.Response, string) {
	t.Helper()
	request, err := http.NewRequest(method, h.http.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer response.Body.Close()
	data, _ := io.ReadAll(response.Body)
	return response, string(data)
}

func TestRegisterLoginAndList(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	registration, err := h.client.CreateStudent(ctx, studentapi.StudentInput{
		Name: "Ada", Email: "ada@x.com", Password: "pw", Course: "Math",
	})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if registration.Student.ID != 1 || registration.Message != "Registration successful" {
		t.Errorf("registration = %+v", registration)
	}
	if !strings.HasPrefix(registration.Student.Password, "$2") {
		t.Errorf("stored password %q is not a bcrypt hash", registration.Student.Password)
	}
	if !h.auth.IsLoggedIn() || h.auth.UserEmail() != "ada@x.com" {
		t.Errorf("auth = %+v after registration", h.auth.Snapshot())
	}
	if !h.auth.IsValid() {
		t.Error("issued token not valid client-side")
	}

	h.auth.Logout()
	if _, err := h.client.ListStudents(ctx); !errors.Is(err, studentapi.ErrSessionEnded) {
		t.Errorf("ListStudents without token error = %v, want ErrSessionEnded", err)
	}

	if _, err := h.client.Login(ctx, "ada@x.com", "wrong"); err == nil {
		t.Fatal("Login with wrong password succeeded")
	} else if got := studentapi.UserMessage(err, "Invalid Credentials"); got != "Email or password is incorrect" {
		t.Errorf("wrong password message = %q", got)
	}

	if _, err := h.client.Login(ctx, "ada@x.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	students, err := h.client.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(students) != 1 || students[0].Email != "ada@x.com" {
		t.Errorf("ListStudents() = %+v", students)
	}
}

func TestExpiredTokenEndsSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.client.CreateStudent(ctx, studentapi.StudentInput{Name: "A", Email: "a@x.com", Password: "pw", Course: "C"}); err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	h.clock.Advance(2 * time.Hour)
	_, err := h.client.ListStudents(ctx)
	if !errors.Is(err, studentapi.ErrSessionEnded) {
		t.Fatalf("error = %v, want ErrSessionEnded", err)
	}
	if h.auth.IsLoggedIn() {
		t.Error("auth still logged in after 401")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	h := newHarness(t)
	input := studentapi.StudentInput{Name: "A", Email: "a@x.com", Password: "pw", Course: "C"}
	if _, err := h.server.Seed(input); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	_, err := h.client.CreateStudent(context.Background(), input)
	var apiErr *studentapi.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("error = %v, want 409", err)
	}
	if !strings.Contains(apiErr.Message, "already registered") {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestRegisterWithoutPassword(t *testing.T) {
	h := newHarness(t)
	response, body := h.raw(t, http.MethodPost, "/api/students/register", "", `{"name":"A","email":"a@x.com","course":"C"}`)
	if response.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", response.StatusCode)
	}
	if !strings.Contains(body, "Password cannot be null or empty") {
		t.Errorf("body = %s", body)
	}
}

func TestRecordOperations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	seeded, _ := h.server.Seed(studentapi.StudentInput{Name: "Linus", Email: "linus@x.com", Password: "pw", Course: "OS"})
	if _, err := h.client.CreateStudent(ctx, studentapi.StudentInput{Name: "Ada", Email: "ada@x.com", Password: "pw", Course: "Math"}); err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	got, err := h.client.GetStudent(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if got.Name != "Linus" {
		t.Errorf("GetStudent().Name = %q", got.Name)
	}

	updated, err := h.client.UpdateStudent(ctx, seeded.ID, studentapi.StudentInput{Name: "Linus T", Email: "linus@x.com", Course: "Kernels"})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if updated.Course != "Kernels" || updated.Password != seeded.Password {
		t.Errorf("UpdateStudent() = %+v, want course changed and hash kept", updated)
	}

	if _, err := h.client.UpdateStudent(ctx, seeded.ID, studentapi.StudentInput{Name: "X", Email: "ada@x.com", Password: "pw", Course: "C"}); err == nil {
		t.Error("UpdateStudent to a taken email succeeded")
	}

	if err := h.client.DeleteStudent(ctx, seeded.ID); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	_, err = h.client.GetStudent(ctx, seeded.ID)
	var apiErr *studentapi.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("GetStudent after delete error = %v, want 404", err)
	}
	if err := h.client.DeleteStudent(ctx, seeded.ID); err == nil {
		t.Error("second DeleteStudent succeeded")
	}
}

func TestDeleteBodyIsPlainText(t *testing.T) {
	h := newHarness(t)
	seeded, _ := h.server.Seed(studentapi.StudentInput{Name: "A", Email: "a@x.com", Password: "pw", Course: "C"})
	token, _ := h.server.IssueToken("a@x.com")

	response, body := h.raw(t, http.MethodDelete, "/api/students/1", token, "")
	if response.StatusCode != http.StatusOK || body != "Student deleted successfully!" {
		t.Errorf("DELETE /%d = %d %q", seeded.ID, response.StatusCode, body)
	}
}

func TestTokenChecks(t *testing.T) {
	h := newHarness(t)
	valid, _ := h.server.IssueToken("a@x.com")

	foreign, err := New(Config{SigningKey: []byte("other-key"), BcryptCost: bcrypt.MinCost, Clock: h.clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	forged, _ := foreign.IssueToken("a@x.com")

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no token", "/api/students", "", http.StatusUnauthorized},
		{"garbage token", "/api/students", "garbage", http.StatusUnauthorized},
		{"wrong key", "/api/students", forged, http.StatusUnauthorized},
		{"valid", "/api/students", valid, http.StatusOK},
		{"valid trailing slash", "/api/students/", valid, http.StatusOK},
		{"record without token", "/api/students/1", "", http.StatusUnauthorized},
		{"non-numeric id", "/api/students/abc", valid, http.StatusNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response, body := h.raw(t, http.MethodGet, test.path, test.token, "")
			if response.StatusCode != test.want {
				t.Errorf("GET %s = %d (%s), want %d", test.path, response.StatusCode, body, test.want)
			}
		})
	}
}

func TestLoginResponseShape(t *testing.T) {
	h := newHarness(t)
	h.server.Seed(studentapi.StudentInput{Name: "A", Email: "a@x.com", Password: "pw", Course: "C"})

	response, body := h.raw(t, http.MethodPost, "/api/students/login", "", `{"email":"a@x.com","password":"pw"}`)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", response.StatusCode, body)
	}
	var decoded map[string]string
	if err := json.NewDecoder(bytes.NewReader([]byte(body))).Decode(&decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if decoded["email"] != "a@x.com" || decoded["token"] == "" || decoded["message"] != "Login successful" {
		t.Errorf("login body = %v", decoded)
	}
	if !session.ValidAt(decoded["token"], epoch) {
		t.Error("issued token not valid at issue time")
	}
	if session.ValidAt(decoded["token"], epoch.Add(time.Hour)) {
		t.Error("issued token still valid at TTL")
	}
}

func TestRequestCount(t *testing.T) {
	h := newHarness(t)
	before := h.server.RequestCount()
	h.raw(t, http.MethodGet, "/api/students", "", "")
	h.raw(t, http.MethodGet, "/nowhere", "", "")
	if got := h.server.RequestCount() - before; got != 2 {
		t.Errorf("RequestCount delta = %d, want 2", got)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{Prefix: "api"}); err == nil {
		t.Error("New accepted a relative prefix")
	}
	if _, err := New(Config{TokenTTL: -time.Minute}); err == nil {
		t.Error("New accepted a negative TTL")
	}
	server, err := New(Config{Prefix: "/v2/students/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if server.Prefix() != "/v2/students" {
		t.Errorf("Prefix() = %q", server.Prefix())
	}
}
