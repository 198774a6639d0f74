// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package mockapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/roster-project/roster/lib/clock"
	"github.com/roster-project/roster/lib/studentapi"
)

// Config configures a Server.
type Config struct {
	// Prefix is the collection path. Default: /api/students
	Prefix string

	// TokenTTL is the lifetime of issued tokens. Default: 10h
	TokenTTL time.Duration

	// SigningKey signs tokens. If empty, a random 32-byte key is
	// generated.
	SigningKey []byte

	// BcryptCost is the hashing cost. Zero means bcrypt.DefaultCost;
	// tests pass bcrypt.MinCost.
	BcryptCost int

	// Clock stamps and checks token expiry. If nil, clock.Real().
	Clock clock.Clock

	// Logger is used for request logging. If nil, slog.Default().
	Logger *slog.Logger
}

// Server holds the student records and serves the API.
type Server struct {
	prefix     string
	tokenTTL   time.Duration
	signingKey []byte
	bcryptCost int
	clock      clock.Clock
	logger     *slog.Logger
	router     *mux.Router
	requests   atomic.Int64

	mu       sync.Mutex
	students map[int]studentapi.Student
	nextID   int
}

// New creates an empty Server.
func New(config Config) (*Server, error) {
	prefix := strings.TrimRight(config.Prefix, "/")
	if config.Prefix == "" {
		prefix = "/api/students"
	}
	if !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("mockapi: prefix %q must start with /", config.Prefix)
	}

	tokenTTL := config.TokenTTL
	if tokenTTL == 0 {
		tokenTTL = 10 * time.Hour
	}
	if tokenTTL < 0 {
		return nil, fmt.Errorf("mockapi: TokenTTL must be positive, got %s", tokenTTL)
	}

	signingKey := config.SigningKey
	if len(signingKey) == 0 {
		signingKey = make([]byte, 32)
		if _, err := rand.Read(signingKey); err != nil {
			return nil, fmt.Errorf("mockapi: generating signing key: %w", err)
		}
	}

	bcryptCost := config.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	c := config.Clock
	if c == nil {
		c = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := &Server{
		prefix:     prefix,
		tokenTTL:   tokenTTL,
		signingKey: signingKey,
		bcryptCost: bcryptCost,
		clock:      c,
		logger:     logger,
		students:   make(map[int]studentapi.Student),
		nextID:     1,
	}
	server.router = server.routes()
	return server, nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.countAndLog)

	router.HandleFunc(s.prefix+"/register", s.handleRegister).Methods(http.MethodPost)
	router.HandleFunc(s.prefix+"/login", s.handleLogin).Methods(http.MethodPost)

	router.Handle(s.prefix, s.requireToken(s.handleList)).Methods(http.MethodGet)
	router.Handle(s.prefix+"/", s.requireToken(s.handleList)).Methods(http.MethodGet)

	record := s.prefix + "/{id:[0-9]+}"
	router.Handle(record, s.requireToken(s.handleGet)).Methods(http.MethodGet)
	router.Handle(record, s.requireToken(s.handleUpdate)).Methods(http.MethodPut)
	router.Handle(record, s.requireToken(s.handleDelete)).Methods(http.MethodDelete)

	// Unmatched requests skip router middleware, so count them here.
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		writeError(w, http.StatusNotFound, "Not found", "No route for "+r.Method+" "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" is not supported on "+r.URL.Path)
	})
	return router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Prefix returns the collection path the server answers under.
func (s *Server) Prefix() string { return s.prefix }

// RequestCount returns the number of requests served so far.
func (s *Server) RequestCount() int64 { return s.requests.Load() }

// IssueToken signs a token for email that expires TokenTTL from now.
func (s *Server) IssueToken(email string) (string, error) {
	issued := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Seed adds a student directly, bypassing HTTP.
func (s *Server) Seed(input studentapi.StudentInput) (studentapi.Student, error) {
	return s.create(input)
}

var (
	// ErrDuplicateEmail is returned when registering an email twice.
	ErrDuplicateEmail = errors.New("mockapi: email already registered")

	// ErrEmptyPassword is returned when registering without a password.
	ErrEmptyPassword = errors.New("mockapi: password is required")
)

func (s *Server) create(input studentapi.StudentInput) (studentapi.Student, error) {
	if input.Password == "" {
		return studentapi.Student{}, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return studentapi.Student{}, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.findByEmailLocked(input.Email); taken {
		return studentapi.Student{}, ErrDuplicateEmail
	}
	student := studentapi.Student{
		ID:       s.nextID,
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Course:   input.Course,
	}
	s.students[student.ID] = student
	s.nextID++
	return student, nil
}

func (s *Server) findByEmailLocked(email string) (studentapi.Student, bool) {
	for _, student := range s.students {
		if strings.EqualFold(student.Email, email) {
			return student, true
		}
	}
	return studentapi.Student{}, false
}

func (s *Server) countAndLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
		)
		next.ServeHTTP(w, r)
	})
}

// requireToken rejects requests without a valid, unexpired bearer
// token signed by this server.
func (s *Server) requireToken(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing bearer token")
			return
		}
		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return s.signingKey, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.clock.Now),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			s.logger.Debug("rejected token", "error", err)
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}
		next(w, r)
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input studentapi.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Registration failed", "Malformed request body")
		return
	}

	student, err := s.create(input)
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "Registration failed", "Email already registered: "+input.Email)
		return
	case errors.Is(err, ErrEmptyPassword):
		writeError(w, http.StatusBadRequest, "Registration failed", "Password cannot be null or empty")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "Registration failed", err.Error())
		return
	}

	token, err := s.IssueToken(student.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Registration failed", err.Error())
		return
	}
	s.logger.Info("registered student", "id", student.ID, "email", student.Email)
	writeJSON(w, http.StatusOK, studentapi.Registration{
		Token:   token,
		Student: student,
		Message: "Registration successful",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, http.StatusBadRequest, "Authentication failed", "Malformed request body")
		return
	}

	s.mu.Lock()
	student, found := s.findByEmailLocked(credentials.Email)
	s.mu.Unlock()

	if !found || credentials.Password == "" ||
		bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(credentials.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := s.IssueToken(credentials.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Authentication failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"email":   credentials.Email,
		"message": "Login successful",
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	students := make([]studentapi.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, student)
	}
	s.mu.Unlock()

	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	writeJSON(w, http.StatusOK, students)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s.mu.Lock()
	student, found := s.students[id]
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "Not found", fmt.Sprintf("Student not found with id: %d", id))
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// handleUpdate replaces every field. A non-empty password is hashed
// again, including one that is already a hash; an empty password keeps
// the stored hash.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var input studentapi.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Update failed", "Malformed request body")
		return
	}

	var hash string
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Update failed", err.Error())
			return
		}
		hash = string(hashed)
	}

	s.mu.Lock()
	existing, found := s.students[id]
	if !found {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Not found", fmt.Sprintf("Student not found with id: %d", id))
		return
	}
	if other, taken := s.findByEmailLocked(input.Email); taken && other.ID != id {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "Update failed", "Email already registered: "+input.Email)
		return
	}
	if hash == "" {
		hash = existing.Password
	}
	updated := studentapi.Student{
		ID:       id,
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Course:   input.Course,
	}
	s.students[id] = updated
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s.mu.Lock()
	_, found := s.students[id]
	delete(s.students, id)
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "Not found", fmt.Sprintf("Student not found with id: %d", id))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Student deleted successfully!")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, short, message string) {
	writeJSON(w, status, map[string]string{"error": short, "message": message})
}
