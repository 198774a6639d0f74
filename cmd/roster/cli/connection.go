// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/lib/authstate"
	"github.com/roster-project/roster/lib/clock"
	"github.com/roster-project/roster/lib/config"
	"github.com/roster-project/roster/lib/session"
	"github.com/roster-project/roster/lib/studentapi"
)

// ConnectionConfig holds the flags shared by every command that talks
// to the student API or touches the stored session. Embed it in a
// params struct; [BindFlags] picks up its flags through [FlagBinder].
//
//	type listParams struct {
//	    cli.ConnectionConfig
//	    cli.JSONOutput
//	}
//
//	// In Run:
//	connection, err := params.Connect(ctx)
type ConnectionConfig struct {
	ConfigPath       string
	APIURL           string
	SessionFile      string
	EphemeralSession bool
	LogLevel         string

	// Clock decides token expiry. Nil means the system clock.
	Clock clock.Clock

	// OpenLogger, when set, builds the logger from the loaded
	// configuration in place of the stderr command logger.
	OpenLogger func(cfg *config.Config, level slog.Level) (*slog.Logger, error)
}

// AddFlags registers --config, --api-url, --session-file,
// --ephemeral-session, and --log-level.
func (c *ConnectionConfig) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", "", "path to the roster config file (default $ROSTER_CONFIG)")
	flagSet.StringVar(&c.APIURL, "api-url", "", "student API base URL (overrides config)")
	flagSet.StringVar(&c.SessionFile, "session-file", "", "session file path (overrides config)")
	flagSet.BoolVar(&c.EphemeralSession, "ephemeral-session", false, "keep the session in memory only; nothing is read from or written to disk")
	flagSet.StringVar(&c.LogLevel, "log-level", "", "log level: debug, info, warn, or error (overrides config)")
}

// Connection is everything a command needs to act for the stored user.
type Connection struct {
	Config *config.Config

	// Store is the underlying session store. Commands should write
	// through Auth so the reactive state follows.
	Store session.Store

	// SessionPath is the session file, or "" for an ephemeral session.
	SessionPath string

	Auth   *authstate.Context
	Client *studentapi.Client
	Logger *slog.Logger
}

// Connect loads the configuration, applies flag overrides, opens the
// session store, derives the initial auth state, and builds a client
// whose 401 handling clears the session through the auth context.
func (c *ConnectionConfig) Connect(ctx context.Context) (*Connection, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, Validation("%w", err)
	}
	if c.APIURL != "" {
		cfg.API.BaseURL = c.APIURL
	}
	if c.SessionFile != "" {
		cfg.Session.File = c.SessionFile
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("%w", err)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, Validation("%w", err)
	}
	var logger *slog.Logger
	if c.OpenLogger != nil {
		logger, err = c.OpenLogger(cfg, level)
		if err != nil {
			return nil, Validation("%w", err)
		}
	} else {
		logger = NewCommandLogger(StreamsFrom(ctx).Err, level)
	}

	sessionClock := c.Clock
	if sessionClock == nil {
		sessionClock = clock.Real()
	}

	var (
		store       session.Store
		sessionPath string
	)
	if c.EphemeralSession {
		store = session.NewMemoryStore(sessionClock)
	} else {
		sessionPath = cfg.Session.File
		if sessionPath == "" {
			sessionPath, err = session.DefaultPath()
			if err != nil {
				return nil, Internal("locate session file: %w", err)
			}
		}
		store = session.NewFileStore(sessionPath, sessionClock)
	}

	auth := authstate.New(store, logger)
	snapshot := auth.Init()
	logger.Debug("session state derived",
		"state", snapshot.State.String(),
		"session_file", sessionPath,
	)

	client, err := studentapi.NewClient(studentapi.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Store:   auth,
		Timeout: cfg.API.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, Validation("%w", err)
	}

	return &Connection{
		Config:      cfg,
		Store:       store,
		SessionPath: sessionPath,
		Auth:        auth,
		Client:      client,
		Logger:      logger,
	}, nil
}

// RequireLogin fails with a forbidden error when there is no valid
// session. No request is made.
func (c *Connection) RequireLogin() error {
	if !c.Auth.IsLoggedIn() {
		return Forbidden("%s", NotLoggedInMessage)
	}
	return nil
}

// Describe returns a short human description of where the session lives.
func (c *Connection) Describe() string {
	if c.SessionPath == "" {
		return "memory (ephemeral)"
	}
	return fmt.Sprintf("file %s", c.SessionPath)
}
