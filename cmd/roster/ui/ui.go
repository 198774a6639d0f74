// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package ui implements "roster ui", the full-screen login, register,
// and dashboard application.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/config"
	"github.com/roster-project/roster/lib/rosterui"
)

type uiParams struct {
	cli.ConnectionConfig
	Route string `json:"route" flag:"route" desc:"path to open: /, /login, /register, /home, or /dashboard" default:"/"`
}

// Command returns the "ui" command.
func Command() *cli.Command {
	var params uiParams

	return &cli.Command{
		Name:    "ui",
		Summary: "Open the interactive student manager",
		Description: `Run the full-screen application. Logged-out users land on the login
screen; a valid saved session opens the dashboard directly.

The session is shared with the other commands, so "roster login" before
"roster ui" skips the login screen. Logs never go to the terminal while
the application draws: set ui.log_file in the config to keep them.`,
		Usage: "roster ui [flags]",
		Examples: []cli.Example{
			{
				Description: "Open the application",
				Command:     "roster ui",
			},
			{
				Description: "Start on the registration screen",
				Command:     "roster ui --route /register",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("ui", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 0, "roster ui"); err != nil {
				return err
			}

			streams := cli.StreamsFrom(ctx)
			if streams.InFd < 0 || !term.IsTerminal(streams.InFd) {
				return cli.Validation("roster ui needs an interactive terminal")
			}

			var logFile io.Closer
			params.OpenLogger = func(cfg *config.Config, level slog.Level) (*slog.Logger, error) {
				logger, closer, err := openLogger(cfg.UI.LogFile, level)
				logFile = closer
				return logger, err
			}
			connection, err := params.Connect(ctx)
			if logFile != nil {
				defer logFile.Close()
			}
			if err != nil {
				return err
			}

			err = rosterui.Run(ctx, rosterui.Config{
				Client:         connection.Client,
				Auth:           connection.Auth,
				InitialRoute:   params.Route,
				MessageTimeout: connection.Config.UI.MessageTimeout,
				Logger:         connection.Logger,
			}, streams.In, streams.Out)
			if err != nil && ctx.Err() == nil {
				return cli.Internal("ui: %w", err)
			}
			return nil
		},
	}
}

// openLogger returns a JSON logger appending to path, or a discarding
// logger when path is empty.
func openLogger(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening ui log file: %w", err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), file, nil
}
