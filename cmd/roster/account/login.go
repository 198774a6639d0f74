// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/session"
)

type loginParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	PasswordFile string `json:"-" flag:"password-file" desc:"read the password from this file (- for stdin) instead of prompting"`
}

// sessionOutput is the JSON output of login and register.
type sessionOutput struct {
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionFile string    `json:"session_file,omitempty"`
	StudentID   int       `json:"student_id,omitempty"`
}

// LoginCommand returns the "login" command.
func LoginCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Log in and save the session",
		Description: `Exchange an email and password for a session token.

The password is read from --password-file, or prompted for with echo
disabled. On success the token and email are written to the session
file, replacing any previous session.`,
		Usage: "roster login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively",
				Command:     "roster login ada@example.com",
			},
			{
				Description: "Log in from a script",
				Command:     "roster login ada@example.com --password-file ~/.roster-password",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("login", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 1, "roster login <email>"); err != nil {
				return err
			}
			email := strings.TrimSpace(args[0])
			if email == "" {
				return cli.Validation("email is required")
			}

			connection, err := params.Connect(ctx)
			if err != nil {
				return err
			}
			password, err := cli.ReadPassword(ctx, params.PasswordFile, "Password: ")
			if err != nil {
				return err
			}
			defer password.Close()

			granted, err := connection.Client.Login(ctx, email, password.String())
			if err != nil {
				return cli.APIFailure(err, "login", "Invalid Credentials")
			}
			connection.Logger.Info("logged in", "email", granted.Email)

			return reportSession(ctx, &params.JSONOutput, connection, granted, 0, "Login Successful!")
		},
	}
}

// reportSession prints the outcome of a credential exchange.
func reportSession(ctx context.Context, output *cli.JSONOutput, connection *cli.Connection, granted *session.Session, studentID int, headline string) error {
	result := sessionOutput{
		Email:       granted.Email,
		SessionFile: connection.SessionPath,
		StudentID:   studentID,
	}
	// A token without a readable expiry is still saved; it just reads
	// as logged out on the next start.
	if expiresAt, err := session.ExpiresAt(granted.Token); err == nil {
		result.ExpiresAt = expiresAt
	}

	out := cli.StreamsFrom(ctx).Out
	if done, err := output.EmitJSON(out, result); done {
		return err
	}

	fmt.Fprintln(out, headline)
	fmt.Fprintf(out, "Email:    %s\n", result.Email)
	if studentID != 0 {
		fmt.Fprintf(out, "Student:  %d\n", studentID)
	}
	if !result.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Expires:  %s\n", result.ExpiresAt.Local().Format(time.RFC1123))
	}
	fmt.Fprintf(out, "Session:  %s\n", connection.Describe())
	return nil
}
