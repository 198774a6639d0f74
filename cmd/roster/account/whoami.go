// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/session"
)

type whoamiParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	Verify bool `json:"verify" flag:"verify" desc:"confirm the server still accepts the token"`
}

type whoamiOutput struct {
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionFile string    `json:"session_file,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// WhoAmICommand returns the "whoami" command. Without --verify only the
// local session is read.
func WhoAmICommand() *cli.Command {
	var params whoamiParams

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the logged-in user",
		Description: `Display the email and token expiry of the saved session.

With --verify, the student list is fetched to confirm the server still
accepts the token. A rejected token is cleared, as it would be by any
other command.`,
		Usage: "roster whoami [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the current user",
				Command:     "roster whoami",
			},
			{
				Description: "Check the token against the server",
				Command:     "roster whoami --verify",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("whoami", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 0, "roster whoami"); err != nil {
				return err
			}
			connection, err := params.Connect(ctx)
			if err != nil {
				return err
			}
			if err := connection.RequireLogin(); err != nil {
				return err
			}

			stored, err := connection.Auth.Read()
			if err != nil {
				return cli.Internal("read session: %w", err)
			}
			expiresAt, err := session.ExpiresAt(stored.Token)
			if err != nil {
				return cli.Internal("decode token: %w", err)
			}
			output := whoamiOutput{
				Email:       stored.Email,
				ExpiresAt:   expiresAt,
				SessionFile: connection.SessionPath,
			}

			if params.Verify {
				students, err := connection.Client.ListStudents(ctx)
				if err != nil {
					return cli.APIFailure(err, "verify session", "Failed to fetch students")
				}
				output.Status = fmt.Sprintf("valid (%d students visible)", len(students))
			}

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, output); done {
				return err
			}
			fmt.Fprintf(out, "Email:    %s\n", output.Email)
			fmt.Fprintf(out, "Expires:  %s\n", output.ExpiresAt.Local().Format(time.RFC1123))
			fmt.Fprintf(out, "Session:  %s\n", connection.Describe())
			if output.Status != "" {
				fmt.Fprintf(out, "Status:   %s\n", output.Status)
			}
			return nil
		},
	}
}
