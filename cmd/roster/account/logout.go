// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
)

type logoutParams struct {
	cli.ConnectionConfig
}

// LogoutCommand returns the "logout" command. Logging out without a
// session succeeds.
func LogoutCommand() *cli.Command {
	var params logoutParams

	return &cli.Command{
		Name:    "logout",
		Summary: "Forget the saved session",
		Description: `Remove the saved session. No request is sent to the server; the
token itself stays valid until it expires.`,
		Usage: "roster logout [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("logout", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 0, "roster logout"); err != nil {
				return err
			}
			connection, err := params.Connect(ctx)
			if err != nil {
				return err
			}

			wasLoggedIn := connection.Auth.IsLoggedIn()
			if err := connection.Auth.Logout(); err != nil {
				return cli.Internal("clear session: %w", err)
			}

			out := cli.StreamsFrom(ctx).Out
			if wasLoggedIn {
				fmt.Fprintln(out, "Logged out.")
			} else {
				fmt.Fprintln(out, "Not logged in.")
			}
			return nil
		},
	}
}
