// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/studentapi"
)

type registerParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	Name         string `json:"name"   flag:"name"   desc:"full name"`
	Email        string `json:"email"  flag:"email"  desc:"email address, used to log in"`
	Course       string `json:"course" flag:"course" desc:"enrolled course"`
	PasswordFile string `json:"-"      flag:"password-file" desc:"read the password from this file (- for stdin) instead of prompting"`
}

// RegisterCommand returns the "register" command.
func RegisterCommand() *cli.Command {
	var params registerParams

	return &cli.Command{
		Name:    "register",
		Summary: "Create an account and log in",
		Description: `Register a new student and log in as them.

The server answers a registration with a session token, so a
successful register replaces any saved session just like login.`,
		Usage: "roster register --name <name> --email <email> --course <course> [flags]",
		Examples: []cli.Example{
			{
				Description: "Register interactively",
				Command:     `roster register --name "Ada Lovelace" --email ada@example.com --course Mathematics`,
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("register", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 0, "roster register"); err != nil {
				return err
			}

			input := studentapi.StudentInput{
				Name:   strings.TrimSpace(params.Name),
				Email:  strings.TrimSpace(params.Email),
				Course: strings.TrimSpace(params.Course),
			}
			if missing := missingFields(input); len(missing) > 0 {
				return cli.Validation("missing required flags: %s", strings.Join(missing, ", "))
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
			input.Password = password.String()

			registration, err := connection.Client.CreateStudent(ctx, input)
			if err != nil {
				return cli.APIFailure(err, "register", "Registration failed")
			}
			connection.Logger.Info("registered", "email", registration.Student.Email, "student_id", registration.Student.ID)

			granted, err := connection.Auth.Read()
			if err != nil {
				return cli.Internal("read saved session: %w", err)
			}
			return reportSession(ctx, &params.JSONOutput, connection, granted, registration.Student.ID, "Registration Successful!")
		},
	}
}

func missingFields(input studentapi.StudentInput) []string {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "--name")
	}
	if input.Email == "" {
		missing = append(missing, "--email")
	}
	if input.Course == "" {
		missing = append(missing, "--course")
	}
	return missing
}
