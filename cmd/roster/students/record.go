// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package students

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/secret"
	"github.com/roster-project/roster/lib/studentapi"
)

// recordParams are the field flags shared by create and update. Flags
// override values read from --file.
type recordParams struct {
	Name         string `json:"name"   flag:"name"   desc:"full name"`
	Email        string `json:"email"  flag:"email"  desc:"email address"`
	Course       string `json:"course" flag:"course" desc:"enrolled course"`
	PasswordFile string `json:"-"      flag:"password-file" desc:"read the password from this file (- for stdin)"`
	File         string `json:"-"      flag:"file"   desc:"read the record from a JSON file; comments and trailing commas are allowed"`
}

// readRecordFile parses a student record file. Unknown keys are
// rejected so that a misspelled field is not silently dropped.
func readRecordFile(path string) (studentapi.StudentInput, error) {
	var input studentapi.StudentInput

	data, err := os.ReadFile(path)
	if err != nil {
		return input, cli.Validation("read %s: %w", path, err)
	}
	defer secret.Zero(data)

	stripped := jsonc.ToJSON(data)
	defer secret.Zero(stripped)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return input, cli.Validation("parse %s: %w", path, err)
	}
	return input, nil
}

// collect merges --file and the field flags into one input. The
// password comes from --password-file over the file; it is left empty
// when neither supplies one.
func (p *recordParams) collect() (studentapi.StudentInput, error) {
	var input studentapi.StudentInput
	if p.File != "" {
		fromFile, err := readRecordFile(p.File)
		if err != nil {
			return input, err
		}
		input = fromFile
	}

	if value := strings.TrimSpace(p.Name); value != "" {
		input.Name = value
	}
	if value := strings.TrimSpace(p.Email); value != "" {
		input.Email = value
	}
	if value := strings.TrimSpace(p.Course); value != "" {
		input.Course = value
	}
	if p.PasswordFile != "" {
		password, err := secret.ReadFromPath(p.PasswordFile)
		if err != nil {
			return input, cli.Validation("read password: %w", err)
		}
		input.Password = password.String()
		password.Close()
	}
	return input, nil
}

// promptPassword asks for a password when input has none.
func promptPassword(ctx context.Context, input *studentapi.StudentInput) error {
	if input.Password != "" {
		return nil
	}
	password, err := cli.ReadPassword(ctx, "", "Password for new student: ")
	if err != nil {
		return err
	}
	defer password.Close()
	input.Password = password.String()
	return nil
}

func missingFields(input studentapi.StudentInput) []string {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Course == "" {
		missing = append(missing, "course")
	}
	return missing
}
