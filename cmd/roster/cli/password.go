// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"

	"github.com/roster-project/roster/lib/secret"
)

// ReadPassword returns the password at path ("-" for stdin) or, when
// path is empty, prompts for it on the context's streams. The caller
// must Close the returned buffer.
func ReadPassword(ctx context.Context, path, label string) (*secret.Buffer, error) {
	if path != "" {
		buffer, err := secret.ReadFromPath(path)
		if err != nil {
			return nil, Validation("read password: %w", err)
		}
		return buffer, nil
	}
	streams := StreamsFrom(ctx)
	buffer, err := secret.Prompt(streams.InFd, streams.In, streams.Err, label)
	if err != nil {
		return nil, Validation("read password: %w", err)
	}
	return buffer, nil
}
