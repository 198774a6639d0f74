// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"io"
	"os"
)

// Streams are the standard files a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// InFd is the descriptor behind In, used for terminal detection
	// when prompting for a password. -1 means In is not a terminal.
	InFd int
}

// StandardStreams returns the process's stdin, stdout, and stderr.
func StandardStreams() Streams {
	return Streams{
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
		InFd: int(os.Stdin.Fd()),
	}
}

type streamsKey struct{}

// WithStreams returns a context whose commands use streams.
func WithStreams(ctx context.Context, streams Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams)
}

// StreamsFrom returns the streams stored in ctx, or the standard
// streams when none were set.
func StreamsFrom(ctx context.Context) Streams {
	if streams, ok := ctx.Value(streamsKey{}).(Streams); ok {
		return streams
	}
	return StandardStreams()
}
