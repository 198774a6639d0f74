// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	saved := [3]string{Version, GitCommit, BuildTime}
	t.Cleanup(func() { Version, GitCommit, BuildTime = saved[0], saved[1], saved[2] })

	Version, GitCommit, BuildTime = "1.2.3", "abc1234", "2026-10-01T00:00:00Z"
	if got, want := Info(), "1.2.3 (abc1234, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if got := UserAgent(); got != "roster/1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "roster/1.2.3")
	}
	if full := Full(); !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q, missing Go version", full)
	}
}
