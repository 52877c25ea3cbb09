// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestGetDefaults(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GitCommit != GitCommit {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, GitCommit)
	}
}

func TestString(t *testing.T) {
	info := Info{Version: "v1.0.0", GitCommit: "abc1234"}
	if got := info.String(); got != "v1.0.0 (abc1234)" {
		t.Errorf("String() = %q", got)
	}

	info.BuildTime = "2026-01-30T12:00:00Z"
	if got := info.String(); got != "v1.0.0 (abc1234, built 2026-01-30T12:00:00Z)" {
		t.Errorf("String() with build time = %q", got)
	}
}
