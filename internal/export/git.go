// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// GitSync stages exported content and media, commits, and pushes to the
// configured branch of the workspace repository. Any step failing fails the
// whole operation; no compensating action is taken on the filesystem or
// database, so on-disk-but-unsynced state may diverge until the next
// successful sync.
type GitSync struct {
	workspace string
	branch    string
	logger    *slog.Logger
}

// NewGitSync creates a GitSync for the workspace repository.
func NewGitSync(workspace, branch string, logger *slog.Logger) *GitSync {
	if logger == nil {
		logger = slog.Default()
	}
	return &GitSync{workspace: workspace, branch: branch, logger: logger}
}

// Sync runs git add, commit, and push in the workspace.
func (g *GitSync) Sync(ctx context.Context, message string) error {
	steps := [][]string{
		{"add", "src/content/", "public/media/"},
		{"commit", "-m", message},
		{"push", "origin", g.branch},
	}

	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = g.workspace
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s: %w: %s", args[0], err, out)
		}
	}

	g.logger.Info("git commit and push successful", "branch", g.branch, "message", message)
	return nil
}
