// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// relay is the maintenance entrypoint for the relay content backend.
// The HTTP transport is mounted by a separate process; this binary covers
// migrations, full workspace re-export, and session housekeeping.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/olegiv/relay-go/internal/config"
	"github.com/olegiv/relay-go/internal/export"
	"github.com/olegiv/relay-go/internal/logging"
	"github.com/olegiv/relay-go/internal/model"
	"github.com/olegiv/relay-go/internal/scheduler"
	"github.com/olegiv/relay-go/internal/store"
	"github.com/olegiv/relay-go/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "relay",
		Usage:   "Content backend for a static-site workspace: versioned posts, tags, and a publish pipeline",
		Version: version.Get().String(),
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the background housekeeping daemon until interrupted",
				Action: runDaemon,
			},
			{
				Name:   "migrate",
				Usage:  "Run pending database migrations",
				Action: runMigrate,
			},
			{
				Name:   "export",
				Usage:  "Re-render every published post into the workspace",
				Action: runExport,
			},
			{
				Name:   "purge-sessions",
				Usage:  "Delete expired session records",
				Action: runPurgeSessions,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration, opens the database, and installs the default
// logger with the event-log handler.
func setup() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	// Development runs carry source locations in log lines.
	inner := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: cfg.IsDevelopment(),
	})
	slog.SetDefault(slog.New(logging.NewEventLogHandler(inner, db)))

	return cfg, db, nil
}

// runDaemon starts the cron scheduler and blocks until the context is
// cancelled or the process receives an interrupt.
func runDaemon(ctx context.Context, _ *cli.Command) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	sched := scheduler.New(db, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("relay daemon running", "version", version.Get().String())
	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

func runMigrate(_ context.Context, _ *cli.Command) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return err
	}

	slog.Info("migrations applied")
	return nil
}

func runExport(ctx context.Context, _ *cli.Command) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	posts := store.NewPostStore(db)
	media := store.NewMediaStore(db)
	renderer := export.NewRenderer(cfg.WorkspacePath, cfg.UploadsDir, slog.Default())

	exported := 0
	for offset := int64(0); ; {
		page, err := posts.List(ctx, store.ListPostsParams{
			Status: model.PostStatusPublished,
			Limit:  100,
			Offset: offset,
		})
		if err != nil {
			return fmt.Errorf("listing published posts: %w", err)
		}

		for _, post := range page.Posts {
			postMedia, err := media.ByPostID(ctx, post.ID)
			if err != nil {
				return fmt.Errorf("loading media for post %s: %w", post.ID, err)
			}
			if _, err := renderer.Export(post, post.Tags, postMedia); err != nil {
				return fmt.Errorf("exporting post %s: %w", post.ID, err)
			}
			exported++
		}

		offset += int64(len(page.Posts))
		if offset >= page.Total || len(page.Posts) == 0 {
			break
		}
	}

	slog.Info("workspace export complete", "posts", exported)

	// One commit for the whole export rather than one per post.
	if cfg.GitSyncEnabled {
		git := export.NewGitSync(cfg.WorkspacePath, cfg.GitBranch, slog.Default())
		if err := git.Sync(ctx, fmt.Sprintf("export: %d posts", exported)); err != nil {
			// Same contract as the publish pipeline: sync failures are
			// logged, not fatal, and the workspace is left as written.
			slog.Error("git sync failed", "error", err)
		}
	}

	return nil
}

func runPurgeSessions(ctx context.Context, _ *cli.Command) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	n, err := store.NewSessionStore(db).DeleteExpired(ctx)
	if err != nil {
		return err
	}

	slog.Info("expired sessions purged", "count", n)
	return nil
}
