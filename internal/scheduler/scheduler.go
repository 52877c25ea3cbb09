// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic housekeeping tasks. The only task today
// is the expired-session purge; it does not interact with the publish
// pipeline.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/relay-go/internal/store"
)

// Scheduler owns the cron instance and its registered jobs.
type Scheduler struct {
	cron     *cron.Cron
	sessions *store.SessionStore
	logger   *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:     cron.New(),
		sessions: store.NewSessionStore(db),
		logger:   logger,
	}
}

// Start begins the scheduler with an hourly expired-session purge.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.purgeExpiredSessions(); err != nil {
			s.logger.Error("failed to purge expired sessions", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeExpiredSessions deletes sessions past their expiry.
func (s *Scheduler) purgeExpiredSessions() error {
	n, err := s.sessions.DeleteExpired(context.Background())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("purged expired sessions", "count", n)
	}
	return nil
}
