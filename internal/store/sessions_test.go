// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"
	"time"
)

func TestDeleteExpiredSessions(t *testing.T) {
	db := testDB(t)
	author := testAuthor(t, db)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []struct {
		id      string
		expires time.Time
	}{
		{"expired-1", now.Add(-time.Hour)},
		{"expired-2", now.Add(-time.Minute)},
		{"live", now.Add(time.Hour)},
	}
	for _, s := range seed {
		_, err := db.ExecContext(ctx, `
			INSERT INTO sessions (id, user_id, expires_at, last_activity)
			VALUES (?, ?, ?, ?)`, s.id, author, s.expires, now.Add(-2*time.Hour))
		if err != nil {
			t.Fatalf("seeding session %s: %v", s.id, err)
		}
	}

	purged, err := sessions.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if purged != 2 {
		t.Errorf("purged = %d, want 2", purged)
	}

	var remaining int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&remaining); err != nil {
		t.Fatalf("counting sessions: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
}
