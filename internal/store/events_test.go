// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/relay-go/internal/model"
)

func TestEventCreateAndListRecent(t *testing.T) {
	db := testDB(t)
	events := NewEventStore(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, msg := range []string{"first", "second", "third"} {
		err := events.Create(ctx, CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategoryPost,
			Message:   msg,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create %s: %v", msg, err)
		}
	}

	list, err := events.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("events = %d, want 2", len(list))
	}
	if list[0].Message != "third" || list[1].Message != "second" {
		t.Errorf("order = [%s %s], want newest first", list[0].Message, list[1].Message)
	}
	if list[0].Metadata != "{}" {
		t.Errorf("metadata = %q, want default {}", list[0].Metadata)
	}
}

func TestEventCreateDefaults(t *testing.T) {
	db := testDB(t)
	events := NewEventStore(db)
	ctx := context.Background()

	err := events.Create(ctx, CreateEventParams{
		Level:    model.EventLevelError,
		Category: model.EventCategoryPublish,
		Message:  "export failed",
		Metadata: `{"post_id":"abc"}`,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := events.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("events = %d, want 1", len(list))
	}
	if list[0].CreatedAt.IsZero() {
		t.Error("created_at not defaulted")
	}
	if list[0].Metadata != `{"post_id":"abc"}` {
		t.Errorf("metadata = %q", list[0].Metadata)
	}
}
