// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/olegiv/relay-go/internal/apperr"
)

func TestTagCreate(t *testing.T) {
	db := testDB(t)
	tags := NewTagStore(db)
	ctx := context.Background()

	tag, err := tags.Create(ctx, "Node.js")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tag.Name != "Node.js" {
		t.Errorf("name = %q, want Node.js", tag.Name)
	}
	if tag.Slug != "nodejs" {
		t.Errorf("slug = %q, want nodejs", tag.Slug)
	}
	if tag.PostCount != 0 {
		t.Errorf("post count = %d, want 0", tag.PostCount)
	}
}

func TestTagCreateSlugConflict(t *testing.T) {
	db := testDB(t)
	tags := NewTagStore(db)
	ctx := context.Background()

	if _, err := tags.Create(ctx, "Node.js"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A different display name normalizing to the same slug is a conflict.
	_, err := tags.Create(ctx, "NODE.JS")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestTagCreateValidation(t *testing.T) {
	db := testDB(t)
	tags := NewTagStore(db)
	ctx := context.Background()

	tests := []struct {
		name string
		tag  string
	}{
		{"empty", ""},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"symbols only", "???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tags.Create(ctx, tt.tag)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestTagList(t *testing.T) {
	db := testDB(t)
	author := testAuthor(t, db)
	tags := NewTagStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()

	for _, name := range []string{"zebra", "apple", "mango"} {
		if _, err := tags.Create(ctx, name); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	if _, err := posts.Create(ctx, CreatePostParams{
		Collection: "blog", Title: "Fruit Post", Body: "x",
		Tags: []string{"apple", "mango"}, CreatedBy: author,
	}); err != nil {
		t.Fatalf("Create post: %v", err)
	}

	list, err := tags.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("tags = %d, want 3", len(list))
	}

	// Name ascending with live association counts.
	wantOrder := []string{"apple", "mango", "zebra"}
	wantCount := []int64{1, 1, 0}
	for i, tag := range list {
		if tag.Name != wantOrder[i] {
			t.Errorf("list[%d].Name = %q, want %q", i, tag.Name, wantOrder[i])
		}
		if tag.PostCount != wantCount[i] {
			t.Errorf("list[%d].PostCount = %d, want %d", i, tag.PostCount, wantCount[i])
		}
	}
}

func TestTagDelete(t *testing.T) {
	db := testDB(t)
	author := testAuthor(t, db)
	tags := NewTagStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()

	post, err := posts.Create(ctx, CreatePostParams{
		Collection: "blog", Title: "Tagged Post", Body: "x",
		Tags: []string{"doomed"}, CreatedBy: author,
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}

	tag, err := tags.GetBySlug(ctx, "doomed")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}

	if err := tags.Delete(ctx, tag.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := tags.GetBySlug(ctx, "doomed"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetBySlug after delete = %v, want ErrNotFound", err)
	}

	// The post is untouched; it just lost the tag.
	got, err := posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("post tags = %v, want none", got.Tags)
	}
}

func TestTagDeleteNotFound(t *testing.T) {
	db := testDB(t)
	tags := NewTagStore(db)

	if err := tags.Delete(context.Background(), 9999); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
