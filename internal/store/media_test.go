// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/olegiv/relay-go/internal/apperr"
)

func TestMediaCreateAndAttach(t *testing.T) {
	db := testDB(t)
	author := testAuthor(t, db)
	media := NewMediaStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()

	post, err := posts.Create(ctx, CreatePostParams{
		Collection: "blog", Title: "Illustrated", Body: "x", CreatedBy: author,
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}

	m, err := media.Create(ctx, CreateMediaParams{
		Filename:         "photo.jpg",
		OriginalFilename: "My Photo.JPG",
		MimeType:         "image/jpeg",
		SizeBytes:        2048,
		StoragePath:      "2026/01/photo.jpg",
		AltText:          strPtr("a photo"),
		CreatedBy:        author,
	})
	if err != nil {
		t.Fatalf("Create media: %v", err)
	}
	if m.Filename != "photo.jpg" || m.SizeBytes != 2048 {
		t.Errorf("media = %+v", m)
	}

	if err := media.AttachToPost(ctx, post.ID, m.ID); err != nil {
		t.Fatalf("AttachToPost: %v", err)
	}
	// Idempotent.
	if err := media.AttachToPost(ctx, post.ID, m.ID); err != nil {
		t.Fatalf("AttachToPost again: %v", err)
	}

	attached, err := media.ByPostID(ctx, post.ID)
	if err != nil {
		t.Fatalf("ByPostID: %v", err)
	}
	if len(attached) != 1 {
		t.Fatalf("attached = %d, want 1", len(attached))
	}
	if attached[0].ID != m.ID {
		t.Errorf("attached id = %s, want %s", attached[0].ID, m.ID)
	}
}

func TestMediaGetByIDNotFound(t *testing.T) {
	db := testDB(t)
	media := NewMediaStore(db)

	if _, err := media.GetByID(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
