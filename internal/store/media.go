// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/relay-go/internal/apperr"
	"github.com/olegiv/relay-go/internal/model"
	"github.com/olegiv/relay-go/internal/util"
)

// MediaStore tracks uploaded files and their post associations. The upload
// pipeline itself (resizing, storage) is outside the core; the publish
// pipeline reads associations to copy files into the workspace.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a MediaStore backed by db.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// CreateMediaParams holds the input for Create.
type CreateMediaParams struct {
	Filename         string
	OriginalFilename string
	MimeType         string
	SizeBytes        int64
	StoragePath      string
	AltText          *string
	CreatedBy        string
}

// Create records an uploaded media file.
func (s *MediaStore) Create(ctx context.Context, params CreateMediaParams) (*model.Media, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO media (id, filename, original_filename, mime_type, size_bytes, storage_path, alt_text, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.Filename, params.OriginalFilename, params.MimeType, params.SizeBytes,
		params.StoragePath, util.NullStringFromPtr(params.AltText), params.CreatedBy, now)
	if err != nil {
		return nil, fmt.Errorf("inserting media: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns a media record by id.
func (s *MediaStore) GetByID(ctx context.Context, id string) (*model.Media, error) {
	var m model.Media
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, original_filename, mime_type, size_bytes, storage_path, alt_text, created_by, created_at
		FROM media WHERE id = ?`, id).
		Scan(&m.ID, &m.Filename, &m.OriginalFilename, &m.MimeType, &m.SizeBytes,
			&m.StoragePath, &m.AltText, &m.CreatedBy, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("media %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting media: %w", err)
	}
	return &m, nil
}

// AttachToPost associates a media file with a post. Attaching the same pair
// twice is a no-op.
func (s *MediaStore) AttachToPost(ctx context.Context, postID, mediaID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO post_media (post_id, media_id) VALUES (?, ?)`, postID, mediaID)
	if err != nil {
		return fmt.Errorf("attaching media: %w", err)
	}
	return nil
}

// ByPostID returns all media associated with a post.
func (s *MediaStore) ByPostID(ctx context.Context, postID string) ([]model.Media, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.filename, m.original_filename, m.mime_type, m.size_bytes, m.storage_path, m.alt_text, m.created_by, m.created_at
		FROM media m
		JOIN post_media pm ON m.id = pm.media_id
		WHERE pm.post_id = ?`, postID)
	if err != nil {
		return nil, fmt.Errorf("listing post media: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var media []model.Media
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(&m.ID, &m.Filename, &m.OriginalFilename, &m.MimeType, &m.SizeBytes,
			&m.StoragePath, &m.AltText, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating media: %w", err)
	}

	return media, nil
}
