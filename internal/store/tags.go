// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/olegiv/relay-go/internal/apperr"
	"github.com/olegiv/relay-go/internal/model"
	"github.com/olegiv/relay-go/internal/util"
)

// TagStore owns the tag taxonomy. Tag slugs are unique across all tags;
// collisions are rejected at creation.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a TagStore backed by db.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// Create inserts a new tag. The slug is derived from the name; a name whose
// slug collides with an existing tag (case-insensitively, since slugs are
// lowercase-normalized) is rejected with ErrConflict.
func (s *TagStore) Create(ctx context.Context, name string) (*model.Tag, error) {
	if err := validation.Validate(name, validation.Required, validation.Length(1, 50)); err != nil {
		return nil, fmt.Errorf("%w: tag name: %s", apperr.ErrValidation, err)
	}

	slug := util.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: tag name %q yields an empty slug", apperr.ErrValidation, name)
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE slug = ?`, slug).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking tag slug: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("tag slug %q: %w", slug, apperr.ErrConflict)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tags (name, slug, created_at) VALUES (?, ?, ?)`,
		name, slug, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag slug %q: %w", slug, apperr.ErrConflict)
		}
		return nil, fmt.Errorf("inserting tag: %w", err)
	}

	return s.GetBySlug(ctx, slug)
}

// GetBySlug returns a tag by its slug.
func (s *TagStore) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.name, t.slug, COUNT(pt.post_id), t.created_at
		FROM tags t
		LEFT JOIN post_tags pt ON t.id = pt.tag_id
		WHERE t.slug = ?
		GROUP BY t.id`, slug).
		Scan(&t.ID, &t.Name, &t.Slug, &t.PostCount, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %q: %w", slug, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}
	return &t, nil
}

// List returns all tags ordered by display name ascending, each annotated
// with its current post-association count.
func (s *TagStore) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, COUNT(pt.post_id), t.created_at
		FROM tags t
		LEFT JOIN post_tags pt ON t.id = pt.tag_id
		GROUP BY t.id
		ORDER BY t.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.PostCount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

// Delete removes a tag and its post associations. Posts themselves are
// never touched.
func (s *TagStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE tag_id = ?`, id); err != nil {
		return fmt.Errorf("clearing tag associations: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %d: %w", id, apperr.ErrNotFound)
	}

	return tx.Commit()
}
