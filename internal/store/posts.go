// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/olegiv/relay-go/internal/apperr"
	"github.com/olegiv/relay-go/internal/model"
	"github.com/olegiv/relay-go/internal/util"
)

// Sort allow-list for post listings. Unrecognized values silently fall back
// to the defaults instead of erroring; this permissiveness is part of the
// listing contract.
const (
	defaultSort  = "created_at"
	defaultOrder = "DESC"
)

var allowedSorts = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"published_at": true,
	"title":        true,
}

// PostStore owns relational persistence of posts, their version history,
// and tag associations. Multi-table writes run inside a single transaction.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a PostStore backed by db.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// CreatePostParams holds the input for Create.
type CreatePostParams struct {
	Collection string
	Title      string
	Body       string
	Summary    *string
	Tags       []string
	CreatedBy  string
}

// Validate enforces the semantic input rules for post creation.
func (p CreatePostParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Collection, validation.Required, validation.Length(2, 30), is.Alphanumeric),
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Body, validation.Required),
		validation.Field(&p.Summary, validation.Length(0, 500)),
		validation.Field(&p.Tags, validation.Length(0, 10), validation.Each(validation.Required, validation.Length(1, 50))),
		validation.Field(&p.CreatedBy, validation.Required),
	)
}

// Create inserts a new draft post together with its version-1 snapshot and
// any supplied tag attachments, all in one transaction. The slug is derived
// from the title and is immutable afterwards.
func (s *PostStore) Create(ctx context.Context, params CreatePostParams) (*model.Post, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	slug := util.Slugify(params.Title)
	if slug == "" {
		return nil, fmt.Errorf("%w: title %q yields an empty slug", apperr.ErrValidation, params.Title)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	summary := util.NullStringFromPtr(params.Summary)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO posts (id, collection, slug, title, body, summary, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.Collection, slug, params.Title, params.Body, summary,
		model.PostStatusDraft, params.CreatedBy, now, now)
	if err != nil {
		return nil, fmt.Errorf("inserting post: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO post_versions (post_id, version_number, title, body, summary, created_by, created_at)
		VALUES (?, 1, ?, ?, ?, ?, ?)`,
		id, params.Title, params.Body, summary, params.CreatedBy, now)
	if err != nil {
		return nil, fmt.Errorf("inserting initial version: %w", err)
	}

	if len(params.Tags) > 0 {
		if err := attachTags(ctx, tx, id, params.Tags, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing post creation: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns a post with its resolved tag names and author display name.
func (s *PostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.collection, p.slug, p.title, p.body, p.summary, p.status,
		       p.created_by, u.display_name, p.created_at, p.updated_at, p.published_at
		FROM posts p
		LEFT JOIN users u ON p.created_by = u.id
		WHERE p.id = ?`, id)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("getting post: %w", err)
	}

	tags, err := postTagNames(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return post, nil
}

// ListPostsParams holds filters and pagination for List.
type ListPostsParams struct {
	Status     string
	Collection string
	Limit      int64
	Offset     int64
	Sort       string
	Order      string
}

// List returns one page of posts matching the filters. The status filter,
// sort key, and order are restricted to allow-lists; anything else is
// silently dropped or falls back to created_at descending.
func (s *PostStore) List(ctx context.Context, params ListPostsParams) (*model.PostPage, error) {
	sortCol := params.Sort
	if !allowedSorts[sortCol] {
		sortCol = defaultSort
	}
	order := defaultOrder
	switch params.Order {
	case "asc", "ASC":
		order = "ASC"
	case "desc", "DESC":
		order = "DESC"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := " WHERE 1=1"
	args := []any{}
	// An unrecognized status is dropped like an unrecognized sort key,
	// not matched against zero rows.
	if slices.Contains(model.ValidPostStatuses, params.Status) {
		where += " AND p.status = ?"
		args = append(args, params.Status)
	}
	if params.Collection != "" {
		where += " AND p.collection = ?"
		args = append(args, params.Collection)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting posts: %w", err)
	}

	query := `
		SELECT p.id, p.collection, p.slug, p.title, p.body, p.summary, p.status,
		       p.created_by, u.display_name, p.created_at, p.updated_at, p.published_at
		FROM posts p
		LEFT JOIN users u ON p.created_by = u.id` +
		where + " ORDER BY p." + sortCol + " " + order + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}

	for _, post := range posts {
		tags, err := postTagNames(ctx, s.db, post.ID)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}

	return &model.PostPage{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

// UpdatePostParams holds the partial update for Update. Nil fields are left
// untouched. A nil Tags leaves associations alone; a non-nil Tags (even
// empty) atomically replaces the full association set. The slug never
// changes, regardless of title changes.
type UpdatePostParams struct {
	Title   *string
	Body    *string
	Summary *string
	Tags    *[]string
}

// Validate enforces the semantic input rules for post updates.
func (p UpdatePostParams) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Length(1, 200)),
		validation.Field(&p.Summary, validation.Length(0, 500)),
	)
	if err != nil {
		return err
	}
	if p.Tags != nil {
		return validation.Validate(*p.Tags,
			validation.Length(0, 10), validation.Each(validation.Required, validation.Length(1, 50)))
	}
	return nil
}

// Update applies the supplied fields and always appends a new version row
// computed from the merged post state, with version number MAX+1. Every
// update, autosave included, produces a permanent version snapshot.
func (s *PostStore) Update(ctx context.Context, id string, params UpdatePostParams) (*model.Post, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		title, body, createdBy string
		summary                sql.NullString
	)
	err = tx.QueryRowContext(ctx,
		`SELECT title, body, summary, created_by FROM posts WHERE id = ?`, id).
		Scan(&title, &body, &summary, &createdBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading post for update: %w", err)
	}

	// Merge the partial update into the current state.
	if params.Title != nil {
		title = *params.Title
	}
	if params.Body != nil {
		body = *params.Body
	}
	if params.Summary != nil {
		summary = util.NullStringFromValue(*params.Summary)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET title = ?, body = ?, summary = ?, updated_at = ? WHERE id = ?`,
		title, body, summary, now, id)
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	// Snapshot the merged state as the next version.
	var maxVersion sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(version_number) FROM post_versions WHERE post_id = ?`, id).
		Scan(&maxVersion)
	if err != nil {
		return nil, fmt.Errorf("reading version number: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO post_versions (post_id, version_number, title, body, summary, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, maxVersion.Int64+1, title, body, summary, createdBy, now)
	if err != nil {
		return nil, fmt.Errorf("inserting version: %w", err)
	}

	if params.Tags != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, id); err != nil {
			return nil, fmt.Errorf("clearing tag associations: %w", err)
		}
		if len(*params.Tags) > 0 {
			if err := attachTags(ctx, tx, id, *params.Tags, now); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing post update: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Publish transitions a post to published. The published timestamp is the
// supplied value or the current time. Publishing is a status transition,
// not a content edit: no version row is created.
func (s *PostStore) Publish(ctx context.Context, id string, publishedAt *time.Time) (*model.Post, error) {
	now := time.Now().UTC()
	ts := now
	if publishedAt != nil {
		ts = *publishedAt
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET status = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		model.PostStatusPublished, ts, now, id)
	if err != nil {
		return nil, fmt.Errorf("publishing post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("post %s: %w", id, apperr.ErrNotFound)
	}

	return s.GetByID(ctx, id)
}

// Unpublish transitions a post back to draft. The published timestamp is
// retained so the post's publication history stays visible.
func (s *PostStore) Unpublish(ctx context.Context, id string) (*model.Post, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET status = ?, updated_at = ? WHERE id = ?`,
		model.PostStatusDraft, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("unpublishing post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("post %s: %w", id, apperr.ErrNotFound)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a post; version history and tag associations cascade.
// Deleting an unknown id is a no-op at this layer, so callers that need
// 404 semantics must check existence first.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// Versions returns all version snapshots for a post, newest first.
func (s *PostStore) Versions(ctx context.Context, postID string) ([]model.PostVersion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.post_id, v.version_number, v.title, v.body, v.summary,
		       v.created_by, u.display_name, v.created_at
		FROM post_versions v
		LEFT JOIN users u ON v.created_by = u.id
		WHERE v.post_id = ?
		ORDER BY v.version_number DESC`, postID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var versions []model.PostVersion
	for rows.Next() {
		var v model.PostVersion
		if err := rows.Scan(&v.ID, &v.PostID, &v.VersionNumber, &v.Title, &v.Body,
			&v.Summary, &v.CreatedBy, &v.AuthorName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}

	return versions, nil
}

// attachTags attaches the named tags to a post, creating missing tags
// first. Attachment is idempotent: duplicate pairs are silently ignored.
// Tag names whose derived slug is empty are skipped.
func attachTags(ctx context.Context, tx DBTX, postID string, names []string, now time.Time) error {
	for _, name := range names {
		slug := util.Slugify(name)
		if slug == "" {
			continue
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tags (name, slug, created_at) VALUES (?, ?, ?)
			 ON CONFLICT(slug) DO NOTHING`, name, slug, now); err != nil {
			return fmt.Errorf("inserting tag %q: %w", name, err)
		}

		var tagID int64
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM tags WHERE slug = ?`, slug).Scan(&tagID); err != nil {
			return fmt.Errorf("resolving tag %q: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO post_tags (post_id, tag_id) VALUES (?, ?)`,
			postID, tagID); err != nil {
			return fmt.Errorf("linking tag %q: %w", name, err)
		}
	}
	return nil
}

// postTagNames returns the names of all tags attached to a post.
func postTagNames(ctx context.Context, q DBTX, postID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.name
		FROM tags t
		JOIN post_tags pt ON t.id = pt.tag_id
		WHERE pt.post_id = ?
		ORDER BY t.name`, postID)
	if err != nil {
		return nil, fmt.Errorf("loading post tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning tag name: %w", err)
		}
		tags = append(tags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post tags: %w", err)
	}

	return tags, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanPost.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Collection, &p.Slug, &p.Title, &p.Body, &p.Summary,
		&p.Status, &p.CreatedBy, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
