// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the plain data structures persisted by the store.
package model

import (
	"database/sql"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// ValidPostStatuses lists all valid post statuses.
var ValidPostStatuses = []string{PostStatusDraft, PostStatusPublished}

// Post represents a unit of content. The slug is derived from the title at
// creation time and never changes afterwards; it is the content identity
// for export purposes.
type Post struct {
	ID          string         `json:"id"`
	Collection  string         `json:"collection"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Summary     sql.NullString `json:"summary,omitempty"`
	Status      string         `json:"status"`
	CreatedBy   string         `json:"created_by"`
	AuthorName  sql.NullString `json:"author_name,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	PublishedAt sql.NullTime   `json:"published_at,omitempty"`
	Tags        []string       `json:"tags"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsDraft returns true if the post is a draft.
func (p *Post) IsDraft() bool {
	return p.Status == PostStatusDraft
}

// PostVersion is an immutable snapshot of a post's content. Version numbers
// are gapless and strictly increasing per post, starting at 1.
type PostVersion struct {
	ID            int64          `json:"id"`
	PostID        string         `json:"post_id"`
	VersionNumber int64          `json:"version_number"`
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	Summary       sql.NullString `json:"summary,omitempty"`
	CreatedBy     string         `json:"created_by"`
	AuthorName    sql.NullString `json:"author_name,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts  []*Post `json:"posts"`
	Total  int64   `json:"total"`
	Limit  int64   `json:"limit"`
	Offset int64   `json:"offset"`
}
