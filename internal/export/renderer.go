// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package export turns published posts into durable external artifacts:
// a rendered markdown file in the static-site workspace, an optional git
// commit, and a best-effort webhook notification.
package export

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olegiv/relay-go/internal/model"
	"github.com/olegiv/relay-go/internal/util"
)

// contentDir is the workspace subdirectory holding rendered content,
// organized by collection.
const contentDir = "src/content"

// mediaDir is the workspace subdirectory media files are copied into.
const mediaDir = "public/media"

// frontmatter is the metadata block written ahead of the post body.
type frontmatter struct {
	Title       string    `yaml:"title"`
	PubDate     time.Time `yaml:"pubDate"`
	Description string    `yaml:"description"`
	Tags        []string  `yaml:"tags"`
	Draft       bool      `yaml:"draft"`
}

// Result describes a completed export.
type Result struct {
	FilePath   string `json:"filePath"`   // artifact path relative to the workspace root
	MediaFiles int    `json:"mediaFiles"` // number of media files copied
}

// Renderer writes post artifacts into the static-site workspace. It is a
// pure transformation plus file I/O: it never reads or writes the database.
type Renderer struct {
	workspace  string
	uploadsDir string
	logger     *slog.Logger
}

// NewRenderer creates a Renderer rooted at the given workspace. Media files
// are copied from uploadsDir.
func NewRenderer(workspace, uploadsDir string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{workspace: workspace, uploadsDir: uploadsDir, logger: logger}
}

// Render builds the artifact content and its workspace-relative path for a
// post. The metadata block prefers the explicit publish time and falls back
// to the creation time; the draft flag reflects the post status.
func (r *Renderer) Render(post *model.Post, tagNames []string) (string, string, error) {
	pubDate := post.CreatedAt
	if post.PublishedAt.Valid {
		pubDate = post.PublishedAt.Time
	}
	if tagNames == nil {
		tagNames = []string{}
	}

	fm := frontmatter{
		Title:       post.Title,
		PubDate:     pubDate,
		Description: post.Summary.String,
		Tags:        tagNames,
		Draft:       !post.IsPublished(),
	}

	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	content := fmt.Sprintf("---\n%s---\n\n%s\n", meta, post.Body)
	return content, r.Locate(post), nil
}

// Locate returns the deterministic workspace-relative artifact path for a
// post: {contentDir}/{collection}/{slug}.md. Posts in one collection whose
// titles normalize to the same slug share a path; the last write wins.
func (r *Renderer) Locate(post *model.Post) string {
	return path.Join(contentDir, post.Collection, post.Slug+".md")
}

// Export renders the post and writes the artifact, creating missing parent
// directories. An existing file at the path is overwritten without warning.
// Associated media files are copied best-effort: a missing source is logged
// and skipped, never an error.
func (r *Renderer) Export(post *model.Post, tagNames []string, media []model.Media) (*Result, error) {
	content, relPath, err := r.Render(post, tagNames)
	if err != nil {
		return nil, err
	}

	absPath, err := util.SafeJoinPath(r.workspace, relPath)
	if err != nil {
		return nil, fmt.Errorf("resolving artifact path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating content directory: %w", err)
	}

	if err := os.WriteFile(absPath, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing artifact: %w", err)
	}

	r.logger.Info("exported post artifact", "post_id", post.ID, "path", relPath)

	copied := 0
	for _, m := range media {
		if err := r.copyMedia(m); err != nil {
			r.logger.Warn("skipping media file", "media_id", m.ID, "error", err)
			continue
		}
		copied++
	}

	return &Result{FilePath: relPath, MediaFiles: copied}, nil
}

// Remove deletes the artifact for a post if present. A missing file is not
// an error so the operation is idempotent.
func (r *Renderer) Remove(post *model.Post) error {
	absPath, err := util.SafeJoinPath(r.workspace, r.Locate(post))
	if err != nil {
		return fmt.Errorf("resolving artifact path: %w", err)
	}

	if err := os.Remove(absPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing artifact: %w", err)
	}

	r.logger.Info("removed post artifact", "post_id", post.ID, "path", r.Locate(post))
	return nil
}

// copyMedia copies one stored media file into the workspace media directory.
func (r *Renderer) copyMedia(m model.Media) error {
	src, err := util.SafeJoinPath(r.uploadsDir, m.StoragePath)
	if err != nil {
		return fmt.Errorf("resolving media source: %w", err)
	}

	name, err := util.SanitizeFilename(m.Filename)
	if err != nil {
		return fmt.Errorf("sanitizing media filename: %w", err)
	}
	dst, err := util.SafeJoinPath(r.workspace, mediaDir, name)
	if err != nil {
		return fmt.Errorf("resolving media destination: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening media source: %w", err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating media directory: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating media destination: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying media: %w", err)
	}

	return out.Close()
}
