// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Media represents an uploaded file associated with posts. Upload and
// resizing happen outside the core; the publish pipeline only copies
// already-stored files into the workspace.
type Media struct {
	ID               string         `json:"id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	MimeType         string         `json:"mime_type"`
	SizeBytes        int64          `json:"size_bytes"`
	StoragePath      string         `json:"storage_path"`
	AltText          sql.NullString `json:"alt_text,omitempty"`
	CreatedBy        string         `json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
}
