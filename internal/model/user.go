// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// User is an author reference. Authentication and user management live
// outside the core; the store only resolves display names for posts and
// versions.
type User struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	DisplayName sql.NullString `json:"display_name,omitempty"`
	Email       sql.NullString `json:"email,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
