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

// UserStore resolves author references. Authentication lives outside the
// core; this store only creates and looks up author records.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a UserStore backed by db.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user record.
func (s *UserStore) Create(ctx context.Context, username, displayName string) (*model.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, display_name, created_at) VALUES (?, ?, ?, ?)`,
		id, username, util.NullStringFromValue(displayName), now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", username, apperr.ErrConflict)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns a user by id.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, email, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &u, nil
}
