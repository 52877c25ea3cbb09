// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apperr defines the error taxonomy shared across the core:
// callers match with errors.Is to translate into transport responses.
package apperr

import "errors"

var (
	// ErrNotFound signals that a referenced post or tag does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a uniqueness violation, e.g. a duplicate tag slug.
	ErrConflict = errors.New("conflict")
	// ErrValidation signals malformed input rejected by semantic validation.
	ErrValidation = errors.New("validation failed")
)
