// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and filesystem path validation.
package util

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRuns matches one or more consecutive whitespace characters
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// slugRegex matches characters outside the slug alphabet
	slugRegex = regexp.MustCompile(`[^a-z0-9_-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a URL-friendly slug. It lowercases the
// input, collapses whitespace runs to single hyphens, strips everything
// outside [a-z0-9_-], collapses consecutive hyphens, and trims hyphens
// from both ends. Empty input yields an empty string; callers treat an
// empty slug as a validation error.
func Slugify(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))

	// Whitespace runs become single hyphens
	result = whitespaceRuns.ReplaceAllString(result, "-")

	// Strip everything outside the slug alphabet
	result = slugRegex.ReplaceAllString(result, "")

	// Collapse multiple hyphens and trim
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	if strings.Contains(s, "--") {
		return false
	}

	return true
}
