// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "multiple spaces",
			input:    "Hello    World",
			expected: "hello-world",
		},
		{
			name:     "special characters",
			input:    "Hello@World!",
			expected: "helloworld",
		},
		{
			name:     "special characters with spaces",
			input:    "Hello @ World!",
			expected: "hello-world",
		},
		{
			name:     "dotted name",
			input:    "Node.js",
			expected: "nodejs",
		},
		{
			name:     "leading and trailing spaces",
			input:    "  Hello World  ",
			expected: "hello-world",
		},
		{
			name:     "leading hyphens",
			input:    "---Hello World",
			expected: "hello-world",
		},
		{
			name:     "trailing hyphens",
			input:    "Hello World---",
			expected: "hello-world",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "numbers",
			input:    "Post 123",
			expected: "post-123",
		},
		{
			name:     "underscores preserved",
			input:    "hello_world",
			expected: "hello_world",
		},
		{
			name:     "existing hyphens",
			input:    "hello-world",
			expected: "hello-world",
		},
		{
			name:     "consecutive hyphens collapse",
			input:    "hello--world",
			expected: "hello-world",
		},
		{
			name:     "unicode stripped",
			input:    "hello 世界",
			expected: "hello",
		},
		{
			name:     "mixed case",
			input:    "HeLLo WoRLd",
			expected: "hello-world",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "tabs and newlines",
			input:    "hello\t\nworld",
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Slugify("Some Long Title, With Punctuation!"); got != "some-long-title-with-punctuation" {
			t.Fatalf("Slugify not deterministic, got %q", got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"hello-world", true},
		{"hello_world", true},
		{"post-123", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"Upper", false},
		{"with space", false},
		{"café", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.valid {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.valid)
			}
		})
	}
}
