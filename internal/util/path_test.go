// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"path/filepath"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain filename", "image.png", "image.png", false},
		{"strips directories", "foo/bar/image.png", "image.png", false},
		{"strips traversal", "../../../etc/passwd", "passwd", false},
		{"rejects dot", ".", "", true},
		{"rejects dotdot", "..", "", true},
		{"rejects empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SanitizeFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	got, err := SafeJoinPath(base, "src/content", "blog", "hello.md")
	if err != nil {
		t.Fatalf("SafeJoinPath: %v", err)
	}
	want := filepath.Join(base, "src/content", "blog", "hello.md")
	if got != want {
		t.Errorf("SafeJoinPath = %q, want %q", got, want)
	}

	if _, err := SafeJoinPath(base, "..", "escape.md"); err == nil {
		t.Error("SafeJoinPath should reject paths escaping the base directory")
	}
	if _, err := SafeJoinPath(base, "blog/../../escape.md"); err == nil {
		t.Error("SafeJoinPath should reject nested traversal")
	}
}
