// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package naming

import (
	"errors"
	"testing"
)

func TestASTName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc/def.js", "def.json"},
		{"def.js", "def.json"},
		{"/tmp/src/foo.js", "foo.json"},
		{"a.min.js", "a.min.json"},
		{"noext", "noext.json"},
		{".eslintrc", ".eslintrc.json"},
		{"dir.v2/file", "file.json"},
		{"trailing.", "trailing.json"},
	}

	for _, tt := range tests {
		got, err := ASTName(tt.in)
		if err != nil {
			t.Fatalf("ASTName(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ASTName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Only the last dot is replaced, so a backup-style suffix keeps the real
// extension in the stem. Changing this breaks existing output layouts.
func TestASTName_MultiDotQuirk(t *testing.T) {
	got, err := ASTName("a.js.bak")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a.js.json" {
		t.Errorf("ASTName(%q) = %q, want %q", "a.js.bak", got, "a.js.json")
	}
}

func TestASTPath(t *testing.T) {
	got, err := ASTPath("/tmp/src/foo.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/src/foo.json" {
		t.Errorf("ASTPath = %q, want %q", got, "/tmp/src/foo.json")
	}

	got, err = ASTPathIn("/tmp/ast", "foo.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/ast/foo.json" {
		t.Errorf("ASTPathIn = %q, want %q", got, "/tmp/ast/foo.json")
	}
}

func TestJSName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/ast/abcdef123.js.json", "abcdef123.js"},
		{"abcdef123.js.json", "abcdef123.js"},
		{"foo.json", "foo.js"},
		{"plain", "plain.js"},
	}

	for _, tt := range tests {
		got, err := JSName(tt.in)
		if err != nil {
			t.Fatalf("JSName(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("JSName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJSPath(t *testing.T) {
	got, err := JSPath("/tmp/out", "/tmp/ast/abcdef123.js.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/out/abcdef123.js" {
		t.Errorf("JSPath = %q, want %q", got, "/tmp/out/abcdef123.js")
	}
}

func TestNaming_RoundTripsHashName(t *testing.T) {
	tree, err := ASTName("abcdef123.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "abcdef123.js" -> "abcdef123.json" -> "abcdef123.js"
	src, err := JSName(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != "abcdef123.js" {
		t.Errorf("round trip = %q, want %q", src, "abcdef123.js")
	}
}

func TestNaming_InvalidPaths(t *testing.T) {
	for _, p := range []string{"", "   ", "dir/", "/", ".", ".."} {
		if _, err := ASTName(p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ASTName(%q): expected ErrInvalidPath, got %v", p, err)
		}
		if _, err := JSName(p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("JSName(%q): expected ErrInvalidPath, got %v", p, err)
		}
	}
}
