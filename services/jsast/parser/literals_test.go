// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"math"
	"testing"
)

func TestCookString(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		template bool
		want     string
	}{
		{"plain", "abc", false, "abc"},
		{"simple escapes", `a\nb\tc\\d\'e`, false, "a\nb\tc\\d'e"},
		{"hex", `\x41`, false, "A"},
		{"unicode", `\u0042`, false, "B"},
		{"code point", `\u{1F600}`, false, "\U0001F600"},
		{"surrogate pair", `\uD83D\uDE00`, false, "\U0001F600"},
		{"lone surrogate", `\uD83D`, false, "\xed\xa0\xbd"},
		{"lone low surrogate", `\uDE00x`, false, "\xed\xb8\x80x"},
		{"high surrogate before a letter", `\uD83Da`, false, "\xed\xa0\xbda"},
		{"reversed pair", `\uDE00\uD83D`, false, "\xed\xb8\x80\xed\xa0\xbd"},
		{"legacy octal", `\101\0`, false, "A\x00"},
		{"identity escape", `\q`, false, "q"},
		{"line continuation", "a\\\nb", false, "ab"},
		{"crlf continuation", "a\\\r\nb", false, "ab"},
		{"template crlf", "a\r\nb\rc", true, "a\nb\nc"},
		{"template null", `\0`, true, "\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cookString(tt.body, tt.template); got != tt.want {
				t.Errorf("cookString(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestCookIdentifier(t *testing.T) {
	if got := cookIdentifier(`abc`); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	if got := cookIdentifier(`x\u{62}`); got != "xb" {
		t.Errorf("expected xb, got %q", got)
	}
	if got := cookIdentifier("plain"); got != "plain" {
		t.Errorf("expected plain, got %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"1.5", 1.5},
		{"1e3", 1000},
		{"0xFF", 255},
		{"0b11", 3},
		{"0O7", 7},
		{"010", 8},
		{"089", 89},
		{"1_000_000", 1000000},
		{"0x1_0", 16},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseNumber(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseNumber(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseNumber_Overflow(t *testing.T) {
	got, err := parseNumber("1e400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("expected +Inf, got %v", got)
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	if _, err := parseNumber("0xZZ"); err == nil {
		t.Error("expected error for invalid hex digits")
	}
}

func TestLineIndex_Locate(t *testing.T) {
	src := []byte("ab\ncd\r\nef\rg\u2028h")
	x := newLineIndex(src)

	tests := []struct {
		off          int
		line, column int
	}{
		{0, 1, 0},
		{2, 1, 2},
		{3, 2, 0},
		{7, 3, 0},
		{10, 4, 0},
		{14, 5, 0},
	}
	for _, tt := range tests {
		line, col, _ := x.locate(tt.off)
		if line != tt.line || col != tt.column {
			t.Errorf("locate(%d) = %d:%d, want %d:%d", tt.off, line, col, tt.line, tt.column)
		}
	}

	_, _, end := x.locate(len(src))
	if end != 13 {
		t.Errorf("expected UTF-16 length 13, got %d", end)
	}
}
