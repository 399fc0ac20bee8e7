// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"max at ellipsis boundary", "hello", 3, "hel"},
		{"devanagari preserved", "धारा ४२० भारतीय दंड संहिता", 10, "धारा ४२..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("TruncateWidth short = %q", got)
	}
	got := TruncateWidth("hello world again", 10)
	if StringWidth(got) > 10 {
		t.Errorf("TruncateWidth result %q exceeds width 10", got)
	}
	if got := TruncateWidth("anything", 0); got != "" {
		t.Errorf("TruncateWidth zero = %q", got)
	}
}

func TestStringWidthCJK(t *testing.T) {
	if w := StringWidth("abc"); w != 3 {
		t.Errorf("StringWidth(abc) = %d, want 3", w)
	}
	// CJK characters occupy two columns each.
	if w := StringWidth("日本"); w != 4 {
		t.Errorf("StringWidth(日本) = %d, want 4", w)
	}
}

func TestRuneLen(t *testing.T) {
	if n := RuneLen("धारा"); n != 4 {
		t.Errorf("RuneLen = %d, want 4", n)
	}
	if n := RuneLen(""); n != 0 {
		t.Errorf("RuneLen empty = %d", n)
	}
}

func TestNormalizeInput(t *testing.T) {
	// e + combining acute composes to a single code point.
	decomposed := "café"
	if got := NormalizeInput(decomposed); RuneLen(got) != 4 {
		t.Errorf("NormalizeInput(%q) = %q, want 4 composed runes", decomposed, got)
	}

	if got := NormalizeInput("line one\r\nline two"); got != "line one\nline two" {
		t.Errorf("carriage returns should be dropped, got %q", got)
	}
}

func TestPercentString(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.85, "85%"},
		{0.847, "85%"},
		{0.844, "84%"},
		{1.0, "100%"},
		{0.0, "0%"},
	}
	for _, tt := range tests {
		if got := PercentString(tt.score); got != tt.want {
			t.Errorf("PercentString(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestIntConversions(t *testing.T) {
	if got := IntToString(42); got != "42" {
		t.Errorf("IntToString = %q", got)
	}
	if got := Int64ToString(-7); got != "-7" {
		t.Errorf("Int64ToString = %q", got)
	}
	if got := FloatToString(3.14159); got != "3.14" {
		t.Errorf("FloatToString = %q", got)
	}
	if got := FloatToStringPrec(3.14159, 4); got != "3.1416" {
		t.Errorf("FloatToStringPrec = %q", got)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Errorf("content = %q", data)
	}

	// Overwrites atomically.
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() overwrite error: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content after overwrite = %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}
