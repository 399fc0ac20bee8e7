// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode ValidationCode
		wantErr  bool
		want     string
	}{
		{"empty", "", ValidationEmpty, true, ""},
		{"whitespace only", "   \t\n  ", ValidationEmpty, true, ""},
		{"too short", "hi", ValidationTooShort, true, ""},
		{"four characters", "abcd", ValidationTooShort, true, ""},
		{"exactly five characters", "abcde", 0, false, "abcde"},
		{"padding does not count", "  ab  ", ValidationTooShort, true, ""},
		{"trimmed before submit", "  what is bail?  ", 0, false, "what is bail?"},
		{"exactly max length", strings.Repeat("a", 500), 0, false, strings.Repeat("a", 500)},
		{"one over max", strings.Repeat("a", 501), ValidationTooLong, true, ""},
		{"padded over raw max but valid trimmed", "  " + strings.Repeat("a", 499) + "  ", 0, false, strings.Repeat("a", 499)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateQuery(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateQuery(%q) = %q, want error", tt.input, got)
				}
				if err.Code != tt.wantCode {
					t.Errorf("Code = %v, want %v", err.Code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateQuery(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateQueryCountsRunes(t *testing.T) {
	// Five characters in five different scripts, far more than five bytes.
	got, err := ValidateQuery("धारा ४२०")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "धारा ४२०" {
		t.Errorf("got %q", got)
	}

	// Four runes is still too short no matter how many bytes.
	if _, err := ValidateQuery("धारा"); err == nil || err.Code != ValidationTooShort {
		t.Errorf("four-rune input should be too short, got %v", err)
	}
}

func TestValidateQueryNormalizesInput(t *testing.T) {
	// Decomposed "áeio" is five runes raw but four after NFC, so
	// normalization must happen before the rune count.
	if _, err := ValidateQuery("áeio"); err == nil || err.Code != ValidationTooShort {
		t.Errorf("decomposed four-character input should be too short, got %v", err)
	}

	// The submitted query is the composed form with carriage returns gone.
	got, err := ValidateQuery("séance\r law")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "séance law" {
		t.Errorf("got %q, want composed form without carriage return", got)
	}
}

func TestValidationMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "Please enter a legal question"},
		{"abc", "Query must be at least 5 characters"},
		{strings.Repeat("x", 501), "Query cannot exceed 500 characters"},
	}

	for _, tt := range tests {
		_, err := ValidateQuery(tt.input)
		if err == nil {
			t.Fatalf("ValidateQuery(%q): expected error", tt.input)
		}
		if err.Message != tt.want {
			t.Errorf("Message = %q, want %q", err.Message, tt.want)
		}
		if err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
		}
	}
}
