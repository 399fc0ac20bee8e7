// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package triage

import (
	"errors"
	"testing"

	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/toast"
)

func respWithConfidence(c float64) *legal.QueryResponse {
	return &legal.QueryResponse{Answer: "answer", Confidence: &c}
}

func TestForResponseConfidenceBands(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		wantNotice bool
		wantLevel  toast.Level
		wantMsg    string
	}{
		{"high band", 0.85, true, toast.LevelSuccess, "High confidence answer generated"},
		{"exactly at high threshold", 0.8, true, toast.LevelSuccess, "High confidence answer generated"},
		{"middle band stays silent", 0.65, false, "", ""},
		{"just below high threshold", 0.79, false, "", ""},
		{"exactly at low threshold stays silent", 0.5, false, "", ""},
		{"low band", 0.3, true, toast.LevelWarning, "Low confidence answer - please consult a lawyer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notice, ok := ForResponse(respWithConfidence(tt.confidence))
			if ok != tt.wantNotice {
				t.Fatalf("ok = %v, want %v", ok, tt.wantNotice)
			}
			if !ok {
				return
			}
			if notice.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", notice.Level, tt.wantLevel)
			}
			if notice.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", notice.Message, tt.wantMsg)
			}
		})
	}
}

func TestForResponseMissingConfidence(t *testing.T) {
	if _, ok := ForResponse(&legal.QueryResponse{Answer: "answer"}); ok {
		t.Error("missing confidence should produce no notice")
	}
	if _, ok := ForResponse(nil); ok {
		t.Error("nil response should produce no notice")
	}
}

func TestForError(t *testing.T) {
	backendErr := &legal.ClientError{Type: legal.ErrTypeBackend, Message: "query too vague"}
	notice := ForError(backendErr)
	if notice.Level != toast.LevelError {
		t.Errorf("Level = %q, want error", notice.Level)
	}
	if notice.Message != "query too vague" {
		t.Errorf("Message = %q, want backend detail", notice.Message)
	}

	notice = ForError(legal.ErrUnreachable)
	if notice.Message != "legal backend is not reachable" {
		t.Errorf("Message = %q, want transport message", notice.Message)
	}

	notice = ForError(errors.New("boom"))
	if notice.Message != "Failed to process your query. Please try again." {
		t.Errorf("Message = %q, want generic fallback", notice.Message)
	}
}

func TestForValidation(t *testing.T) {
	notice := ForValidation("Query must be at least 5 characters")
	if notice.Level != toast.LevelWarning {
		t.Errorf("Level = %q, want warning", notice.Level)
	}
	if notice.Message != "Query must be at least 5 characters" {
		t.Errorf("Message = %q", notice.Message)
	}
}
