// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the lexquery TUI.
package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Verify styles are initialized by rendering a test string
	renderedApp := theme.App.Render("test")
	if renderedApp == "" {
		t.Error("NewTheme() should initialize App style")
	}
}

func TestNewThemeForMode(t *testing.T) {
	dark := NewThemeForMode("dark")
	if !dark.IsDark {
		t.Error("NewThemeForMode(dark) should force IsDark = true")
	}

	light := NewThemeForMode("light")
	if light.IsDark {
		t.Error("NewThemeForMode(light) should force IsDark = false")
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme()

	// Test by rendering and checking for non-empty output. An
	// uninitialized style would just return the input unchanged.
	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"UserBubble", theme.UserBubble},
		{"AssistantBubble", theme.AssistantBubble},
		{"AdvocateBox", theme.AdvocateBox},
		{"BadgeVerified", theme.BadgeVerified},
		{"CitationRef", theme.CitationRef},
		{"InputContainer", theme.InputContainer},
		{"StatusBar", theme.StatusBar},
	}

	for _, s := range styles {
		rendered := s.style.Render("test")
		if rendered == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

// =============================================================================
// THEME SIZE TESTS
// =============================================================================

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width  int
		height int
	}{
		{80, 24},
		{120, 40},
		{40, 10},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, tc.height)
		if theme.Width != tc.width {
			t.Errorf("SetSize(%d, %d) Width = %d, want %d", tc.width, tc.height, theme.Width, tc.width)
		}
		if theme.Height != tc.height {
			t.Errorf("SetSize(%d, %d) Height = %d, want %d", tc.width, tc.height, theme.Height, tc.height)
		}
	}
}

// =============================================================================
// CITATION STATUS COLOR TESTS
// =============================================================================

func TestCitationStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   lipgloss.AdaptiveColor
	}{
		{"active", CitationActive},
		{"amended", CitationAmended},
		{"repealed", CitationRepealed},
		{"under_review", CitationReview},
		{"unknown", CitationUnknown},
		{"", CitationUnknown},
		{"garbage", CitationUnknown},
	}

	for _, tc := range tests {
		got := CitationStatusColor(tc.status)
		if got != tc.want {
			t.Errorf("CitationStatusColor(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

// =============================================================================
// ACCESSIBILITY RENDER TESTS
// =============================================================================

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	tests := []struct {
		name      string
		render    func(string) string
		indicator string
	}{
		{"RenderSuccess", RenderSuccess, StatusIndicators.Success},
		{"RenderError", RenderError, StatusIndicators.Error},
		{"RenderWarning", RenderWarning, StatusIndicators.Warning},
		{"RenderInfo", RenderInfo, StatusIndicators.Info},
	}

	for _, tc := range tests {
		got := tc.render("something happened")
		if !strings.Contains(got, tc.indicator) {
			t.Errorf("%s output %q should contain indicator %q", tc.name, got, tc.indicator)
		}
		if !strings.Contains(got, "something happened") {
			t.Errorf("%s output should contain the message", tc.name)
		}
	}
}
