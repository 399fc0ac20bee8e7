// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lexquery TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkeshav/lexquery-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with lexquery branding
// =============================================================================

// BackendState represents the reachability of the legal query backend.
type BackendState int

const (
	BackendChecking BackendState = iota
	BackendOnline
	BackendOffline
)

// String returns the display string for the backend state.
func (s BackendState) String() string {
	switch s {
	case BackendOnline:
		return "ONLINE"
	case BackendOffline:
		return "OFFLINE"
	case BackendChecking:
		return "CHECKING"
	default:
		return "UNKNOWN"
	}
}

// Header represents the title bar component.
type Header struct {
	Title        string       // Main title (default: "LexQuery")
	Jurisdiction string       // Active jurisdiction
	Backend      BackendState // Backend reachability
	Width        int          // Available width
	theme        *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:        "LexQuery",
		Jurisdiction: "india",
		Backend:      BackendChecking,
		Width:        80,
		theme:        theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetJurisdiction updates the active jurisdiction.
func (h *Header) SetJurisdiction(jurisdiction string) {
	h.Jurisdiction = jurisdiction
}

// SetBackend updates the backend reachability state.
func (h *Header) SetBackend(state BackendState) {
	h.Backend = state
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	// Inner width accounts for borders and padding
	innerWidth := width - 6

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Sky)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Navy)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	subtitleParts := []string{}

	if h.Jurisdiction != "" {
		jurisdictionStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, jurisdictionStyle.Render(strings.ToUpper(h.Jurisdiction)))
	}

	backendStyle := h.getBackendStyle()
	subtitleParts = append(subtitleParts, backendStyle.Render("["+h.Backend.String()+"]"))

	subtitle := strings.Join(subtitleParts, " ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Navy).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	// Compact format: <LexQuery> | INDIA | [ONLINE]
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Sky)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Navy)

	brand := accentStyle.Render("<") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(">")

	parts := []string{brand}

	if h.Jurisdiction != "" {
		jurisdictionStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, jurisdictionStyle.Render(strings.ToUpper(h.Jurisdiction)))
	}

	backendStyle := h.getBackendStyle()
	parts = append(parts, backendStyle.Render("["+h.Backend.String()+"]"))

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}

// getBackendStyle returns the appropriate style for the backend state.
func (h *Header) getBackendStyle() lipgloss.Style {
	switch h.Backend {
	case BackendOnline:
		return lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)
	case BackendOffline:
		return lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)
	default:
		return lipgloss.NewStyle().
			Foreground(styles.TextMuted)
	}
}
