// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkeshav/lexquery-tui/internal/cite"
	"github.com/mkeshav/lexquery-tui/internal/model"
	"github.com/mkeshav/lexquery-tui/internal/session"
	"github.com/mkeshav/lexquery-tui/internal/ui/components"
	"github.com/mkeshav/lexquery-tui/internal/ui/styles"
	"github.com/mkeshav/lexquery-tui/internal/util"
)

// compactWidth is the terminal width below which the compact header
// and tighter layout are used.
const compactWidth = 60

// thinkingText is shown next to the spinner while a query is in flight.
const thinkingText = "Analyzing your legal question..."

// =============================================================================
// VIEW
// =============================================================================

// View renders the complete conversation screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var header string
	if m.width < compactWidth {
		header = m.header.ViewCompact()
	} else {
		header = m.header.View()
	}

	sections := []string{
		header,
		m.viewport.View(),
	}

	if m.controller.Busy() {
		thinking := m.spinner.View() + " " + m.theme.ThinkingText.Render(thinkingText)
		sections = append(sections, thinking)
	}

	sections = append(sections, m.renderInput(), m.renderStatusBar())

	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Non-blocking notices overlay the bottom-right corner.
	if active := m.toasts.Active(); len(active) > 0 {
		overlay := components.RenderToastStack(active, m.width, 0)
		return m.overlayToasts(baseView, overlay)
	}

	return baseView
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// renderTranscript renders every message in the conversation.
func (m Model) renderTranscript() string {
	messages := m.conversation.Messages()
	if len(messages) == 0 {
		return m.theme.ThinkingText.Render("Ask a legal question to get started.")
	}

	rendered := make([]string, 0, len(messages))
	for _, msg := range messages {
		rendered = append(rendered, m.renderMessage(msg))
	}

	return strings.Join(rendered, "\n\n")
}

// renderMessage renders a single transcript entry with its trust
// badges, citations, and devil's advocate panel.
func (m Model) renderMessage(msg *model.Message) string {
	contentWidth := m.contentWidth()

	label := m.theme.RoleLabel.Render(msg.Role.DisplayName()) +
		" " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	if msg.Role == model.RoleUser {
		bubble := m.theme.UserBubble.Width(contentWidth).Render(msg.Content)
		return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
	}

	body := m.renderContent(msg)
	bubble := m.theme.AssistantBubble.Width(contentWidth).Render(body)

	parts := []string{label, bubble}

	if badges := m.renderBadges(msg); badges != "" {
		parts = append(parts, badges)
	}
	if citations := m.renderCitations(msg); citations != "" {
		parts = append(parts, citations)
	}
	if advocate := m.renderAdvocate(msg); advocate != "" {
		parts = append(parts, advocate)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderContent resolves citation markers in the answer body and
// styles each resolved reference inline.
func (m Model) renderContent(msg *model.Message) string {
	segments := cite.ResolveMessage(msg)
	if len(segments) == 0 {
		return msg.Content
	}

	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case cite.SegmentCitation:
			b.WriteString(m.theme.CitationRef.Render(seg.Citation.Text))
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// renderBadges renders the trust badge row for an answer.
func (m Model) renderBadges(msg *model.Message) string {
	var badges []string

	if msg.Verified {
		badges = append(badges, m.theme.BadgeVerified.Render(
			styles.StatusIndicators.Success+" Verified"))
	}
	if msg.SafetyFailed() {
		badges = append(badges, m.theme.BadgeSafetyFail.Render(
			styles.StatusIndicators.Error+" Safety Check Failed"))
	}
	if msg.RequiresLawyer {
		badges = append(badges, m.theme.BadgeLawyer.Render(
			styles.StatusIndicators.Warning+" Consult a Lawyer"))
	}
	if msg.HasConfidence() {
		badges = append(badges, m.theme.BadgeConfidence.Render(
			"Confidence: "+util.PercentString(msg.ConfidenceValue())))
	}

	if len(badges) == 0 {
		return ""
	}
	return "  " + strings.Join(badges, "  ")
}

// renderCitations renders the source list attached to an answer.
func (m Model) renderCitations(msg *model.Message) string {
	if len(msg.Citations) == 0 {
		return ""
	}

	lines := []string{m.theme.CitationHeader.Render("  Sources:")}
	for _, c := range msg.Citations {
		item := "  - " + m.theme.CitationItem.Render(c.Text)

		meta := []string{}
		if c.Source != "" {
			meta = append(meta, c.Source)
		}
		if c.Section != "" {
			meta = append(meta, c.Section)
		}
		if len(meta) > 0 {
			item += " " + m.theme.CitationMeta.Render("("+strings.Join(meta, ", ")+")")
		}

		status := c.EffectiveStatus()
		statusStyle := lipgloss.NewStyle().
			Foreground(styles.CitationStatusColor(string(status))).
			Bold(true)
		item += " " + statusStyle.Render("["+string(status)+"]")
		item += " " + m.theme.CitationMeta.Render(util.PercentString(c.EffectiveConfidence()))

		lines = append(lines, item)
		for _, amendment := range c.Amendments {
			lines = append(lines, "    "+m.theme.CitationMeta.Render("amended: "+amendment))
		}
	}

	return strings.Join(lines, "\n")
}

// renderAdvocate renders the devil's advocate panel or its toggle hint.
func (m Model) renderAdvocate(msg *model.Message) string {
	if strings.TrimSpace(msg.DevilsAdvocate) == "" {
		return ""
	}

	if !msg.ShowDevilsAdvocate {
		return "  " + m.theme.ShortcutKey.Render("[C-d]") +
			m.theme.ShortcutDesc.Render(" Show Devil's Advocate")
	}

	contentWidth := m.contentWidth()
	title := "Devil's Advocate"
	body := title + "\n" + msg.DevilsAdvocate
	panel := m.theme.AdvocateBox.Width(contentWidth).Render(body)
	hint := "  " + m.theme.ShortcutKey.Render("[C-d]") +
		m.theme.ShortcutDesc.Render(" Hide Devil's Advocate")

	return lipgloss.JoinVertical(lipgloss.Left, panel, hint)
}

// =============================================================================
// INPUT AND STATUS AREAS
// =============================================================================

// warningMargin is how close to the limit the character counter turns
// amber.
const warningMargin = 50

// renderInput renders the bordered input box with its character counter.
func (m Model) renderInput() string {
	counter := m.charCountView()

	innerWidth := m.width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}

	field := m.input.View()
	fieldWidth := innerWidth - lipgloss.Width(counter) - 1
	if fieldWidth < 10 {
		fieldWidth = 10
	}

	line := lipgloss.NewStyle().Width(fieldWidth).MaxHeight(1).Render(field) + " " + counter

	return m.theme.InputContainer.Width(m.width - 2).Render(line)
}

// charCountView renders "n/500" with escalating emphasis near the limit.
func (m Model) charCountView() string {
	count := util.RuneLen(m.input.Value())
	text := util.IntToString(count) + "/" + util.IntToString(session.MaxQueryLen)

	switch {
	case count > session.MaxQueryLen:
		return m.theme.CharCountDanger.Render(text)
	case count > session.MaxQueryLen-warningMargin:
		return m.theme.CharCountWarning.Render(text)
	default:
		return m.theme.CharCount.Render(text)
	}
}

// renderStatusBar renders the shortcut hints along the bottom row.
func (m Model) renderStatusBar() string {
	var parts []string
	for _, binding := range m.keyMap.ShortHelp() {
		help := binding.Help()
		parts = append(parts,
			m.theme.ShortcutKey.Render(help.Key)+" "+m.theme.ShortcutDesc.Render(help.Desc))
	}

	bar := strings.Join(parts, "  |  ")
	return m.theme.StatusBar.Width(m.width).Render(bar)
}

// contentWidth returns the width available for message bubbles.
func (m Model) contentWidth() int {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// TOAST OVERLAY
// =============================================================================

// overlayToasts layers the toast stack over the bottom-right corner of
// the base view without blocking interaction.
func (m Model) overlayToasts(baseView, toastView string) string {
	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(toastView, "\n")

	// Leave space for the status bar under the stack.
	startRow := len(baseLines) - len(toastLines) - 2
	if startRow < 0 {
		startRow = 0
	}

	result := make([]string, len(baseLines))
	for i, baseLine := range baseLines {
		toastIdx := i - startRow
		if toastIdx < 0 || toastIdx >= len(toastLines) || lipgloss.Width(toastLines[toastIdx]) == 0 {
			result[i] = baseLine
			continue
		}

		toastLine := toastLines[toastIdx]
		avail := m.width - lipgloss.Width(toastLine) - 1

		switch {
		case lipgloss.Width(baseLine) > avail:
			baseLine = truncateToWidth(baseLine, avail)
		case lipgloss.Width(baseLine) < avail:
			baseLine += strings.Repeat(" ", avail-lipgloss.Width(baseLine))
		}

		result[i] = baseLine + toastLine
	}

	return strings.Join(result, "\n")
}

// truncateToWidth truncates a string to fit within a given visible width.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}

	currentWidth := 0
	var result strings.Builder

	for _, r := range s {
		runeWidth := lipgloss.Width(string(r))
		if currentWidth+runeWidth > width {
			break
		}
		result.WriteRune(r)
		currentWidth += runeWidth
	}

	return result.String()
}
