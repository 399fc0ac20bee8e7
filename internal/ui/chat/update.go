// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeshav/lexquery-tui/internal/model"
	"github.com/mkeshav/lexquery-tui/internal/session"
	"github.com/mkeshav/lexquery-tui/internal/toast"
	"github.com/mkeshav/lexquery-tui/internal/ui/components"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all incoming Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SubmitResultMsg:
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case BackendStatusMsg:
		if msg.Reachable {
			m.header.SetBackend(components.BackendOnline)
		} else {
			m.header.SetBackend(components.BackendOffline)
			m.toasts.Push("Cannot reach the LexQuery backend. Answers will fail until it is back online.", toast.LevelWarning)
		}
		return m, nil

	case RefreshMsg:
		m.refreshTranscript()
		if m.controller.Busy() {
			m.viewport.GotoBottom()
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Jurisdiction != "" {
			m.header.SetJurisdiction(msg.Jurisdiction)
		}
		return m, nil

	case CopyResultMsg:
		if msg.Error != nil {
			m.toasts.Push("Could not copy to clipboard", toast.LevelError)
		} else {
			m.toasts.Push("Answer copied to clipboard", toast.LevelSuccess)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Forward everything else to the focused input and the viewport.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey dispatches keyboard shortcuts.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Cancel):
		m.controller.Cancel()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleAdvocate):
		if target := m.advocateTarget(); target != "" {
			m.conversation.ToggleDevilsAdvocate(target)
			m.refreshTranscript()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.CopyAnswer):
		if answer := m.lastAnswer(); answer != nil {
			return m, CopyAnswerCmd(answer.Content)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Clear):
		m.conversation.Clear()
		if m.welcome {
			m.conversation.SeedWelcome(WelcomeMessage)
		}
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.DismissToasts):
		m.toasts.DismissAll()
		return m, nil

	case key.Matches(msg, m.keyMap.Up),
		key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the current input to the controller. The input field
// is cleared only when the query will actually be sent, mirroring a
// form that keeps rejected text in place for editing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	if _, verr := session.ValidateQuery(value); verr == nil && !m.controller.Busy() {
		m.input.SetValue("")
	}

	return m, SubmitQueryCmd(m.controller, value)
}

// =============================================================================
// HELPERS
// =============================================================================

// resize recomputes component dimensions for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)

	headerHeight := 4
	if width < compactWidth {
		headerHeight = 1
	}
	inputHeight := 3
	statusHeight := 1

	vpHeight := height - headerHeight - inputHeight - statusHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 8
	m.ready = true
}

// refreshTranscript re-renders the conversation into the viewport.
func (m *Model) refreshTranscript() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// advocateTarget returns the ID of the newest answer that carries a
// devil's advocate counter-argument, or an empty string.
func (m Model) advocateTarget() string {
	messages := m.conversation.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Role == model.RoleAI && strings.TrimSpace(msg.DevilsAdvocate) != "" {
			return msg.ID
		}
	}
	return ""
}

// lastAnswer returns the newest AI message, or nil when none exists.
func (m Model) lastAnswer() *model.Message {
	messages := m.conversation.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == model.RoleAI {
			return messages[i]
		}
	}
	return nil
}
