// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
//
// This file implements the Bubble Tea command creators. Commands run in
// their own goroutines and report back through the message types in
// messages.go.
package chat

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/session"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SubmitQueryCmd creates a command that submits a query through the
// session controller. The controller owns validation, the transcript
// append order, and toast emission; the returned message only carries
// the outcome so the view can reset its input state.
func SubmitQueryCmd(ctrl *session.Controller, input string) tea.Cmd {
	return func() tea.Msg {
		outcome := ctrl.Submit(input)
		return SubmitResultMsg{Outcome: outcome}
	}
}

// CheckBackendCmd creates a command that checks backend reachability.
func CheckBackendCmd(client *legal.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return BackendStatusMsg{Reachable: false, Error: legal.ErrUnreachable}
		}

		err := client.CheckHealth(context.Background())
		return BackendStatusMsg{
			Reachable: err == nil,
			Error:     err,
		}
	}
}

// CopyAnswerCmd creates a command that copies the given text to the
// system clipboard.
func CopyAnswerCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{Error: clipboard.WriteAll(text)}
	}
}
