// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Submission: Completion of a query submission
//   - Backend: Health check results
//   - State: External transcript and toast changes
//   - Copy: Clipboard operations
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"github.com/mkeshav/lexquery-tui/internal/session"
)

// =============================================================================
// SUBMISSION MESSAGES
// =============================================================================

// SubmitResultMsg signals that a query submission has finished. The
// outcome reports whether the query was answered, failed, rejected
// by validation, dropped while busy, or canceled.
type SubmitResultMsg struct {
	Outcome session.Outcome
}

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// BackendStatusMsg reports the result of a backend health check.
type BackendStatusMsg struct {
	Reachable bool
	Error     error
}

// =============================================================================
// STATE MESSAGES
// =============================================================================

// RefreshMsg signals that the transcript or the toast stack changed
// outside the update loop and the view should re-render. It is sent
// via Program.Send from conversation and toast subscriptions.
type RefreshMsg struct{}

// ConfigReloadedMsg reports a live configuration reload. It is sent via
// Program.Send from the config watcher; only the jurisdiction is applied
// without a restart.
type ConfigReloadedMsg struct {
	Jurisdiction string
}

// =============================================================================
// COPY MESSAGES
// =============================================================================

// CopyResultMsg reports the result of a clipboard copy operation.
type CopyResultMsg struct {
	Error error
}
