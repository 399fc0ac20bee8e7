// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeshav/lexquery-tui/internal/config"
	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/model"
	"github.com/mkeshav/lexquery-tui/internal/session"
	"github.com/mkeshav/lexquery-tui/internal/toast"
	"github.com/mkeshav/lexquery-tui/internal/ui/components"
	"github.com/mkeshav/lexquery-tui/internal/ui/styles"
)

// WelcomeMessage greets the user when a fresh conversation opens.
const WelcomeMessage = `Welcome! I can help you with legal research. All my answers are backed by verified sources from the Constitution of India, IPC, CrPC, and Supreme Court judgments. Try asking: "What does Article 19 guarantee?" or "Can I be arrested for speaking against the government?"`

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Domain state. The controller owns submission semantics; the
	// conversation and toast manager are read for rendering.
	controller   *session.Controller
	conversation *model.Conversation
	toasts       *toast.Manager

	// Backend client, used for the startup health check only.
	client  *legal.Client
	backend components.BackendState

	// UI components
	header   *components.Header
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Whether a welcome message should seed fresh conversations.
	welcome bool
}

// New creates the conversation view. When the config enables the
// welcome message and the conversation is empty, a pre-verified
// greeting is seeded before the first render.
func New(theme *styles.Theme, ctrl *session.Controller, toasts *toast.Manager, client *legal.Client, cfg *config.Config) Model {
	conv := ctrl.Conversation()

	if cfg.UI.ShowWelcome && conv.Len() == 0 {
		conv.SeedWelcome(WelcomeMessage)
	}

	header := components.NewHeader(theme)
	header.SetJurisdiction(cfg.Backend.Jurisdiction)

	input := textinput.New()
	input.Placeholder = "Ask a legal question..."
	input.Prompt = "> "
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	return Model{
		theme:        theme,
		controller:   ctrl,
		conversation: conv,
		toasts:       toasts,
		client:       client,
		backend:      components.BackendChecking,
		header:       header,
		viewport:     vp,
		input:        input,
		spinner:      sp,
		keyMap:       DefaultKeyMap(),
		welcome:      cfg.UI.ShowWelcome,
	}
}

// Init starts the cursor blink, the spinner, and the initial backend
// health check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		CheckBackendCmd(m.client),
	)
}

// Busy reports whether a query is currently in flight.
func (m Model) Busy() bool {
	return m.controller.Busy()
}
