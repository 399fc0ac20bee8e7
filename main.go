// lexquery - legal research assistant for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeshav/lexquery-tui/internal/cli"
	"github.com/mkeshav/lexquery-tui/internal/config"
	"github.com/mkeshav/lexquery-tui/internal/history"
	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/model"
	"github.com/mkeshav/lexquery-tui/internal/session"
	"github.com/mkeshav/lexquery-tui/internal/toast"
	"github.com/mkeshav/lexquery-tui/internal/ui/chat"
	"github.com/mkeshav/lexquery-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with the cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdHistory:
		if err := cli.HandleHistory(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI wires the domain state together and runs the Bubble Tea
// program until the user quits.
func runTUI(args cli.Args) {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "lexquery needs an interactive terminal; try: lexquery ask \"your question\"")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if args.Jurisdiction != "" {
		cfg.Backend.Jurisdiction = args.Jurisdiction
	}

	theme := styles.NewThemeForMode(cfg.UI.Theme)

	client := legal.NewClientWithConfig(&legal.ClientConfig{
		BaseURL:       cfg.Backend.BaseURL,
		Jurisdiction:  cfg.Backend.Jurisdiction,
		HealthTimeout: time.Duration(cfg.Backend.HealthTimeoutSecs) * time.Second,
	})

	conv := model.NewConversation()
	toasts := toast.NewManager()
	if cfg.UI.ToastDurationMillis > 0 {
		toasts.SetDefaultDuration(time.Duration(cfg.UI.ToastDurationMillis) * time.Millisecond)
	}

	ctrl := session.NewController(conv, toasts, client)
	defer ctrl.Close()

	// History recording is decoupled from the submit flow; failures
	// here must never take the conversation down.
	if cfg.History.Enabled {
		if store := openHistory(cfg); store != nil {
			defer store.Close()
			ctrl.SetAnswerCallback(history.RecorderFor(store, conv.ID(), cfg.Backend.Jurisdiction))
		}
	}

	m := chat.New(theme, ctrl, toasts, client, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())

	// External state changes re-render through the update loop.
	conv.Subscribe(func() { program.Send(chat.RefreshMsg{}) })
	toasts.Subscribe(func() { program.Send(chat.RefreshMsg{}) })

	// Pick up config edits while the TUI is running. Only the backend
	// jurisdiction is applied live; other changes need a restart.
	if path, err := config.ConfigPathTOML(); err == nil {
		if watcher, err := config.NewWatcher(path, func(updated *config.Config) {
			client.SetJurisdiction(updated.Backend.Jurisdiction)
			program.Send(chat.ConfigReloadedMsg{Jurisdiction: updated.Backend.Jurisdiction})
		}); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openHistory opens the history store and applies retention. Returns
// nil when history cannot be used.
func openHistory(cfg *config.Config) *history.Store {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return nil
	}

	if cfg.History.RetentionDays > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
		_, _ = store.Prune(ctx, cutoff)
	}

	return store
}
