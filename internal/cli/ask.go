// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the lexquery CLI.
//
// Handles the "lexquery ask" command which sends one question to the
// backend and prints the answer with its citations and trust signals.
//
// Examples:
//
//	lexquery ask "What does Article 19 guarantee?"
//	lexquery ask --json "Is sedition still a crime?"
//	lexquery ask -o answer.md "Can police search without a warrant?"
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mkeshav/lexquery-tui/internal/config"
	"github.com/mkeshav/lexquery-tui/internal/history"
	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/model"
	"github.com/mkeshav/lexquery-tui/internal/session"
	"github.com/mkeshav/lexquery-tui/internal/ui/styles"
	"github.com/mkeshav/lexquery-tui/internal/util"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer prints an answer with markdown rendering when stdout
// is a TTY, and as plain text otherwise so piped output stays clean.
func displayAnswer(answer string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Println(answer)
	}
}

// =============================================================================
// STYLES
// =============================================================================

var (
	citationHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.TextSecondary)

	citationStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	citationMetaStyle = lipgloss.NewStyle().
				Foreground(styles.TextMuted)

	confidenceStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	advocateStyle = lipgloss.NewStyle().
			Foreground(styles.AdvocateFg)
)

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk runs a single query against the backend and prints the
// result.
func HandleAsk(args Args) {
	query, verr := session.ValidateQuery(args.Query)
	if verr != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(verr.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Failed to load configuration: "+err.Error()))
		os.Exit(1)
	}
	if args.Jurisdiction != "" {
		cfg.Backend.Jurisdiction = args.Jurisdiction
	}

	client := legal.NewClientWithConfig(&legal.ClientConfig{
		BaseURL:      cfg.Backend.BaseURL,
		Jurisdiction: cfg.Backend.Jurisdiction,
	})

	// The query is bounded only by the user's patience; Ctrl+C aborts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !args.Quiet && IsStdoutTTY() {
		fmt.Println(styles.RenderInfo("Researching your question..."))
	}

	resp, err := client.Query(ctx, query)
	if err != nil {
		if legal.IsCanceled(err) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, styles.RenderError(legal.ErrorMessage(err)))
		os.Exit(1)
	}

	recordHistory(cfg, query, resp)

	if args.JSON {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError("Failed to encode response: "+err.Error()))
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	printAnswer(args, resp)
}

// printAnswer renders the answer, trust signals, and citations.
func printAnswer(args Args, resp *legal.QueryResponse) {
	ans := resp.ToAnswer()

	displayAnswer(ans.Content)

	if args.Output != "" {
		if err := util.AtomicWriteFile(args.Output, []byte(ans.Content+"\n"), 0644); err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError("Failed to write "+args.Output+": "+err.Error()))
		} else if !args.Quiet {
			fmt.Println(styles.RenderSuccess("Answer written to " + args.Output))
		}
	}

	if args.Quiet {
		return
	}

	// Trust signals
	fmt.Println()
	if ans.SafetyCheckPassed != nil && !*ans.SafetyCheckPassed {
		fmt.Println(styles.RenderError("Safety Check Failed"))
	} else if model.IsVerified(ans.SafetyCheckPassed, ans.Confidence) {
		fmt.Println(styles.RenderSuccess("Verified"))
	}
	if ans.RequiresLawyer {
		fmt.Println(styles.RenderWarning("Consult a Lawyer - this topic needs professional advice"))
	}
	if ans.Confidence != nil {
		fmt.Println(confidenceStyle.Render("Confidence: " + util.PercentString(*ans.Confidence)))
	}

	// Citations
	if len(ans.Citations) > 0 {
		fmt.Println()
		fmt.Println(citationHeaderStyle.Render("Sources:"))
		for _, c := range ans.Citations {
			line := "  - " + citationStyle.Render(c.Text)
			if c.Source != "" {
				line += " " + citationMetaStyle.Render("("+c.Source+")")
			}
			fmt.Println(line)
		}
	}

	// The counter-argument is opt-in on the CLI as it is in the TUI
	if args.Verbose && strings.TrimSpace(ans.DevilsAdvocate) != "" {
		fmt.Println()
		fmt.Println(citationHeaderStyle.Render("Devil's Advocate:"))
		fmt.Println(advocateStyle.Render(ans.DevilsAdvocate))
	}
}

// recordHistory persists the query when history is enabled. Failures
// are reported only in verbose mode; history never blocks the answer.
func recordHistory(cfg *config.Config, query string, resp *legal.QueryResponse) {
	if !cfg.History.Enabled {
		return
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return
	}

	store, err := history.Open(path)
	if err != nil {
		return
	}
	defer store.Close()

	record := history.RecorderFor(store, uuid.New().String(), cfg.Backend.Jurisdiction)
	record(query, resp)

	// Apply retention while we are here
	if cfg.History.RetentionDays > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
		_, _ = store.Prune(ctx, cutoff)
	}
}
