// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Query history command handler for the lexquery CLI.
//
// Subcommands:
//
//	lexquery history [list] [--limit N]   Show recent queries
//	lexquery history search <term>        Search queries and answers
//	lexquery history clear --confirm      Delete all recorded history
//	lexquery history stats                Show entry count and location
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkeshav/lexquery-tui/internal/config"
	"github.com/mkeshav/lexquery-tui/internal/history"
	"github.com/mkeshav/lexquery-tui/internal/ui/styles"
	"github.com/mkeshav/lexquery-tui/internal/util"
)

const historyTimeout = 10 * time.Second

var (
	historyQueryStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.TextPrimary)

	historyMetaStyle = lipgloss.NewStyle().
				Foreground(styles.TextMuted)

	historyAnswerStyle = lipgloss.NewStyle().
				Foreground(styles.TextSecondary)
)

// HandleHistory dispatches the history subcommands.
func HandleHistory(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("resolve history path: %w", err)
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer store.Close()

	parser := NewArgParser(args.Raw)
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()

	switch parser.Subcommand() {
	case "", "list":
		entries, err := store.Recent(ctx, parser.IntFlag("limit", 20))
		if err != nil {
			return err
		}
		printEntries(args, entries)
		return nil

	case "search":
		term := strings.Join(parser.Rest(), " ")
		if term == "" {
			return fmt.Errorf("search needs a term: lexquery history search <term>")
		}
		entries, err := store.Search(ctx, term, parser.IntFlag("limit", 20))
		if err != nil {
			return err
		}
		printEntries(args, entries)
		return nil

	case "clear":
		if !parser.BoolFlag("confirm") {
			return fmt.Errorf("clearing history is permanent; re-run with --confirm")
		}
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println(styles.RenderSuccess("History cleared"))
		return nil

	case "stats":
		count, err := store.Count(ctx)
		if err != nil {
			return err
		}
		if args.JSON {
			fmt.Printf("{\"entries\":%d,\"path\":%q}\n", count, path)
			return nil
		}
		fmt.Printf("%s entries recorded in %s\n", util.IntToString(count), path)
		return nil

	default:
		return fmt.Errorf("unknown history subcommand %q", parser.Subcommand())
	}
}

// printEntries renders history entries, newest first.
func printEntries(args Args, entries []history.Entry) {
	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(entries)
		return
	}

	if len(entries) == 0 {
		fmt.Println(historyMetaStyle.Render("No history yet."))
		return
	}

	for _, e := range entries {
		meta := []string{e.CreatedAt.Format("2006-01-02 15:04")}
		if e.Verified {
			meta = append(meta, "verified")
		}
		if e.Confidence != nil {
			meta = append(meta, util.PercentString(*e.Confidence))
		}
		if e.CitationCount > 0 {
			meta = append(meta, util.IntToString(e.CitationCount)+" sources")
		}

		fmt.Println(historyQueryStyle.Render(e.Query))
		fmt.Println("  " + historyMetaStyle.Render(strings.Join(meta, " | ")))
		fmt.Println("  " + historyAnswerStyle.Render(util.TruncateRunes(e.Answer, 120)))
		fmt.Println()
	}
}
