// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for lexquery.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format

	// Command-specific
	Query        string
	Jurisdiction string
	Output       string // Write the answer to a file instead of stdout
	Subcommand   string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `lexquery - legal research assistant for the terminal

LexQuery answers legal questions with citations backed by verified
sources: the Constitution of India, IPC, CrPC, and Supreme Court
judgments. Every answer carries a confidence score and safety signals.

Usage:
  lexquery                    Start the TUI (default)
  lexquery ask "question"     Ask a single question and print the answer
    -j, --jurisdiction NAME   Jurisdiction to query (default: india)
    -o, --output FILE         Write the answer to a file
    --json                    Output the raw API response as JSON
  lexquery history [list]     Show recent queries
    --limit N                 Number of entries to show (default: 20)
  lexquery history search <term>  Search past queries and answers
  lexquery history clear --confirm  Delete all recorded history
  lexquery version            Show version information
  lexquery help               Show this help

Global flags:
  -q, --quiet                 Minimal output
  -v, --verbose               Verbose output

Examples:
  lexquery ask "What does Article 19 guarantee?"
  lexquery ask --json "Is sedition still a crime?"
  lexquery history search "arrest"
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// No remaining args defaults to the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "history", "hist":
		parser := NewArgParser(remaining)
		parsedArgs.Subcommand = parser.Subcommand()
		return CmdHistory, parsedArgs

	case "version", "ver", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		// Treat an unrecognized first argument as a question
		parseAskArgs(&parsedArgs, append([]string{cmd}, remaining...))
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts flags that apply to every command.
func parseGlobalFlags(args []string) ([]string, Args) {
	parsed := Args{Jurisdiction: ""}
	remaining := make([]string, 0, len(args))

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsed
}

// parseAskArgs parses arguments for the ask command. Positional
// arguments are joined into the query so quoting is optional.
func parseAskArgs(parsed *Args, args []string) {
	parser := NewArgParser(args)

	if v := parser.FlagAny("jurisdiction", "j"); v != "" {
		parsed.Jurisdiction = v
	}
	if v := parser.FlagAny("output", "o"); v != "" {
		parsed.Output = v
	}
	if parser.BoolFlag("json") {
		parsed.JSON = true
	}

	parsed.Query = strings.Join(parser.Positional(), " ")
}

// PrintUsage writes the help text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf("{\"version\":%q,\"commit\":%q,\"built\":%q}\n", Version, GitCommit, BuildDate)
		return
	}
	fmt.Printf("lexquery %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
