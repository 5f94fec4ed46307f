// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for carecost.

package cli

import (
	"fmt"
	"os"
	"runtime"
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
	CmdChat
	CmdStatus
	CmdHistory
	CmdConfig
	CmdLogout
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	JSON    bool
	Backend string // --backend overrides the configured base URL

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after the command name
	Raw []string
}

const usageText = `carecost - health insurance cost estimates in your terminal

Carecost talks to the local prediction backend to estimate annual medical
costs from a health profile, explain what drives them, and chat about
insurance.

Usage:
  carecost                    Start the TUI (default)
  carecost chat               Interactive chat in plain terminal mode
  carecost status, s          Backend status and dataset statistics
  carecost history [clear]    Recent local predictions
  carecost config [show|get|set|path]  Configuration
  carecost logout             Forget the stored user session
  carecost version, -v        Version information
  carecost help, -h           This help

Global flags:
  --json                      Machine-readable output where supported
  --quiet, -q                 Suppress non-essential output
  --backend URL               Override the backend base URL

Examples:
  carecost
  carecost status --json
  carecost history
  carecost config set backend.base_url http://localhost:5000
  carecost chat
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("carecost %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	raw := os.Args[1:]
	remaining, args := parseGlobalFlags(raw)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	args.Raw = rest

	switch cmd {
	case "chat":
		return CmdChat, args

	case "status", "s":
		return CmdStatus, args

	case "history":
		parser := NewArgParser(rest)
		args.Subcommand = parser.Subcommand()
		return CmdHistory, args

	case "config":
		parseConfigArgs(&args, rest)
		return CmdConfig, args

	case "logout":
		return CmdLogout, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		PrintUsage()
		os.Exit(ExitUsage)
		return CmdHelp, args
	}
}

// parseGlobalFlags extracts global flags and returns the remaining args.
func parseGlobalFlags(raw []string) ([]string, Args) {
	var args Args
	remaining := make([]string, 0, len(raw))

	i := 0
	for i < len(raw) {
		switch raw[i] {
		case "--json":
			args.JSON = true
			i++
		case "--quiet", "-q":
			args.Quiet = true
			i++
		case "--backend":
			if i+1 < len(raw) {
				args.Backend = raw[i+1]
				i += 2
			} else {
				i++
			}
		default:
			if strings.HasPrefix(raw[i], "--backend=") {
				args.Backend = strings.TrimPrefix(raw[i], "--backend=")
				i++
				continue
			}
			remaining = append(remaining, raw[i])
			i++
		}
	}

	return remaining, args
}

// parseConfigArgs handles "config [show|get|set|path] [key] [value]".
func parseConfigArgs(args *Args, rest []string) {
	parser := NewArgParser(rest)
	args.Subcommand = parser.Subcommand()

	switch args.Subcommand {
	case "get":
		args.ConfigKey = parser.Positional(1)
	case "set":
		args.ConfigKey = parser.Positional(1)
		args.ConfigVal = strings.Join(parser.PositionalFrom(2), " ")
	}
}
