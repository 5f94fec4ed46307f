// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the carecost command-line surface: argument
// parsing, the non-TUI subcommands (chat, status, history, config, logout),
// and the terminal-capability helpers they share. The default command with
// no arguments launches the full-screen TUI.
package cli
