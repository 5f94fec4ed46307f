// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Shared error display and exit codes for CLI commands.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/carecost-tui/internal/api"
)

// Exit codes. Scripts depend on these staying stable.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitUnreachable = 3
)

// CommandError wraps a failure in a subcommand with enough context to
// render a useful message.
type CommandError struct {
	Command string
	Action  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s: %s: %v", e.Command, e.Action, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the command and action that failed.
func NewCommandError(command, action string, err error) error {
	return &CommandError{Command: command, Action: action, Err: err}
}

// DisplayError prints an error to stderr, as JSON when jsonMode is set.
// Backend-unreachable errors get a hint about starting the backend.
func DisplayError(err error, jsonMode bool) {
	if err == nil {
		return
	}

	if jsonMode {
		out := map[string]any{"success": false, "error": err.Error()}
		if api.IsUnreachable(err) {
			out["hint"] = "backend is not running"
		}
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
	if api.IsUnreachable(err) {
		fmt.Fprintln(os.Stderr, DimStyle.Render("Hint: start the prediction backend, then try again."))
	}
}

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if api.IsUnreachable(err) || api.IsTimeout(err) {
		return ExitUnreachable
	}
	return ExitError
}

// HandleErrorAndExit displays err and exits with its code. No-op for nil.
func HandleErrorAndExit(err error, jsonMode bool) {
	if err == nil {
		return
	}
	DisplayError(err, jsonMode)
	os.Exit(GetExitCode(err))
}
