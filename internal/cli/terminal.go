// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection and handling for the carecost CLI.
//
// Covers TTY detection for stdin/stdout, terminal width for wrapping, and
// color output control. Colors are disabled for piped output and when
// NO_COLOR is set; FORCE_COLOR overrides detection.

package cli

import (
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTTY returns true if stderr is a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width used for wrapping
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width, falling back to
// DefaultTerminalWidth when it cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR CONTROL
// =============================================================================

var (
	colorProfileOnce sync.Once
	colorProfile     termenv.Profile
)

// GetColorProfile returns the color profile to use for output.
// Resolution order: NO_COLOR disables, FORCE_COLOR enables, otherwise
// non-TTY stdout disables and the terminal's own capabilities decide.
func GetColorProfile() termenv.Profile {
	colorProfileOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			colorProfile = termenv.Ascii
			return
		}

		if force := os.Getenv("FORCE_COLOR"); force != "" && force != "0" {
			colorProfile = termenv.ANSI256
			return
		}

		if !IsStdoutTTY() {
			colorProfile = termenv.Ascii
			return
		}

		colorProfile = termenv.ColorProfile()
	})
	return colorProfile
}

// ColorsEnabled reports whether colored output is active.
func ColorsEnabled() bool {
	return GetColorProfile() != termenv.Ascii
}

// SupportsUnicode makes a best-effort guess at unicode support from the
// locale environment. ASCII fallbacks are used when it returns false.
func SupportsUnicode() bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return strings.Contains(strings.ToUpper(v), "UTF-8") ||
				strings.Contains(strings.ToUpper(v), "UTF8")
		}
	}
	return false
}
