// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the carecost TUI.

This package defines the complete color palette, component styles, and
spinner animations used throughout the application. All colors use Lip Gloss
AdaptiveColor for automatic light/dark terminal detection.

# Color System (colors.go)

  - Teal - Primary accent for the headline estimate and selections
  - Cyan - Info, commands, and user highlights
  - Emerald - Success states, savings, and positive cost factors
  - Amber - Warnings and medium-impact cost factors
  - Rose - Errors and the highest-impact cost factors

ImpactColor maps the backend's normalized impact categories ("very-high",
"high", "medium", "low", "positive") to display colors; unknown categories
fall back to secondary text.

# Theme (theme.go)

Theme bundles every component style (header tabs, message bubbles, form
fields, prediction result tables, chart labels, status bar) and detects the
terminal's color profile via termenv at construction.

# Animations (animations.go)

ASCII-safe spinner frame sets and a progress bar renderer used by the chart
panel and loading indicators.
*/
package styles
