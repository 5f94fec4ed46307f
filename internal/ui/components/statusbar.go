// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusCalculating
	StatusThinking
	StatusLoading
	StatusError
	StatusIdle
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusCalculating:
		return "Calculating..."
	case StatusThinking:
		return "Thinking..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusCalculating, StatusThinking, StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar: backend reachability, signed-in
// user, session clock, saved-history count, and the current status.
type StatusBar struct {
	BackendUp     bool   // Last known backend reachability
	BackendURL    string // Backend base URL for the wide layout
	UserName      string // Session display name ("Guest" when anonymous)
	Clock         string // Formatted session duration (e.g. "4m 12s")
	HistoryCount  int    // Predictions saved locally
	ActivePanel   string // Current panel name (predict/chat/charts)
	Status        Status // Current status
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		BackendUp:     false,
		UserName:      "Guest",
		ActivePanel:   "predict",
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetBackend updates the backend reachability display.
func (s *StatusBar) SetBackend(url string, up bool) {
	s.BackendURL = url
	s.BackendUp = up
}

// SetUser updates the signed-in user display name.
func (s *StatusBar) SetUser(name string) {
	if name == "" {
		name = "Guest"
	}
	s.UserName = name
}

// SetClock updates the formatted session duration.
func (s *StatusBar) SetClock(clock string) {
	s.Clock = clock
}

// SetHistoryCount updates the saved-prediction counter.
func (s *StatusBar) SetHistoryCount(n int) {
	s.HistoryCount = n
}

// SetPanel updates the active panel name.
func (s *StatusBar) SetPanel(panel string) {
	s.ActivePanel = panel
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar.
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [P|OK] user StatusIcon
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	// Panel indicator (first letter only)
	panelStyle := lipgloss.NewStyle().Foreground(styles.Teal).Bold(true)
	if s.ActivePanel != "" {
		parts = append(parts, panelStyle.Render(strings.ToUpper(s.ActivePanel[:1])))
	}

	// ACCESSIBILITY: Backend indicator with high contrast and shape
	if s.BackendUp {
		upStyle := lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
		parts = append(parts, upStyle.Render(styles.StatusIndicators.Success))
	} else {
		downStyle := lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
		parts = append(parts, downStyle.Render(styles.StatusIndicators.Error))
	}

	panelSection := "[" + strings.Join(parts, "|") + "]"

	// User
	userView := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(s.UserName)

	// Status
	statusText := s.getStatusStyle().Render(s.Status.Icon())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := panelSection + separator + userView + separator + statusText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar.
// Format: panel | user | backend | clock | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	// Active panel
	panelStyle := lipgloss.NewStyle().Foreground(styles.Teal).Bold(true)
	parts = append(parts, panelStyle.Render(strings.ToUpper(s.ActivePanel)))

	// User
	userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	parts = append(parts, userStyle.Render(s.UserName))

	// Backend reachability
	parts = append(parts, s.renderBackendBadge(false))

	// Session clock
	if s.Clock != "" {
		clockStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		parts = append(parts, clockStyle.Render(s.Clock))
	}

	// Status
	parts = append(parts, s.getStatusStyle().Render(s.Status.String()))

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals.
// Format: PREDICT | priya | [OK] localhost:5000 | 12 saved    4m 12s    Ready  shortcuts
func (s *StatusBar) viewWide() string {
	// Left section: panel, user, backend, history count
	leftParts := []string{}

	panelStyle := lipgloss.NewStyle().Foreground(styles.Teal).Bold(true)
	leftParts = append(leftParts, panelStyle.Render(strings.ToUpper(s.ActivePanel)))

	userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	leftParts = append(leftParts, userStyle.Render(s.UserName))

	leftParts = append(leftParts, s.renderBackendBadge(true))

	if s.HistoryCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, countStyle.Render(fmtNumber(s.HistoryCount)+" saved"))
	}

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Center section: session clock
	centerSection := ""
	if s.Clock != "" {
		clockLabel := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render("Session: ")
		clockValue := lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(s.Clock)
		centerSection = clockLabel + clockValue
	}

	// Right section: status and shortcuts
	rightParts := []string{}
	rightParts = append(rightParts, s.getStatusStyle().Render(s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)
	totalContent := leftWidth + centerWidth + rightWidth

	spacing := s.Width - totalContent - 4 // Account for padding
	if spacing < 4 {
		spacing = 4
	}

	leftSpace := strings.Repeat(" ", spacing/2)
	rightSpace := strings.Repeat(" ", spacing-spacing/2)

	result := leftSection + leftSpace + centerSection + rightSpace + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderBackendBadge renders the backend reachability badge.
// ACCESSIBILITY: Uses high contrast colors with shape indicators
func (s *StatusBar) renderBackendBadge(withURL bool) string {
	if s.BackendUp {
		style := lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
		label := styles.StatusIndicators.Success
		if withURL && s.BackendURL != "" {
			label += " " + trimScheme(s.BackendURL)
		} else {
			label += " online"
		}
		return style.Render(label)
	}

	style := lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	label := styles.StatusIndicators.Error + " offline"
	if withURL && s.BackendURL != "" {
		label = styles.StatusIndicators.Error + " " + trimScheme(s.BackendURL) + " down"
	}
	return style.Render(label)
}

// getStatusStyle returns the style for the current status.
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusCalculating, StatusThinking:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusLoading:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("Tab") + descStyle.Render("panel"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// trimScheme strips the http(s):// prefix for compact display.
func trimScheme(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	return url
}
