// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Non-blocking toast notifications. Unlike modal error dialogs, toasts
// appear in the bottom-right corner and auto-dismiss, so a failed
// prediction or chat request never locks the user out of the panels.
package components

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind selects the toast's color and icon.
type ToastKind int

const (
	ToastKindStatus ToastKind = iota
	ToastKindError
	ToastKindWarning
	ToastKindSuccess
)

// Auto-dismiss durations. Errors stay longest so there is time to read
// them and hit retry.
const (
	DefaultToastDuration = 4 * time.Second
	WarningToastDuration = 6 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// =============================================================================
// TOAST
// =============================================================================

// Toast is one non-blocking notification. Backend errors surface here
// while the panels stay interactive. A non-nil Retry command marks the
// toast as retryable; the root model runs it on ctrl+r.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
	Retry     tea.Cmd
}

func newToast(message string, kind ToastKind, duration time.Duration) Toast {
	return Toast{
		ID:        nextToastID(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// NewErrorToast creates an error toast.
func NewErrorToast(message string) Toast {
	return newToast(message, ToastKindError, ErrorToastDuration)
}

// NewWarningToast creates a warning toast.
func NewWarningToast(message string) Toast {
	return newToast(message, ToastKindWarning, WarningToastDuration)
}

// NewStatusToast creates an informational toast.
func NewStatusToast(message string) Toast {
	return newToast(message, ToastKindStatus, DefaultToastDuration)
}

// NewSuccessToast creates a success toast.
func NewSuccessToast(message string) Toast {
	return newToast(message, ToastKindSuccess, DefaultToastDuration)
}

// NewRetryableErrorToast creates an error toast carrying a retry command,
// used when a prediction fails on transport and the request can simply be
// re-sent.
func NewRetryableErrorToast(message string, retry tea.Cmd) Toast {
	toast := NewErrorToast(message)
	toast.Retry = retry
	return toast
}

// IsExpired reports whether the toast is past its dismiss time.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns the time left before auto-dismiss, clamped to zero.
func (t *Toast) TimeRemaining() time.Duration {
	remaining := t.Duration - time.Since(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

const maxVisibleToasts = 5

// ToastManager owns the active toast stack, newest first.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewToastManager creates an empty toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{}
}

// AddToast pushes a toast onto the stack and returns its ID. The stack is
// capped; the oldest toasts fall off.
func (m *ToastManager) AddToast(toast Toast) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if toast.ID == 0 {
		toast.ID = nextToastID()
	}

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > maxVisibleToasts {
		m.toasts = m.toasts[:maxVisibleToasts]
	}
	return toast.ID
}

// AddError adds an error toast.
func (m *ToastManager) AddError(message string) int {
	return m.AddToast(NewErrorToast(message))
}

// AddWarning adds a warning toast.
func (m *ToastManager) AddWarning(message string) int {
	return m.AddToast(NewWarningToast(message))
}

// AddStatus adds an informational toast.
func (m *ToastManager) AddStatus(message string) int {
	return m.AddToast(NewStatusToast(message))
}

// AddSuccess adds a success toast.
func (m *ToastManager) AddSuccess(message string) int {
	return m.AddToast(NewSuccessToast(message))
}

// TakeRetry removes the newest retryable toast and returns its retry
// command, or nil when no retryable toast is showing.
func (m *ToastManager) TakeRetry() tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, toast := range m.toasts {
		if toast.Retry != nil {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return toast.Retry
		}
	}
	return nil
}

// TickToasts drops expired toasts and returns what is left. Called from
// the toast tick loop.
func (m *ToastManager) TickToasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.IsExpired() {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return m.toasts
}

// GetToasts returns a copy of the current stack.
func (m *ToastManager) GetToasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Toast, len(m.toasts))
	copy(result, m.toasts)
	return result
}

// HasToasts reports whether anything is showing.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts every 100ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

func toastPalette(kind ToastKind) (lipgloss.AdaptiveColor, string) {
	switch kind {
	case ToastKindError:
		return styles.Rose, styles.StatusIndicators.Error
	case ToastKindWarning:
		return styles.Amber, styles.StatusIndicators.Warning
	case ToastKindSuccess:
		return styles.Emerald, styles.StatusIndicators.Success
	default:
		return styles.Cyan, styles.StatusIndicators.Info
	}
}

// RenderToast renders a single toast box.
func RenderToast(toast Toast, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	color, icon := toastPalette(toast.Kind)

	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 8)

	content := iconStyle.Render(icon+" ") + messageStyle.Render(toast.Message)

	var hints []string
	if toast.Retry != nil {
		hints = append(hints, "ctrl+r retry")
	}
	if secs := int(toast.TimeRemaining().Seconds()); secs > 0 {
		hints = append(hints, strconv.Itoa(secs)+"s")
	}
	if len(hints) > 0 {
		hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
		content += "\n" + hintStyle.Render(strings.Join(hints, "  "))
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders the toast stack anchored to the bottom-right
// corner, newest at the top.
func RenderToastStack(toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(toast, width))
	}

	stack := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(lipgloss.JoinVertical(lipgloss.Right, rendered...))

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
	}
	return stack
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

var (
	toastIDMu      sync.Mutex
	toastIDCounter int
)

func nextToastID() int {
	toastIDMu.Lock()
	defer toastIDMu.Unlock()
	toastIDCounter++
	return toastIDCounter
}
