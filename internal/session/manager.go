// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// ACTIVITY TRACKER
// =============================================================================

// Tracker records wall-clock session activity for the status bar: when the
// app started, how long it has been running, and when the user last did
// anything. Safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	startTime    time.Time
	lastActivity time.Time
}

// NewTracker creates a tracker for a freshly started app session.
func NewTracker() *Tracker {
	now := time.Now()
	return &Tracker{
		startTime:    now,
		lastActivity: now,
	}
}

// Duration returns how long the session has been active.
func (t *Tracker) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.startTime)
}

// IdleTime returns how long since last activity.
func (t *Tracker) IdleTime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.lastActivity)
}

// RecordActivity updates the last activity timestamp.
// This should be called on user input.
func (t *Tracker) RecordActivity() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastActivity = time.Now()
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent once a second to refresh the status bar clock.
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a command that ticks periodically.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatDuration returns a human-readable duration string like "4m 12s".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
