// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastConstructors(t *testing.T) {
	tests := []struct {
		name     string
		toast    Toast
		kind     ToastKind
		duration time.Duration
	}{
		{"error", NewErrorToast("backend unreachable"), ToastKindError, ErrorToastDuration},
		{"warning", NewWarningToast("slow response"), ToastKindWarning, WarningToastDuration},
		{"status", NewStatusToast("settings saved"), ToastKindStatus, DefaultToastDuration},
		{"success", NewSuccessToast("estimate ready"), ToastKindSuccess, DefaultToastDuration},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.toast.Kind != tc.kind {
				t.Errorf("kind = %v, want %v", tc.toast.Kind, tc.kind)
			}
			if tc.toast.Duration != tc.duration {
				t.Errorf("duration = %v, want %v", tc.toast.Duration, tc.duration)
			}
			if tc.toast.ID == 0 {
				t.Error("toast should get a non-zero ID")
			}
			if tc.toast.Retry != nil {
				t.Error("plain toasts should not carry a retry command")
			}
		})
	}
}

func TestToast_IsExpired(t *testing.T) {
	toast := NewStatusToast("fresh")
	if toast.IsExpired() {
		t.Error("fresh toast should not be expired")
	}

	toast.CreatedAt = time.Now().Add(-10 * time.Second)
	if !toast.IsExpired() {
		t.Error("old toast should be expired")
	}
}

func TestToast_TimeRemaining(t *testing.T) {
	toast := NewErrorToast("oops")
	if toast.TimeRemaining() <= 0 {
		t.Error("fresh toast should have time remaining")
	}

	toast.CreatedAt = time.Now().Add(-time.Minute)
	if toast.TimeRemaining() != 0 {
		t.Error("expired toast remaining should clamp to zero")
	}
}

func TestNewRetryableErrorToast(t *testing.T) {
	retry := func() tea.Msg { return nil }
	toast := NewRetryableErrorToast("prediction failed", retry)

	if toast.Kind != ToastKindError {
		t.Errorf("kind = %v, want error", toast.Kind)
	}
	if toast.Retry == nil {
		t.Fatal("retryable toast should carry a retry command")
	}
}

// =============================================================================
// TOAST MANAGER TESTS
// =============================================================================

func TestToastManager_AddNewestFirst(t *testing.T) {
	m := NewToastManager()

	m.AddStatus("first")
	m.AddError("second")

	toasts := m.GetToasts()
	if len(toasts) != 2 {
		t.Fatalf("len = %d, want 2", len(toasts))
	}
	if toasts[0].Message != "second" {
		t.Errorf("newest toast should be first, got %q", toasts[0].Message)
	}
}

func TestToastManager_TrimsToMax(t *testing.T) {
	m := NewToastManager()

	for i := 0; i < 8; i++ {
		m.AddStatus("toast")
	}

	if got := len(m.GetToasts()); got != maxVisibleToasts {
		t.Errorf("toast count = %d, want %d", got, maxVisibleToasts)
	}
}

func TestToastManager_TakeRetry(t *testing.T) {
	m := NewToastManager()

	m.AddError("plain failure")
	m.AddToast(NewRetryableErrorToast("older retryable", func() tea.Msg { return "old" }))
	m.AddToast(NewRetryableErrorToast("newer retryable", func() tea.Msg { return "new" }))

	retry := m.TakeRetry()
	if retry == nil {
		t.Fatal("TakeRetry should return the newest retry command")
	}
	if got := retry(); got != "new" {
		t.Errorf("retry msg = %v, want the newest toast's command", got)
	}

	// the taken toast is dismissed; the older one is next in line
	if got := len(m.GetToasts()); got != 2 {
		t.Fatalf("toast count after take = %d, want 2", got)
	}
	if retry = m.TakeRetry(); retry == nil {
		t.Fatal("second TakeRetry should find the older retryable toast")
	}
	if got := retry(); got != "old" {
		t.Errorf("retry msg = %v, want the older toast's command", got)
	}
}

func TestToastManager_TakeRetry_NoneShowing(t *testing.T) {
	m := NewToastManager()
	m.AddError("not retryable")

	if m.TakeRetry() != nil {
		t.Error("TakeRetry should return nil without a retryable toast")
	}
	if got := len(m.GetToasts()); got != 1 {
		t.Errorf("TakeRetry must not dismiss non-retryable toasts, len = %d", got)
	}
}

func TestToastManager_TickDropsExpired(t *testing.T) {
	m := NewToastManager()

	expired := NewStatusToast("old")
	expired.CreatedAt = time.Now().Add(-time.Minute)
	m.AddToast(expired)
	m.AddStatus("live")

	remaining := m.TickToasts()
	if len(remaining) != 1 {
		t.Fatalf("len = %d, want 1", len(remaining))
	}
	if remaining[0].Message != "live" {
		t.Errorf("expired toast survived, got %q", remaining[0].Message)
	}
}

func TestToastManager_HasToasts(t *testing.T) {
	m := NewToastManager()

	if m.HasToasts() {
		t.Error("new manager should have no toasts")
	}

	m.AddSuccess("done")
	if !m.HasToasts() {
		t.Error("manager should report toasts after add")
	}
}

// =============================================================================
// RENDERING TESTS
// =============================================================================

func TestRenderToast_ContainsMessage(t *testing.T) {
	toast := NewErrorToast("backend is not reachable")

	rendered := RenderToast(toast, 80)
	if !strings.Contains(rendered, "backend is not reachable") {
		t.Error("rendered toast should contain the message")
	}
	if strings.Contains(rendered, "ctrl+r") {
		t.Error("plain error toast should not show a retry hint")
	}
}

func TestRenderToast_RetryHint(t *testing.T) {
	toast := NewRetryableErrorToast("prediction failed", func() tea.Msg { return nil })

	rendered := RenderToast(toast, 80)
	if !strings.Contains(rendered, "ctrl+r retry") {
		t.Error("retryable toast should show the retry hint")
	}
}

func TestRenderToastStack_Empty(t *testing.T) {
	if got := RenderToastStack(nil, 80, 24); got != "" {
		t.Errorf("empty stack should render nothing, got %q", got)
	}
}

func TestRenderToastStack_ContainsAllMessages(t *testing.T) {
	toasts := []Toast{
		NewErrorToast("first problem"),
		NewWarningToast("second problem"),
	}

	rendered := RenderToastStack(toasts, 100, 40)
	if !strings.Contains(rendered, "first problem") {
		t.Error("stack should contain the first toast")
	}
	if !strings.Contains(rendered, "second problem") {
		t.Error("stack should contain the second toast")
	}
}
