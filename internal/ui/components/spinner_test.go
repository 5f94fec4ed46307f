// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestNewSpinner(t *testing.T) {
	s := NewSpinner()

	if s.style != SpinnerLine {
		t.Errorf("NewSpinner() style = %v, want %v", s.style, SpinnerLine)
	}

	if s.message != "Loading" {
		t.Errorf("NewSpinner() message = %q, want %q", s.message, "Loading")
	}

	if !s.showTimer {
		t.Error("NewSpinner() showTimer should be true")
	}

	if s.isActive {
		t.Error("NewSpinner() should not be active initially")
	}
}

func TestNewSpinnerWithStyle(t *testing.T) {
	tests := []struct {
		name  string
		style SpinnerStyle
	}{
		{"Line", SpinnerLine},
		{"Dots", SpinnerDots},
		{"Pulse", SpinnerPulse},
		{"Block", SpinnerBlock},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSpinnerWithStyle(tc.style)
			if s.style != tc.style {
				t.Errorf("NewSpinnerWithStyle(%v) style = %v, want %v", tc.style, s.style, tc.style)
			}
		})
	}
}

func TestNewCalculatingSpinner(t *testing.T) {
	s := NewCalculatingSpinner()

	if s.message != "Calculating estimate" {
		t.Errorf("NewCalculatingSpinner() message = %q, want %q", s.message, "Calculating estimate")
	}

	if !s.showTimer {
		t.Error("NewCalculatingSpinner() showTimer should be true")
	}
}

func TestNewThinkingSpinner(t *testing.T) {
	s := NewThinkingSpinner()

	if s.message != "Thinking" {
		t.Errorf("NewThinkingSpinner() message = %q, want %q", s.message, "Thinking")
	}
}

func TestNewChartLoadingSpinner(t *testing.T) {
	s := NewChartLoadingSpinner()

	if s.message != "Loading visualizations" {
		t.Errorf("NewChartLoadingSpinner() message = %q, want %q", s.message, "Loading visualizations")
	}

	if s.showTimer {
		t.Error("NewChartLoadingSpinner() showTimer should be false")
	}
}

func TestSpinner_StartStop(t *testing.T) {
	s := NewSpinner()

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start()")
	}
	if s.startTime.IsZero() {
		t.Error("Start() should record the start time")
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should not be active after Stop()")
	}
}

func TestSpinner_ViewInactive(t *testing.T) {
	s := NewSpinner()

	if view := s.View(); view != "" {
		t.Errorf("inactive spinner View() = %q, want empty", view)
	}
}

func TestSpinner_ViewContainsMessage(t *testing.T) {
	s := NewSpinner()
	s.SetMessage("Calculating estimate")
	s.Start()

	view := s.View()
	if !strings.Contains(view, "Calculating estimate") {
		t.Errorf("View() should contain message, got %q", view)
	}
}

func TestSpinner_ViewContainsDetail(t *testing.T) {
	s := NewSpinner()
	s.SetDetail("Contacting backend")
	s.Start()

	view := s.View()
	if !strings.Contains(view, "Contacting backend") {
		t.Errorf("View() should contain detail line, got %q", view)
	}
}

func TestSpinner_GetElapsedBeforeStart(t *testing.T) {
	s := NewSpinner()

	if elapsed := s.GetElapsed(); elapsed != 0 {
		t.Errorf("GetElapsed() before Start() = %v, want 0", elapsed)
	}
}

// =============================================================================
// THINKING INDICATOR TESTS
// =============================================================================

func TestThinkingIndicator_Lifecycle(t *testing.T) {
	ti := NewThinkingIndicator()

	if ti.IsActive() {
		t.Error("indicator should not be active before Start()")
	}

	cmd := ti.Start()
	if cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if !ti.IsActive() {
		t.Error("indicator should be active after Start()")
	}

	view := ti.View()
	if !strings.Contains(view, "Thinking") {
		t.Errorf("View() should contain %q, got %q", "Thinking", view)
	}

	ti.Stop()
	if ti.IsActive() {
		t.Error("indicator should not be active after Stop()")
	}
	if ti.View() != "" {
		t.Error("stopped indicator should render nothing")
	}
}

// =============================================================================
// INLINE SPINNER TESTS
// =============================================================================

func TestInlineSpinner(t *testing.T) {
	is := NewInlineSpinner()

	if is.View() != "" {
		t.Error("inactive inline spinner should render nothing")
	}

	cmd := is.Start()
	if cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if is.View() == "" {
		t.Error("active inline spinner should render a frame")
	}

	is.Stop()
	if is.View() != "" {
		t.Error("stopped inline spinner should render nothing")
	}
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestFmtElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{30, "30s"},
		{59, "59s"},
		{60, "1m 0s"},
		{252, "4m 12s"},
	}

	for _, tc := range tests {
		if got := fmtElapsed(tc.seconds); got != tc.want {
			t.Errorf("fmtElapsed(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-52340, "-52,340"},
	}

	for _, tc := range tests {
		if got := fmtNumber(tc.n); got != tc.want {
			t.Errorf("fmtNumber(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFmtPercent(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "0.0%"},
		{33.333, "33.3%"},
		{100, "100.0%"},
	}

	for _, tc := range tests {
		if got := fmtPercent(tc.p); got != tc.want {
			t.Errorf("fmtPercent(%v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}
