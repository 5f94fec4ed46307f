// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestImpactColor(t *testing.T) {
	tests := []struct {
		key  string
		want string // dark variant, enough to pin the mapping
	}{
		{"very-high", Rose.Dark},
		{"high", Rose.Dark},
		{"medium", Amber.Dark},
		{"low", Emerald.Dark},
		{"positive", Emerald.Dark},
		{"something-new", TextSecondary.Dark},
		{"", TextSecondary.Dark},
	}
	for _, tt := range tests {
		if got := ImpactColor(tt.key); got.Dark != tt.want {
			t.Errorf("ImpactColor(%q).Dark = %q, want %q", tt.key, got.Dark, tt.want)
		}
	}
}

func TestSeriesColorCycles(t *testing.T) {
	n := len(ChartSeries)
	if SeriesColor(0) != SeriesColor(n) {
		t.Error("series colors should cycle")
	}
	if SeriesColor(-1) != SeriesColor(1) {
		t.Error("negative index should not panic and should mirror")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		wantLen int
	}{
		{"empty", 10, 0, 10},
		{"full", 10, 100, 10},
		{"half", 10, 50, 10},
		{"clamped high", 10, 150, 10},
		{"clamped low", 10, -5, 10},
		{"zero width", 0, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgressBar(tt.width, tt.percent)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d (%q)", len(got), tt.wantLen, got)
			}
		})
	}

	full := RenderProgressBar(8, 100)
	if full != strings.Repeat(ProgressFull, 8) {
		t.Errorf("full bar = %q", full)
	}
	empty := RenderProgressBar(8, 0)
	if empty != strings.Repeat(ProgressEmpty, 8) {
		t.Errorf("empty bar = %q", empty)
	}
}

func TestSpinnerDuration(t *testing.T) {
	if LineSpinner.Duration() <= 0 {
		t.Error("spinner frame duration must be positive")
	}
	if len(DotsSpinner.Frames) == 0 || len(PulseSpinner.Frames) == 0 {
		t.Error("spinner frame sets must not be empty")
	}
}

func TestThemeInitializesStyles(t *testing.T) {
	theme := NewTheme()

	// A few representative styles must render without panicking and apply
	// their text content.
	out := theme.ResultPrimary.Render("₹52,340")
	if !strings.Contains(out, "₹52,340") {
		t.Errorf("ResultPrimary lost its content: %q", out)
	}
	out = theme.TabActive.Render("Chat")
	if !strings.Contains(out, "Chat") {
		t.Errorf("TabActive lost its content: %q", out)
	}
}

func TestThemeLayoutMode(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(40, 20)
	if theme.GetLayoutMode() != LayoutNarrow {
		t.Error("40 cols should be narrow")
	}
	theme.SetSize(80, 20)
	if theme.GetLayoutMode() != LayoutMedium {
		t.Error("80 cols should be medium")
	}
	theme.SetSize(140, 20)
	if theme.GetLayoutMode() != LayoutWide {
		t.Error("140 cols should be wide")
	}
}

func TestImpactBadgeBoldOnlyForVeryHigh(t *testing.T) {
	theme := NewTheme()
	if !theme.ImpactBadge("very-high").GetBold() {
		t.Error("very-high badge should be bold")
	}
	if theme.ImpactBadge("medium").GetBold() {
		t.Error("medium badge should not be bold")
	}
}

func TestRenderStatusIndicators(t *testing.T) {
	ok := RenderStatus(true, "backend reachable")
	if !strings.Contains(ok, StatusIndicators.Success) {
		t.Errorf("success output missing indicator: %q", ok)
	}
	bad := RenderStatus(false, "backend down")
	if !strings.Contains(bad, StatusIndicators.Error) {
		t.Errorf("error output missing indicator: %q", bad)
	}
}
