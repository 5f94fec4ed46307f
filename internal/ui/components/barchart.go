// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
	"github.com/jeranaias/carecost-tui/internal/util"
)

// chartPrinter formats chart values with grouping separators.
var chartPrinter = message.NewPrinter(language.English)

// =============================================================================
// HORIZONTAL BAR CHART
// =============================================================================

// BarChart renders a named dataset as horizontal bars, one row per label.
// Bars scale to the largest value so relative magnitude survives any
// terminal width.
type BarChart struct {
	Title       string
	Labels      []string
	Values      []float64
	Width       int // Total available width
	MaxBarWidth int // Cap on the bar segment, 0 for default
}

// NewBarChart creates a bar chart from a dataset.
func NewBarChart(title string, ds api.ChartDataset) *BarChart {
	return &BarChart{
		Title:       title,
		Labels:      ds.Labels,
		Values:      ds.Data,
		Width:       80,
		MaxBarWidth: 30,
	}
}

// SetWidth updates the available width.
func (b *BarChart) SetWidth(width int) {
	b.Width = width
}

// View renders the chart.
func (b *BarChart) View() string {
	if len(b.Labels) == 0 || len(b.Labels) != len(b.Values) {
		return ""
	}

	maxBar := b.MaxBarWidth
	if maxBar <= 0 {
		maxBar = 30
	}

	labelWidth := 0
	for _, label := range b.Labels {
		if w := util.StringWidth(label); w > labelWidth {
			labelWidth = w
		}
	}
	// Keep labels from eating the whole row on narrow terminals
	if labelWidth > b.Width/3 {
		labelWidth = b.Width / 3
	}

	maxValue := 0.0
	for _, v := range b.Values {
		if v > maxValue {
			maxValue = v
		}
	}

	var sb strings.Builder

	if b.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Foreground(styles.TextPrimary).
			Bold(true)
		sb.WriteString(titleStyle.Render(b.Title))
		sb.WriteString("\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	for i, label := range b.Labels {
		filled := 0
		if maxValue > 0 {
			filled = int(b.Values[i] / maxValue * float64(maxBar))
		}
		if filled > maxBar {
			filled = maxBar
		}
		if filled < 0 {
			filled = 0
		}

		bar := renderBar(filled, maxBar, styles.SeriesColor(i))
		labelCell := util.PadRight(util.TruncateWidth(label, labelWidth), labelWidth)
		value := chartPrinter.Sprintf("%.0f", b.Values[i])

		sb.WriteString(labelStyle.Render(labelCell))
		sb.WriteString(" ")
		sb.WriteString(bar)
		sb.WriteString(" ")
		sb.WriteString(valueStyle.Render(value))
		if i < len(b.Labels)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// renderBar renders a single horizontal bar segment.
func renderBar(filled, maxWidth int, color lipgloss.AdaptiveColor) string {
	if filled > maxWidth {
		filled = maxWidth
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(styles.Overlay)

	return filledStyle.Render(strings.Repeat(styles.ProgressFull, filled)) +
		emptyStyle.Render(strings.Repeat(styles.ProgressEmpty, maxWidth-filled))
}

// =============================================================================
// SPARKLINE
// =============================================================================

// sparkLevels are the ASCII glyphs for sparkline buckets, lowest first.
var sparkLevels = []string{"_", ".", "-", "=", "#"}

// RenderSparkline renders a value series as a single-line sparkline,
// used for the line and area charts. Values map to five ASCII levels
// scaled between the series min and max.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	// Resample to the requested width
	sampled := values
	if len(values) > width {
		sampled = make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*len(values)/width]
		}
	}

	min, max := sampled[0], sampled[0]
	for _, v := range sampled {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var sb strings.Builder
	for _, v := range sampled {
		level := 0
		if max > min {
			level = int((v - min) / (max - min) * float64(len(sparkLevels)-1))
		}
		if level >= len(sparkLevels) {
			level = len(sparkLevels) - 1
		}
		sb.WriteString(sparkLevels[level])
	}

	return lipgloss.NewStyle().
		Foreground(styles.Teal).
		Render(sb.String())
}

// =============================================================================
// PROPORTION LIST
// =============================================================================

// RenderProportions renders a dataset as a percentage breakdown, one row
// per slice. This is the terminal stand-in for pie and polar charts.
func RenderProportions(ds api.ChartDataset, width int) string {
	if len(ds.Labels) == 0 || len(ds.Labels) != len(ds.Data) {
		return ""
	}

	total := 0.0
	for _, v := range ds.Data {
		total += v
	}
	if total <= 0 {
		return ""
	}

	labelWidth := 0
	for _, label := range ds.Labels {
		if w := util.StringWidth(label); w > labelWidth {
			labelWidth = w
		}
	}

	barWidth := 20
	if width > 0 && width-labelWidth-12 < barWidth {
		barWidth = width - labelWidth - 12
	}
	if barWidth < 5 {
		barWidth = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	percentStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var sb strings.Builder
	for i, label := range ds.Labels {
		percent := ds.Data[i] / total * 100
		filled := int(percent / 100 * float64(barWidth))

		sb.WriteString(labelStyle.Render(util.PadRight(label, labelWidth)))
		sb.WriteString(" ")
		sb.WriteString(renderBar(filled, barWidth, styles.SeriesColor(i)))
		sb.WriteString(" ")
		sb.WriteString(percentStyle.Render(fmtPercent(percent)))
		if i < len(ds.Labels)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
