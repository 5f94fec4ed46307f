// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charts

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carecost-tui/internal/ui/components"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
	"github.com/jeranaias/carecost-tui/internal/util"
)

// View renders the panel.
func (m Model) View() string {
	var sections []string

	if m.loading {
		sections = append(sections, m.spinner.View())
	}

	if m.source == SourceSample {
		banner := lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render(styles.StatusIndicators.Warning + " Showing built-in sample data (backend offline). Press r to retry.")
		sections = append(sections, banner)
	}

	sections = append(sections, m.viewport.View())
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport rebuilds the panel content wholesale from the current
// datasets.
func (m *Model) refreshViewport() {
	if m.data == nil {
		if m.lastErr != "" {
			m.viewport.SetContent(m.theme.ErrorMessage.Render("Could not load visualizations: " + m.lastErr))
		} else {
			m.viewport.SetContent(m.theme.FormHint.Render("No visualizations loaded yet."))
		}
		return
	}

	width := m.contentWidth()
	var blocks []string

	if !m.data.LineChart.IsEmpty() {
		chart := components.NewBarChart("Average cost by age group", m.data.LineChart)
		chart.SetWidth(width)
		trend := components.RenderSparkline(m.data.LineChart.Data, width-4)
		blocks = append(blocks, chart.View()+"\n  "+trend)
	}

	if !m.data.BarChart.IsEmpty() {
		chart := components.NewBarChart("Average cost by insurance type", m.data.BarChart)
		chart.SetWidth(width)
		blocks = append(blocks, chart.View())
	}

	if !m.data.PieChart.IsEmpty() {
		title := m.theme.FormSection.Render("Health conditions in the dataset")
		blocks = append(blocks, title+"\n"+components.RenderProportions(m.data.PieChart, width))
	}

	if !m.data.AreaChart.IsEmpty() {
		chart := components.NewBarChart("Average cost by city type", m.data.AreaChart)
		chart.SetWidth(width)
		blocks = append(blocks, chart.View())
	}

	if !m.data.ScatterChart.IsEmpty() {
		blocks = append(blocks, m.renderScatterTable(m.data.ScatterChart.Labels,
			m.data.ScatterChart.YData, m.data.ScatterChart.Sizes))
	}

	if !m.data.PolarChart.IsEmpty() {
		title := m.theme.FormSection.Render("Cost by gender and smoking")
		blocks = append(blocks, title+"\n"+components.RenderProportions(m.data.PolarChart, width))
	}

	if len(blocks) == 0 {
		m.viewport.SetContent(m.theme.FormHint.Render("The backend returned no chart data."))
		return
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

// renderScatterTable shows the doctor-visits scatter dataset as a value
// table. Sizes come over the wire doubled, so halve them back to counts.
func (m *Model) renderScatterTable(labels []string, costs, sizes []float64) string {
	const labelWidth = 16

	var b strings.Builder
	b.WriteString(m.theme.FormSection.Render("Doctor visits vs. average cost"))
	b.WriteString("\n")
	b.WriteString(m.theme.TableHeader.Render(
		util.PadRight("Visits", labelWidth) + util.PadRight("Avg cost", 14) + "Patients"))
	b.WriteString("\n")

	for i, label := range labels {
		if i >= len(costs) {
			break
		}
		patients := "-"
		if i < len(sizes) {
			patients = strconv.Itoa(int(sizes[i] / 2))
		}
		row := util.PadRight(util.TruncateWidth(label, labelWidth-1), labelWidth) +
			util.PadRight(util.FormatINR(costs[i]), 14) +
			patients

		style := m.theme.TableRow
		if i%2 == 1 {
			style = m.theme.TableRowAlt
		}
		b.WriteString(style.Render(row))
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderFooter() string {
	hints := []string{"up/down scroll", "r reload"}
	return m.theme.FormHint.Render(strings.Join(hints, "  ·  "))
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}
