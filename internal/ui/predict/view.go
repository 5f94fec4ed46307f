// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carecost-tui/internal/ui/styles"
	"github.com/jeranaias/carecost-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the prediction panel: the form, and the result pane beside
// it on wide terminals or below it otherwise.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	form := m.renderForm()
	result := m.renderResult()

	var body string
	if m.width >= 100 && result != "" {
		gap := lipgloss.NewStyle().Width(2).Render("")
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, gap, result)
	} else if result != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, form, "", result)
	} else {
		body = form
	}

	sections := []string{body}

	if m.spinner.IsActive() {
		sections = append(sections, m.spinner.View())
	}
	if m.lastErr != "" {
		sections = append(sections, m.theme.ErrorMessage.Render(m.lastErr))
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// FORM
// =============================================================================

// labelColumnWidth aligns field labels in one column.
const labelColumnWidth = 22

// renderForm renders all fields in navigation order.
func (m Model) renderForm() string {
	rows := make([]string, 0, fieldCount+1)
	rows = append(rows, m.theme.FormSection.Render("Your Profile"))

	for i := range fieldSpecs {
		rows = append(rows, m.renderField(i))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderField renders one label + value row.
func (m Model) renderField(i int) string {
	spec := fieldSpecs[i]
	focused := i == m.focus

	labelStyle := m.theme.FormLabel
	if focused {
		labelStyle = m.theme.FormLabelFocused
	}
	label := labelStyle.Render(util.PadRight(spec.label, labelColumnWidth))

	var value string
	if spec.kind == kindSelect {
		value = m.renderSelect(i, focused)
	} else if focused {
		value = m.values[i].input.View()
	} else {
		value = m.theme.FormValue.Render(m.values[i].input.Value())
	}

	row := label + " " + value

	if focused && spec.kind != kindSelect {
		hint := m.theme.FormHint.Render(rangeHint(spec))
		row += "  " + hint
	}

	return row
}

// renderSelect renders a cycling select as its option list with the
// current choice highlighted.
func (m Model) renderSelect(i int, focused bool) string {
	spec := fieldSpecs[i]
	parts := make([]string, 0, len(spec.options))

	for j, opt := range spec.options {
		switch {
		case j == m.values[i].selected && focused:
			parts = append(parts, m.theme.OptionSelected.Render(opt))
		case j == m.values[i].selected:
			parts = append(parts, m.theme.FormValue.Render("["+opt+"]"))
		default:
			parts = append(parts, m.theme.FormHint.Render(opt))
		}
	}

	return strings.Join(parts, " ")
}

// rangeHint formats a numeric field's allowed range.
func rangeHint(spec fieldSpec) string {
	return "(" + strconv.FormatFloat(spec.min, 'f', -1, 64) +
		"-" + strconv.FormatFloat(spec.max, 'f', -1, 64) + ")"
}

// =============================================================================
// RESULT
// =============================================================================

// renderResult renders the current prediction view, or nothing before the
// first successful submit.
func (m Model) renderResult() string {
	if m.result == nil {
		return ""
	}

	rows := []string{
		m.theme.ResultLabel.Render("Estimated annual cost"),
		m.theme.ResultPrimary.Render(m.result.Primary),
	}

	if m.showBreakdown && len(m.result.Models) > 0 {
		rows = append(rows, "", m.theme.TableHeader.Render("Model estimates"))
		for i, row := range m.result.Models {
			rowStyle := m.theme.TableRow
			if i%2 == 1 {
				rowStyle = m.theme.TableRowAlt
			}
			rows = append(rows, rowStyle.Render(
				util.PadRight(row.Name, 24)+row.Value,
			))
		}
	}

	if exp := m.result.Explanation; exp != nil {
		if exp.Summary != "" {
			rows = append(rows, "", m.theme.SummaryText.Render(exp.Summary))
		}

		if len(exp.Factors) > 0 {
			rows = append(rows, "", m.theme.TableHeader.Render("Cost factors"))
			for _, f := range exp.Factors {
				badge := m.theme.ImpactBadge(f.StyleKey).Render(f.Impact)
				rows = append(rows, util.PadRight(f.Name, 20)+" "+badge+" "+f.Amount)
			}
		}

		coverage := lipgloss.JoinVertical(lipgloss.Left,
			m.theme.ResultLabel.Render("Insurance coverage"),
			"Total cost:    "+exp.Total,
			"Covered:       "+exp.Covered,
			"Out of pocket: "+exp.OutOfPocket,
		)
		rows = append(rows, "", m.theme.CoverageBox.Render(coverage))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return m.theme.ResultBox.Render(content)
}

// renderFooter renders the key hints.
func (m Model) renderFooter() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	hints := []string{
		keyStyle.Render("up/down") + descStyle.Render(" field"),
		keyStyle.Render("left/right") + descStyle.Render(" choose"),
		keyStyle.Render("^S") + descStyle.Render(" submit"),
	}

	return strings.Join(hints, "  ")
}
