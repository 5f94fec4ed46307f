// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carecost-tui/internal/model"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat panel.
// Layout: transcript (viewport) + thinking line + option row + input + status.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{m.viewport.View()}

	if m.thinking.IsActive() {
		sections = append(sections, m.thinking.View())
	}

	sections = append(sections, m.renderOptions())
	sections = append(sections, m.renderInput())

	if status := m.renderStatusLine(); status != "" {
		sections = append(sections, status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport rebuilds the transcript content.
func (m *Model) refreshViewport() {
	turns := m.transcript.Turns()
	if len(turns) == 0 {
		m.viewport.SetContent(m.renderEmptyState())
		return
	}

	rendered := make([]string, 0, len(turns))
	for _, turn := range turns {
		rendered = append(rendered, m.renderTurn(turn))
	}

	m.viewport.SetContent(strings.Join(rendered, "\n"))
}

// renderTurn renders one transcript entry as a bubble.
func (m *Model) renderTurn(turn model.Turn) string {
	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	name := turn.Sender.DisplayName()
	timestamp := turn.Timestamp.Format("15:04")

	nameStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := nameStyle.Render(name + " " + timestamp)

	switch turn.Sender {
	case model.SenderUser:
		suffix := ""
		if turn.Status == model.StatusPending {
			suffix = " ..."
		} else if turn.Status == model.StatusSettledError {
			suffix = " " + styles.StatusIndicators.Error
		}
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(turn.Text + suffix)
		block := lipgloss.JoinVertical(lipgloss.Right, header, bubble)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)

	default:
		text := turn.Text
		if turn.Status == model.StatusSettledError {
			bubble := m.theme.SystemBubble.MaxWidth(bubbleWidth).Render(text)
			return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
		}
		bubble := m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(m.renderMarkdown(text))
		return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
	}
}

// renderEmptyState renders the greeting shown before the first message.
func (m Model) renderEmptyState() string {
	title := m.theme.HeaderTitle.Render("Health Cost Assistant")
	hint := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("Ask a question, or press Ctrl+O to pick a quick option.")

	return lipgloss.JoinVertical(lipgloss.Left, "", title, "", hint)
}

// renderOptions renders the fixed option row. The selected option is
// highlighted only while the row has focus.
func (m Model) renderOptions() string {
	buttons := make([]string, 0, len(Options))
	for i, opt := range Options {
		if m.inputMode == ModeOption && i == m.selected {
			buttons = append(buttons, m.theme.OptionSelected.Render(opt.Label))
		} else {
			buttons = append(buttons, m.theme.OptionButton.Render(opt.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

// renderInput renders the text input row.
func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")

	if m.state == StatePending {
		waiting := m.theme.InputPlaceholder.Render("Waiting for reply...")
		return m.theme.InputContainer.Width(m.width - 2).Render(prompt + waiting)
	}

	return m.theme.InputContainer.Width(m.width - 2).Render(prompt + m.input.View())
}

// renderStatusLine renders transient notes and the last error.
func (m Model) renderStatusLine() string {
	switch {
	case m.lastErr != "":
		return m.theme.ErrorMessage.Render(m.lastErr)
	case m.statusNote != "":
		return lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render(m.statusNote)
	default:
		return ""
	}
}
