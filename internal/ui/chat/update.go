// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/model"
)

// transportApology is appended as a synthetic AI turn when the backend
// cannot be reached at all.
const transportApology = "Sorry, I could not reach the prediction service. Please try again in a moment."

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// sendCmd posts one chat message and reports the settled result.
func sendCmd(client *api.Client, userTurnID, message string, kind api.ChatKind) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), message, kind)
		return ReplyMsg{
			UserTurnID: userTurnID,
			Response:   resp,
			Err:        err,
		}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Init starts the panel.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the chat panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case ClearTranscriptMsg:
		m.transcript = model.NewTranscript()
		m.lastErr = ""
		m.refreshViewport()
		return m, nil
	}

	// Forward animation ticks and scroll events
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.thinking, cmd = m.thinking.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey routes key presses by input mode and pending state.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// While a send is in flight only scrolling works
	if m.state == StatePending {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+o":
		// Toggle between free text and the fixed option row
		if m.inputMode == ModeText {
			m.inputMode = ModeOption
			m.input.Blur()
		} else {
			m.inputMode = ModeText
			m.input.Focus()
		}
		return m, nil

	case "esc":
		if m.inputMode == ModeOption {
			m.inputMode = ModeText
			m.input.Focus()
			return m, nil
		}

	case "left", "shift+tab":
		if m.inputMode == ModeOption {
			m.selected--
			if m.selected < 0 {
				m.selected = len(Options) - 1
			}
			return m, nil
		}

	case "right":
		if m.inputMode == ModeOption {
			m.selected = (m.selected + 1) % len(Options)
			return m, nil
		}

	case "enter":
		if m.inputMode == ModeOption {
			return m.submitOption(Options[m.selected])
		}
		return m.submitText()
	}

	if m.inputMode == ModeText {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submitText sends the free-text input. Empty input after trimming is a
// silent no-op: no transcript entry, no network call.
func (m Model) submitText() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if !m.limiter.Allow() {
		m.statusNote = "Sending too fast, give it a second"
		return m, nil
	}

	m.input.SetValue("")
	return m.send(text, text, api.ChatKindText)
}

// submitOption sends a fixed option. The label is what lands in the
// transcript; the value is what goes over the wire.
func (m Model) submitOption(opt Option) (Model, tea.Cmd) {
	if !m.limiter.Allow() {
		m.statusNote = "Sending too fast, give it a second"
		return m, nil
	}
	return m.send(opt.Label, opt.Value, api.ChatKindOption)
}

// send appends the user turn optimistically and starts the backend call.
func (m Model) send(display, wire string, kind api.ChatKind) (Model, tea.Cmd) {
	m.statusNote = ""
	m.lastErr = ""

	turnID := m.transcript.Append(model.NewUserTurn(display))
	m.pendingID = turnID
	m.state = StatePending
	m.refreshViewport()

	return m, tea.Batch(
		sendCmd(m.client, turnID, wire, kind),
		m.thinking.Start(),
	)
}

// handleReply settles the pending user turn and appends the AI turn.
func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	m.thinking.Stop()
	m.state = StateReady
	m.pendingID = ""
	if m.inputMode == ModeText {
		m.input.Focus()
	}

	switch {
	case msg.Err != nil:
		// Transport failure: the user turn stays, one apology turn follows
		m.transcript.Settle(msg.UserTurnID, model.StatusSettledError)
		m.transcript.Append(model.NewAIErrorTurn(transportApology))
		m.lastErr = msg.Err.Error()
		m.state = StateError

	case !msg.Response.Success:
		m.transcript.Settle(msg.UserTurnID, model.StatusSettledError)
		reason := msg.Response.Error
		if reason == "" {
			reason = "the service returned an error"
		}
		m.transcript.Append(model.NewAIErrorTurn("Something went wrong: " + reason))

	default:
		m.transcript.Settle(msg.UserTurnID, model.StatusSettledOK)
		m.transcript.Append(model.NewAITurn(msg.Response.Response))
	}

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}
