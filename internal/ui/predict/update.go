// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/model"
)

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// ResultMsg delivers the settled outcome of a prediction request. The
// request rides along so the root model can record successful predictions
// in local history.
type ResultMsg struct {
	Request  *api.PredictionRequest
	Response *api.PredictionResponse
	Err      error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// predictCmd posts the form and reports the settled result.
func predictCmd(client *api.Client, req *api.PredictionRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Predict(context.Background(), req)
		return ResultMsg{Request: req, Response: resp, Err: err}
	}
}

// ResendCmd re-issues an already-built request. The retry affordance on
// connection-failure toasts uses this to resubmit without touching the
// form.
func ResendCmd(client *api.Client, req *api.PredictionRequest) tea.Cmd {
	return predictCmd(client, req)
}

// =============================================================================
// UPDATE
// =============================================================================

// Init starts the panel.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the prediction panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResultMsg:
		return m.handleResult(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	if !m.busy && fieldSpecs[m.focus].kind != kindSelect {
		m.values[m.focus].input, cmd = m.values[m.focus].input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes key presses. The whole form is inert while a request
// is in flight.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "up":
		m.moveFocus(-1)
		return m, nil

	case "down":
		m.moveFocus(1)
		return m, nil

	case "left":
		if fieldSpecs[m.focus].kind == kindSelect {
			opts := fieldSpecs[m.focus].options
			m.values[m.focus].selected--
			if m.values[m.focus].selected < 0 {
				m.values[m.focus].selected = len(opts) - 1
			}
			return m, nil
		}

	case "right":
		if fieldSpecs[m.focus].kind == kindSelect {
			opts := fieldSpecs[m.focus].options
			m.values[m.focus].selected = (m.values[m.focus].selected + 1) % len(opts)
			return m, nil
		}

	case "enter":
		// Enter advances; on the last field it submits
		if m.focus == fieldCount-1 {
			return m.submit()
		}
		m.moveFocus(1)
		return m, nil

	case "ctrl+s":
		return m.submit()
	}

	if fieldSpecs[m.focus].kind != kindSelect {
		var cmd tea.Cmd
		m.values[m.focus].input, cmd = m.values[m.focus].input.Update(msg)
		m.clampField(m.focus)
		return m, cmd
	}

	return m, nil
}

// moveFocus shifts field focus with wraparound.
func (m *Model) moveFocus(delta int) {
	if fieldSpecs[m.focus].kind != kindSelect {
		m.values[m.focus].input.Blur()
	}

	m.focus = (m.focus + delta + fieldCount) % fieldCount

	if fieldSpecs[m.focus].kind != kindSelect {
		m.values[m.focus].input.Focus()
	}
}

// submit validates the form and starts the prediction request.
func (m Model) submit() (Model, tea.Cmd) {
	req, err := m.buildRequest()
	if err != nil {
		m.lastErr = err.Error()
		return m, nil
	}

	m.lastErr = ""
	m.busy = true
	return m, tea.Batch(
		predictCmd(m.client, req),
		m.spinner.Start(),
	)
}

// handleResult settles the in-flight request. The form is re-enabled on
// every path.
func (m Model) handleResult(msg ResultMsg) (Model, tea.Cmd) {
	m.busy = false
	m.spinner.Stop()

	switch {
	case msg.Err != nil:
		if api.IsUnreachable(msg.Err) || api.IsTimeout(msg.Err) {
			m.lastErr = "Can't reach the prediction service. Is the backend running?"
		} else {
			m.lastErr = msg.Err.Error()
		}

	case !msg.Response.Success:
		reason := msg.Response.Error
		if reason == "" {
			reason = "prediction failed"
		}
		m.lastErr = reason

	default:
		m.lastErr = ""
		m.result = model.NewPredictionView(msg.Response)
	}

	return m, nil
}
