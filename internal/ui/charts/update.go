// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charts

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/carecost-tui/internal/api"
)

// DataMsg is the settled result of a visualization fetch.
type DataMsg struct {
	Data *api.VisualizationData
	Err  error
}

// loadCmd fetches the six datasets from the backend.
func loadCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		data, err := client.Visualizations(context.Background())
		return DataMsg{Data: data, Err: err}
	}
}

// Load starts a fetch. Safe to call again for a reload.
func (m Model) Load() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	m.lastErr = ""
	return m, tea.Batch(loadCmd(m.client), m.spinner.Start())
}

// Update handles panel messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			return m.Load()
		}

	case DataMsg:
		return m.handleData(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleData settles a fetch: live data on success, the sample fixture on
// any failure. The viewport content is rebuilt from scratch either way so
// nothing from a previous load survives.
func (m Model) handleData(msg DataMsg) (Model, tea.Cmd) {
	m.loading = false
	m.spinner.Stop()

	if msg.Err != nil || msg.Data == nil {
		if m.sampleFallback {
			m.data = sampleVisualizations()
			m.source = SourceSample
		} else {
			m.data = nil
			m.source = SourceNone
		}
		if msg.Err != nil {
			m.lastErr = msg.Err.Error()
		}
	} else {
		m.data = msg.Data
		m.source = SourceLive
		m.lastErr = ""
	}

	m.refreshViewport()
	m.viewport.GotoTop()
	return m, nil
}
