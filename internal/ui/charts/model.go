// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charts

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/config"
	"github.com/jeranaias/carecost-tui/internal/ui/components"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

// Source says where the currently displayed datasets came from.
type Source int

const (
	SourceNone   Source = iota // Nothing loaded yet
	SourceLive                 // Fetched from the backend
	SourceSample               // Built-in fallback fixture
)

// Model is the visualizations panel.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	data    *api.VisualizationData
	source  Source
	loading bool
	lastErr string

	sampleFallback bool
	maxWidth       int

	viewport viewport.Model
	spinner  components.Spinner

	width  int
	height int
}

// New creates the panel. Nothing is fetched until Load.
func New(client *api.Client, theme *styles.Theme, cfg *config.Config) Model {
	vp := viewport.New(80, 20)

	m := Model{
		theme:          theme,
		client:         client,
		viewport:       vp,
		spinner:        components.NewChartLoadingSpinner(),
		sampleFallback: true,
		maxWidth:       100,
	}
	if cfg != nil {
		m.sampleFallback = cfg.Charts.SampleFallback
		if cfg.Charts.MaxWidth > 0 {
			m.maxWidth = cfg.Charts.MaxWidth
		}
	}
	return m
}

// SetSize updates the layout and re-renders the current content.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.refreshViewport()
}

// SetClient swaps the backend client after a config reload. The next
// reload fetches from the new URL.
func (m *Model) SetClient(client *api.Client) {
	m.client = client
}

// Loading reports whether a fetch is in flight.
func (m *Model) Loading() bool {
	return m.loading
}

// Source reports where the displayed data came from.
func (m *Model) Source() Source {
	return m.source
}
