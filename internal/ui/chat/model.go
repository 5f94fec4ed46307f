// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"golang.org/x/time/rate"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/config"
	"github.com/jeranaias/carecost-tui/internal/model"
	"github.com/jeranaias/carecost-tui/internal/ui/components"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat panel.
type State int

const (
	StateReady   State = iota // Ready for input
	StatePending              // A send is in flight
	StateError                // Showing an error
)

// InputMode selects between free text and the fixed option row.
type InputMode int

const (
	ModeText   InputMode = iota // Free-text input
	ModeOption                  // Fixed-option selection
)

// =============================================================================
// FIXED OPTIONS
// =============================================================================

// Option is one of the backend's fixed chat options. The value goes over
// the wire; the label is what the user sees.
type Option struct {
	Value string
	Label string
}

// Options are the four fixed options the backend understands.
var Options = []Option{
	{Value: "quick_estimate", Label: "Quick Estimate"},
	{Value: "health_tips", Label: "Health Tips"},
	{Value: "insurance_info", Label: "Insurance Info"},
	{Value: "cost_factors", Label: "Cost Factors"},
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat panel.
type Model struct {
	// State
	state      State
	inputMode  InputMode
	selected   int    // Index into Options when in ModeOption
	pendingID  string // Transcript ID of the in-flight user turn
	lastErr    string // Last error line for the status row
	statusNote string // Transient note (rate limit, etc.)

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	transcript *model.Transcript

	// Backend
	client *api.Client

	// Politeness limiter on sends
	limiter *rate.Limiter

	// Markdown rendering of AI replies
	markdown *glamour.TermRenderer

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	thinking components.ThinkingIndicator
}

// New creates a chat panel bound to the backend client.
func New(client *api.Client, theme *styles.Theme, cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask about insurance costs, coverage, or health tips..."
	input.CharLimit = 500
	input.Focus()

	vp := viewport.New(80, 20)

	perMinute := cfg.Chat.MessagesPerMinute
	if perMinute <= 0 {
		perMinute = 20
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)

	var renderer *glamour.TermRenderer
	if cfg.Chat.Markdown {
		// Fall back to plain text if the renderer cannot initialize
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(76),
		)
	}

	return Model{
		state:      StateReady,
		inputMode:  ModeText,
		theme:      theme,
		transcript: model.NewTranscript(),
		client:     client,
		limiter:    limiter,
		markdown:   renderer,
		viewport:   vp,
		input:      input,
		thinking:   components.NewThinkingIndicator(),
	}
}

// SetSize updates the panel dimensions and re-flows the viewport.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Input row (3 lines) + option row (1) + status row (1)
	viewportHeight := height - 5
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = viewportHeight
	m.refreshViewport()
}

// SetClient swaps the backend client after a config reload. The pending
// send, if any, settles against the old client.
func (m *Model) SetClient(client *api.Client) {
	m.client = client
}

// Busy reports whether a send is in flight.
func (m Model) Busy() bool {
	return m.state == StatePending
}

// Transcript exposes the transcript for the root model and tests.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// renderMarkdown renders an AI reply, falling back to the raw text when
// markdown rendering is disabled or fails.
func (m Model) renderMarkdown(text string) string {
	if m.markdown == nil {
		return text
	}
	rendered, err := m.markdown.Render(text)
	if err != nil {
		return text
	}
	return rendered
}
