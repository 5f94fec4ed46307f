// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/config"
	"github.com/jeranaias/carecost-tui/internal/session"
	"github.com/jeranaias/carecost-tui/internal/ui/charts"
	"github.com/jeranaias/carecost-tui/internal/ui/chat"
	"github.com/jeranaias/carecost-tui/internal/ui/components"
	"github.com/jeranaias/carecost-tui/internal/ui/predict"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

func newTestRoot(t *testing.T) *Model {
	t.Helper()

	cfg := config.Default()
	theme := styles.NewTheme()
	client := api.NewClient()

	m := &Model{
		cfg:       cfg,
		theme:     theme,
		client:    client,
		predict:   predict.New(client, theme),
		chat:      chat.New(client, theme, cfg),
		charts:    charts.New(client, theme, cfg),
		active:    PanelPredict,
		statusBar: components.NewStatusBar(theme),
		toasts:    components.NewToastManager(),
		tracker:   session.NewTracker(),
		user:      session.Anonymous(),
	}
	m.width = 120
	m.height = 40
	m.ready = true
	m.layout()
	return m
}

func TestPanelFromConfig(t *testing.T) {
	tests := []struct {
		name string
		want Panel
	}{
		{"predict", PanelPredict},
		{"chat", PanelChat},
		{"charts", PanelCharts},
		{"", PanelPredict},
		{"bogus", PanelPredict},
	}

	for _, tc := range tests {
		if got := panelFromConfig(tc.name); got != tc.want {
			t.Errorf("panelFromConfig(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCyclePanel_RadioSemantics(t *testing.T) {
	m := newTestRoot(t)

	next, _ := m.cyclePanel(1)
	m = next.(*Model)
	if m.active != PanelChat {
		t.Errorf("after one tab, active = %v, want chat", m.active)
	}

	next, _ = m.cyclePanel(1)
	m = next.(*Model)
	if m.active != PanelCharts {
		t.Errorf("after two tabs, active = %v, want charts", m.active)
	}

	next, _ = m.cyclePanel(1)
	m = next.(*Model)
	if m.active != PanelPredict {
		t.Errorf("tab should wrap back to predict, got %v", m.active)
	}
}

func TestCyclePanel_ChartsLoadLazilyOnce(t *testing.T) {
	m := newTestRoot(t)

	// predict -> chat -> charts: first visit starts a load
	next, _ := m.cyclePanel(1)
	m = next.(*Model)
	next, cmd := m.cyclePanel(1)
	m = next.(*Model)

	if m.active != PanelCharts {
		t.Fatalf("active = %v, want charts", m.active)
	}
	if cmd == nil {
		t.Error("first visit to charts should start a fetch")
	}
	if !m.chartsLoaded {
		t.Error("chartsLoaded should be set after the first visit")
	}

	// leave and come back: no second automatic load
	next, _ = m.cyclePanel(1)
	m = next.(*Model)
	next, _ = m.cyclePanel(1)
	m = next.(*Model)
	next, cmd = m.cyclePanel(1)
	m = next.(*Model)

	if m.active != PanelCharts {
		t.Fatalf("active = %v, want charts", m.active)
	}
	if cmd != nil {
		t.Error("revisiting charts should not refetch automatically")
	}
}

func TestCyclePanel_DoesNotClearPanelState(t *testing.T) {
	m := newTestRoot(t)
	before := m.chat.Transcript()

	next, _ := m.cyclePanel(1)
	m = next.(*Model)
	next, _ = m.cyclePanel(-1)
	m = next.(*Model)

	if m.chat.Transcript() != before {
		t.Error("switching panels must not recreate panel state")
	}
}

func TestHandleConfigReload_BackendChangeSwapsClient(t *testing.T) {
	m := newTestRoot(t)
	oldClient := m.client

	cfg := config.Default()
	cfg.Backend.BaseURL = "http://other:5000"

	next, cmd := m.handleConfigReload(cfg)
	m = next.(*Model)

	if m.client == oldClient {
		t.Error("backend URL change should build a new client")
	}
	if m.client.BaseURL() != "http://other:5000" {
		t.Errorf("client BaseURL = %q", m.client.BaseURL())
	}
	if cmd == nil {
		t.Error("backend change should re-probe reachability")
	}
	if !m.toasts.HasToasts() {
		t.Error("backend change should announce itself")
	}
}

func TestHandleConfigReload_SameURLKeepsClient(t *testing.T) {
	m := newTestRoot(t)
	oldClient := m.client

	next, _ := m.handleConfigReload(config.Default())
	m = next.(*Model)

	if m.client != oldClient {
		t.Error("reload without a URL change should keep the client")
	}
}

func TestSessionTick_ClockShowsElapsedTime(t *testing.T) {
	m := newTestRoot(t)

	next, cmd := m.Update(session.TickMsg{})
	m = next.(*Model)

	if m.statusBar.Clock == "" {
		t.Fatal("tick should fill in the session clock")
	}
	if strings.Contains(m.statusBar.Clock, ":") {
		t.Errorf("clock should show elapsed session time, not wall time, got %q", m.statusBar.Clock)
	}
	if cmd == nil {
		t.Error("tick should re-arm itself")
	}
}

func TestPredictionTransportFailure_OffersRetry(t *testing.T) {
	m := newTestRoot(t)

	req := &api.PredictionRequest{Age: 30}
	next, _ := m.handlePredictionResult(predict.ResultMsg{Request: req, Err: api.ErrUnreachable})
	m = next.(*Model)

	if !m.backendDown {
		t.Error("an unreachable prediction should mark the backend down")
	}
	if m.toasts.TakeRetry() == nil {
		t.Fatal("transport failure should show a retryable toast")
	}
}

func TestPredictionValidationFailure_NoRetryToast(t *testing.T) {
	m := newTestRoot(t)

	next, _ := m.handlePredictionResult(predict.ResultMsg{Err: errBoom{}})
	m = next.(*Model)

	if !m.toasts.HasToasts() {
		t.Error("a failed prediction should still announce itself")
	}
	if m.toasts.TakeRetry() != nil {
		t.Error("non-transport failures must not offer a blind resend")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestCtrlR_ResendsFromRetryToast(t *testing.T) {
	m := newTestRoot(t)
	m.toasts.AddToast(components.NewRetryableErrorToast("prediction failed",
		func() tea.Msg { return "resent" }))

	next, cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(*Model)

	if cmd == nil {
		t.Fatal("ctrl+r should run the toast's retry command")
	}
	if m.toasts.TakeRetry() != nil {
		t.Error("the retry toast should be consumed on ctrl+r")
	}
}

func TestBackendRecovery_AnnouncesSuccess(t *testing.T) {
	m := newTestRoot(t)
	m.backendDown = true

	next, _ := m.Update(BackendCheckMsg{})
	m = next.(*Model)

	if m.backendDown {
		t.Error("a clean probe should clear the down flag")
	}

	var found bool
	for _, toast := range m.toasts.GetToasts() {
		if toast.Kind == components.ToastKindSuccess {
			found = true
		}
	}
	if !found {
		t.Error("recovery should show a success toast")
	}
}

func TestView_RendersTabsAndStatusBar(t *testing.T) {
	m := newTestRoot(t)

	view := m.View()
	for _, want := range []string{"carecost", "predict", "chat", "charts"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
