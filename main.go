// carecost TUI - health insurance cost estimates in your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/cli"
	"github.com/jeranaias/carecost-tui/internal/config"
	"github.com/jeranaias/carecost-tui/internal/history"
	"github.com/jeranaias/carecost-tui/internal/session"
	"github.com/jeranaias/carecost-tui/internal/ui/charts"
	"github.com/jeranaias/carecost-tui/internal/ui/chat"
	"github.com/jeranaias/carecost-tui/internal/ui/components"
	"github.com/jeranaias/carecost-tui/internal/ui/predict"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	// Make build-time version info visible to the CLI handlers.
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdChat:
		cli.HandleErrorAndExit(cli.HandleChat(args), args.JSON)
	case cli.CmdStatus:
		cli.HandleErrorAndExit(cli.HandleStatus(args), args.JSON)
	case cli.CmdHistory:
		cli.HandleErrorAndExit(cli.HandleHistory(args), args.JSON)
	case cli.CmdConfig:
		cli.HandleErrorAndExit(cli.HandleConfig(args), args.JSON)
	case cli.CmdLogout:
		cli.HandleErrorAndExit(cli.HandleLogout(args), args.JSON)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// =============================================================================
// PANELS
// =============================================================================

// Panel identifies the active TUI panel.
type Panel int

const (
	PanelPredict Panel = iota
	PanelChat
	PanelCharts
)

func (p Panel) String() string {
	switch p {
	case PanelPredict:
		return "predict"
	case PanelChat:
		return "chat"
	case PanelCharts:
		return "charts"
	default:
		return "unknown"
	}
}

// panelOrder is the Tab cycling order, matching the panel tabs left to right.
var panelOrder = []Panel{PanelPredict, PanelChat, PanelCharts}

func panelFromConfig(name string) Panel {
	switch name {
	case "chat":
		return PanelChat
	case "charts":
		return PanelCharts
	default:
		return PanelPredict
	}
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// Model is the root TUI model. It owns the three panels, the status bar,
// the toast stack, and the cross-panel plumbing (history recording, session
// identity, backend reachability).
type Model struct {
	cfg    *config.Config
	theme  *styles.Theme
	client *api.Client

	predict predict.Model
	chat    chat.Model
	charts  charts.Model

	active       Panel
	chartsLoaded bool
	backendDown  bool

	statusBar *components.StatusBar
	toasts    *components.ToastManager
	tracker   *session.Tracker
	user      session.UserSession

	historyStore *history.Store

	width  int
	height int
	ready  bool
}

func initialModel(args cli.Args) *Model {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	if args.Backend != "" {
		cfg.Backend.BaseURL = args.Backend
	}

	theme := styles.NewTheme()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	})

	user := loadUserSession()

	m := &Model{
		cfg:       cfg,
		theme:     theme,
		client:    client,
		predict:   predict.New(client, theme),
		chat:      chat.New(client, theme, cfg),
		charts:    charts.New(client, theme, cfg),
		active:    panelFromConfig(cfg.UI.DefaultPanel),
		statusBar: components.NewStatusBar(theme),
		toasts:    components.NewToastManager(),
		tracker:   session.NewTracker(),
		user:      user,
	}

	m.statusBar.SetBackend(cfg.Backend.BaseURL, false)
	m.statusBar.SetUser(user.DisplayName())
	m.statusBar.SetPanel(m.active.String())
	m.predict.SetShowBreakdown(cfg.UI.ShowModelBreakdown)

	if !user.IsAnonymous() {
		m.predict.SetUserEmail(user.Email)
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
		if err == nil {
			m.historyStore = store
		}
	}

	return m
}

// loadUserSession reads the stored user session, anonymous on any failure.
func loadUserSession() session.UserSession {
	path, err := session.DefaultSessionPath()
	if err != nil {
		return session.Anonymous()
	}
	store, err := session.NewStore(path)
	if err != nil {
		return session.Anonymous()
	}
	user, err := store.Load()
	if err != nil {
		return session.Anonymous()
	}
	return user
}

// =============================================================================
// MESSAGES AND COMMANDS
// =============================================================================

// BackendCheckMsg reports the startup reachability probe.
type BackendCheckMsg struct {
	Err error
}

// StatisticsMsg carries the fire-and-forget dataset statistics load.
type StatisticsMsg struct {
	Stats *api.Statistics
	Err   error
}

// HistoryRecordedMsg reports an async history write.
type HistoryRecordedMsg struct {
	Count int
	Err   error
}

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

func (m *Model) checkBackendCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return BackendCheckMsg{Err: client.CheckRunning(ctx)}
	}
}

func (m *Model) loadStatisticsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		stats, err := client.Statistics(ctx)
		return StatisticsMsg{Stats: stats, Err: err}
	}
}

// recordHistoryCmd persists a settled prediction and reports the new count.
func (m *Model) recordHistoryCmd(req *api.PredictionRequest, resp *api.PredictionResponse) tea.Cmd {
	store := m.historyStore
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := store.Record(ctx, req, resp); err != nil {
			return HistoryRecordedMsg{Err: err}
		}
		count, err := store.Count(ctx)
		if err != nil {
			return HistoryRecordedMsg{Err: err}
		}
		return HistoryRecordedMsg{Count: count}
	}
}

// =============================================================================
// TEA LIFECYCLE
// =============================================================================

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.checkBackendCmd(),
		m.loadStatisticsCmd(),
		session.TickCmd(),
		components.ToastTickCmd(),
	}
	if m.active == PanelCharts {
		var cmd tea.Cmd
		m.charts, cmd = m.charts.Load()
		m.chartsLoaded = true
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		m.tracker.RecordActivity()
		return m.handleKeyPress(msg)

	case session.TickMsg:
		m.statusBar.SetClock(session.FormatDuration(m.tracker.Duration()))
		m.syncStatus()
		return m, session.TickCmd()

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case BackendCheckMsg:
		up := msg.Err == nil
		m.statusBar.SetBackend(m.cfg.Backend.BaseURL, up)
		if !up {
			if !m.backendDown {
				m.backendDown = true
				m.toasts.AddWarning("Prediction backend is not reachable. Estimates and chat will fail until it is started.")
				return m, components.ToastTickCmd()
			}
			return m, nil
		}
		if m.backendDown {
			m.backendDown = false
			m.toasts.AddSuccess("Backend is reachable again")
			return m, components.ToastTickCmd()
		}
		return m, nil

	case StatisticsMsg:
		// Best-effort warmup; failures are already covered by the
		// reachability toast.
		return m, nil

	case HistoryRecordedMsg:
		if msg.Err == nil {
			m.statusBar.SetHistoryCount(msg.Count)
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg.Config)

	case predict.ResultMsg:
		return m.handlePredictionResult(msg)

	case chat.ReplyMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		m.syncStatus()
		return m, cmd

	case charts.DataMsg:
		var cmd tea.Cmd
		m.charts, cmd = m.charts.Update(msg)
		m.syncStatus()
		return m, cmd
	}

	return m.updateActivePanel(msg)
}

// handlePredictionResult forwards the settled prediction to the form and
// records successful estimates in local history.
func (m *Model) handlePredictionResult(msg predict.ResultMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.predict, cmd = m.predict.Update(msg)
	cmds = append(cmds, cmd)
	m.syncStatus()

	if msg.Err != nil {
		if msg.Request != nil && (api.IsUnreachable(msg.Err) || api.IsTimeout(msg.Err)) {
			m.backendDown = true
			m.statusBar.SetBackend(m.cfg.Backend.BaseURL, false)
			m.toasts.AddToast(components.NewRetryableErrorToast(
				"Prediction failed: backend unreachable",
				predict.ResendCmd(m.client, msg.Request)))
		} else {
			m.toasts.AddError("Prediction failed: " + msg.Err.Error())
		}
		cmds = append(cmds, components.ToastTickCmd())
		return m, tea.Batch(cmds...)
	}

	// Any settled response proves the backend is back.
	if m.backendDown {
		m.backendDown = false
		m.statusBar.SetBackend(m.cfg.Backend.BaseURL, true)
		m.toasts.AddSuccess("Backend is reachable again")
		cmds = append(cmds, components.ToastTickCmd())
	}

	if msg.Response != nil && msg.Response.Success &&
		m.historyStore != nil && msg.Request != nil {
		cmds = append(cmds, m.recordHistoryCmd(msg.Request, msg.Response))
	}

	return m, tea.Batch(cmds...)
}

// handleConfigReload applies a changed config file without a restart. A
// backend URL change swaps the client and re-probes reachability; panels
// keep their transient state.
func (m *Model) handleConfigReload(cfg *config.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}

	urlChanged := cfg.Backend.BaseURL != m.cfg.Backend.BaseURL
	m.cfg = cfg

	if urlChanged {
		m.client = api.NewClientWithConfig(&api.ClientConfig{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		})
		m.predict.SetClient(m.client)
		m.chat.SetClient(m.client)
		m.charts.SetClient(m.client)
		m.statusBar.SetBackend(cfg.Backend.BaseURL, false)
		m.toasts.AddStatus("Backend changed to " + cfg.Backend.BaseURL)
		return m, tea.Batch(m.checkBackendCmd(), components.ToastTickCmd())
	}

	m.toasts.AddStatus("Configuration reloaded")
	return m, components.ToastTickCmd()
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.historyStore != nil {
			m.historyStore.Close()
		}
		return m, tea.Quit

	case "tab":
		return m.cyclePanel(1)

	case "ctrl+p":
		return m.cyclePanel(-1)

	case "ctrl+r":
		if retry := m.toasts.TakeRetry(); retry != nil {
			return m, tea.Batch(retry, components.ToastTickCmd())
		}
	}

	return m.updateActivePanel(msg)
}

// cyclePanel moves to the next panel in tab order. The charts panel loads
// its data lazily on first visit.
func (m *Model) cyclePanel(delta int) (tea.Model, tea.Cmd) {
	idx := 0
	for i, p := range panelOrder {
		if p == m.active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(panelOrder)) % len(panelOrder)
	m.active = panelOrder[idx]
	m.statusBar.SetPanel(m.active.String())
	m.syncStatus()

	if m.active == PanelCharts && !m.chartsLoaded {
		var cmd tea.Cmd
		m.charts, cmd = m.charts.Load()
		m.chartsLoaded = true
		return m, cmd
	}
	return m, nil
}

// updateActivePanel forwards a message to the panel that owns the focus.
func (m *Model) updateActivePanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case PanelPredict:
		m.predict, cmd = m.predict.Update(msg)
	case PanelChat:
		m.chat, cmd = m.chat.Update(msg)
	case PanelCharts:
		m.charts, cmd = m.charts.Update(msg)
	}

	m.syncStatus()
	return m, cmd
}

// idleAfter is how long without input before the status bar shows Idle.
const idleAfter = 2 * time.Minute

// syncStatus mirrors panel activity into the status bar.
func (m *Model) syncStatus() {
	switch {
	case m.predict.Busy():
		m.statusBar.SetStatus(components.StatusCalculating)
	case m.chat.Busy():
		m.statusBar.SetStatus(components.StatusThinking)
	case m.charts.Loading():
		m.statusBar.SetStatus(components.StatusLoading)
	case m.tracker.IdleTime() >= idleAfter:
		m.statusBar.SetStatus(components.StatusIdle)
	default:
		m.statusBar.SetStatus(components.StatusReady)
	}
}

// layout distributes the window between header, panel, and status bar.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)
	m.statusBar.SetWidth(m.width)

	panelHeight := m.height - 3 // header + tabs above, status bar below
	if panelHeight < 5 {
		panelHeight = 5
	}

	m.predict.SetSize(m.width, panelHeight)
	m.chat.SetSize(m.width, panelHeight)
	m.charts.SetSize(m.width, panelHeight)
}

// =============================================================================
// VIEW
// =============================================================================

func (m *Model) View() string {
	if !m.ready {
		return "Starting carecost..."
	}

	var panel string
	switch m.active {
	case PanelPredict:
		panel = m.predict.View()
	case PanelChat:
		panel = m.chat.View()
	case PanelCharts:
		panel = m.charts.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		panel,
		m.statusBar.View(),
	)

	if m.toasts.HasToasts() {
		overlay := components.RenderToastStack(m.toasts.GetToasts(), m.width, m.height)
		view = lipgloss.JoinVertical(lipgloss.Left, view, overlay)
	}

	return view
}

// renderHeader renders the title and the panel tabs.
func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("carecost")

	tabs := make([]string, 0, len(panelOrder))
	for _, p := range panelOrder {
		label := " " + p.String() + " "
		if p == m.active {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// =============================================================================
// ENTRY
// =============================================================================

func runTUI(args cli.Args) {
	m := initialModel(args)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Hot-reload config changes into the running program. Watch errors are
	// non-fatal; the TUI simply keeps the config it started with.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		_ = config.Watch(watchCtx,
			func(cfg *config.Config) { p.Send(ConfigReloadedMsg{Config: cfg}) },
			func(error) {})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
