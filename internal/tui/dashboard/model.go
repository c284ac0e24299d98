// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     dashboard
// Description: Main Bubbletea model for the LogMaster dashboard
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package dashboard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/logmaster/dashboard/internal/controller"
	"github.com/logmaster/dashboard/internal/filter"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/internal/projector"
	"github.com/logmaster/dashboard/pkg/core/config"
)

// Controller is what the model needs from the dashboard controller
type Controller interface {
	Display() projector.Display
	Views() []projector.View
	Dispatch(ctx context.Context, action controller.Action, args controller.Args) (controller.Result, error)
}

// Model is the main Bubbletea model of the dashboard
type Model struct {
	ctrl    Controller
	changes <-chan struct{}
	views   []projector.View
	display projector.Display

	// State
	width  int
	height int
	ready  bool
	busy   bool

	// Components
	viewport viewport.Model
	spinner  spinner.Model
	input    textinput.Model

	// editing is the filter key being typed, empty when not editing
	editing   string
	deviceIdx int

	status    string
	statusErr bool
}

// New creates a dashboard model. changes delivers a value whenever the
// controller state changed; it may be nil.
func New(ctrl Controller, changes <-chan struct{}) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	in := textinput.New()
	in.CharLimit = 128
	in.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctrl:    ctrl,
		changes: changes,
		views:   ctrl.Views(),
		display: ctrl.Display(),
		spinner: sp,
		input:   in,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForChange(),
		tick(),
	)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks until the controller reports a change
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return nil
		}
		return StateChangedMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing != "" {
			return m.handleInput(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 6
		footerHeight := 5
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case StateChangedMsg:
		m.refreshDisplay()
		cmds = append(cmds, m.waitForChange())

	case tickMsg:
		m.refreshDisplay()
		cmds = append(cmds, tick())

	case actionDoneMsg:
		m.busy = false
		m.setStatus(msg)
		m.refreshDisplay()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input outside of text entry
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		return m.show(m.viewOffset(1))
	case tea.KeyShiftTab:
		return m.show(m.viewOffset(-1))
	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil
	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	case tea.KeyUp:
		m.viewport.LineUp(1)
		return m, nil
	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	case tea.KeyRunes:
	default:
		return m, nil
	}

	key := string(msg.Runes)
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.views) {
		return m.show(m.views[n-1])
	}

	view := m.display.View
	switch key {
	case "q":
		return m, tea.Quit
	case "r":
		action := controller.ActionRefresh
		if m.panel().Retryable() {
			action = controller.ActionRetry
		}
		return m, m.dispatch(action, nil)
	}

	switch view {
	case projector.ViewLogs:
		return m.handleLogsKey(key)
	case projector.ViewActivity:
		if key == "d" {
			return m.cycleDevice()
		}
	case projector.ViewReports:
		if key == "g" && !m.busy {
			m.busy = true
			m.status = "Generating report..."
			m.statusErr = false
			return m, m.dispatch(controller.ActionGenerateReport, nil)
		}
	}
	return m, nil
}

func (m Model) handleLogsKey(key string) (tea.Model, tea.Cmd) {
	criteria := m.display.Logs.Filters

	switch key {
	case "a":
		return m, m.dispatch(controller.ActionToggleAutoRefresh, nil)
	case "c":
		return m, m.dispatch(controller.ActionClearFilters, nil)
	case "e":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.dispatch(controller.ActionExportCSV, nil)
	case "/":
		return m.startEditing(filter.KeySearch, criteria.Search)
	case "i":
		return m.startEditing(filter.KeyIP, criteria.IP)
	case "f":
		return m, m.setFilter(filter.KeyInterface, cycle(models.Interfaces, criteria.Interface))
	case "s":
		return m, m.setFilter(filter.KeySeverity, cycle(models.Severities, criteria.Severity))
	case "l":
		return m, m.setFilter(filter.KeyLimit, strconv.Itoa(nextLimit(criteria.Limit)))
	}
	return m, nil
}

// handleInput handles keys while a filter value is typed
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	case tea.KeyEnter:
		key, value := m.editing, strings.TrimSpace(m.input.Value())
		m.stopEditing()
		return m, m.setFilter(key, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEditing(key, value string) (tea.Model, tea.Cmd) {
	m.editing = key
	m.input.Prompt = key + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) stopEditing() {
	m.editing = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) show(v projector.View) (tea.Model, tea.Cmd) {
	m.viewport.GotoTop()
	return m, m.dispatch(controller.ActionShow, controller.Args{controller.ArgView: string(v)})
}

// cycleDevice selects the next device of the activity filter, "All" first
func (m Model) cycleDevice() (tea.Model, tea.Cmd) {
	opts := m.display.Activity.Options
	m.deviceIdx = (m.deviceIdx + 1) % (len(opts) + 1)

	id := ""
	if m.deviceIdx > 0 {
		id = opts[m.deviceIdx-1].Value
	}
	return m, m.dispatch(controller.ActionLoadLogs, controller.Args{controller.ArgDeviceID: id})
}

func (m Model) viewOffset(delta int) projector.View {
	cur := 0
	for i, v := range m.views {
		if v == m.display.View {
			cur = i
			break
		}
	}
	n := len(m.views)
	return m.views[((cur+delta)%n+n)%n]
}

func (m Model) setFilter(key, value string) tea.Cmd {
	return m.dispatch(controller.ActionSetFilter, controller.Args{
		controller.ArgKey:   key,
		controller.ArgValue: value,
	})
}

// dispatch runs an action off the event loop
func (m Model) dispatch(action controller.Action, args controller.Args) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		res, err := ctrl.Dispatch(context.Background(), action, args)
		return actionDoneMsg{action: action, result: res, err: err}
	}
}

func (m *Model) setStatus(msg actionDoneMsg) {
	switch {
	case msg.err != nil:
		m.status = msg.err.Error()
		m.statusErr = true
	case msg.result.Message != "":
		m.status = msg.result.Message
		m.statusErr = false
	case msg.action == controller.ActionGenerateReport || msg.action == controller.ActionExportCSV:
		m.status = ""
	}
}

func (m *Model) refreshDisplay() {
	m.display = m.ctrl.Display()
	m.updateViewportContent()
}

// updateViewportContent renders the active view into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderBody(m.display))
}

// panel returns the load state of the active view
func (m Model) panel() projector.Panel {
	d := m.display
	switch {
	case d.Dashboard != nil:
		return d.Dashboard.Panel
	case d.Logs != nil:
		return d.Logs.Panel
	case d.System != nil:
		return d.System.Panel
	case d.Discovery != nil:
		return d.Discovery.Panel
	case d.Overview != nil:
		return d.Overview.Panel
	case d.Activity != nil:
		return d.Activity.Panel
	case d.Devices != nil:
		return d.Devices.Panel
	case d.Signatures != nil:
		return d.Signatures.Panel
	case d.Archives != nil:
		return d.Archives.Panel
	case d.Reports != nil:
		return d.Reports.Panel
	case d.Compliance != nil:
		return d.Compliance.Panel
	}
	return projector.Panel{}
}

// cycle returns the value after current in values, wrapping to "" (all)
func cycle(values []string, current string) string {
	if current == "" {
		return values[0]
	}
	for i, v := range values {
		if v == current && i+1 < len(values) {
			return values[i+1]
		}
	}
	return ""
}

func nextLimit(current int) int {
	for i, l := range config.ValidLimits {
		if l == current {
			return config.ValidLimits[(i+1)%len(config.ValidLimits)]
		}
	}
	return filter.DefaultLimit
}

// Run starts the dashboard TUI and blocks until the user quits. The
// controller is started here; closing it is up to the caller.
func Run(ctrl *controller.Controller) error {
	changes := make(chan struct{}, 1)
	ctrl.OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err := ctrl.Start(); err != nil {
		return err
	}

	p := tea.NewProgram(New(ctrl, changes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
