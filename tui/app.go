package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ittoolkit/itk/internal/logging"
	"github.com/ittoolkit/itk/internal/sysinfo"
	"github.com/ittoolkit/itk/internal/toolkit"
)

var log = logging.L("tui")

const appTitle = "ITToolKit"

type actionDoneMsg struct {
	action  toolkit.Action
	outcome toolkit.Outcome
}

type hostInfoMsg string

// pendingAction is an action waiting on confirmation or input.
type pendingAction struct {
	action toolkit.Action
	inputs toolkit.Inputs
	next   int
}

// AppModel is the tabbed toolkit window.
type AppModel struct {
	ctx context.Context
	tk  *toolkit.Toolkit

	tabs      []toolkit.Tab
	activeTab int
	cursors   []int

	dialog  *dialog
	queued  []*dialog
	pending *pendingAction

	busy       bool
	busyAction string
	spinner    spinner.Model
	status     string

	health healthPane
	logs   logPane

	host     string
	width    int
	height   int
	quitting bool
}

// NewAppModel builds the interface. logUpdates feeds the log viewer and is
// usually toolkit.Log().Watch.
func NewAppModel(ctx context.Context, tk *toolkit.Toolkit, logUpdates <-chan string) AppModel {
	InitCommonStyles(os.Stdout)

	tabs := toolkit.Tabs()
	return AppModel{
		ctx:     ctx,
		tk:      tk,
		tabs:    tabs,
		cursors: make([]int, len(tabs)),
		spinner: NewPrimarySpinner(),
		health:  newHealthPane(),
		logs:    newLogPane(logUpdates),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForLog(m.logs.updates), fetchHostInfo(m.ctx))
}

func fetchHostInfo(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		summary, err := sysinfo.Collect(ctx)
		if err != nil {
			log.Debug("host info unavailable", logging.KeyError, err)
			return hostInfoMsg("")
		}
		return hostInfoMsg(summary.String())
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case hostInfoMsg:
		m.host = string(msg)
		return m, nil

	case logContentMsg:
		return m, m.logs.set(string(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		return m.handleOutcome(msg), nil

	case healthEventMsg:
		return m, m.health.apply(msg.event)

	case healthDoneMsg:
		m.health.finish(msg)
		if msg.err != nil {
			m.showDialog(newMessageDialog("Error", msg.err.Error(), true))
			return m, nil
		}
		out := msg.summary.Outcome()
		if out.Cancelled {
			m.status = RenderWarningSimple(out.Message)
			return m, nil
		}
		m.showDialog(newMessageDialog(out.Title, out.Message, false))
		return m, nil

	case tea.KeyMsg:
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.logs.scroll(msg)
	}

	if m.dialog != nil {
		return m, m.dialog.Update(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.health.stop()
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.health.running {
			m.health.stop()
		}

	case "tab", "right", "l":
		m.activeTab = (m.activeTab + 1) % len(m.tabs)

	case "shift+tab", "left", "h":
		m.activeTab = (m.activeTab - 1 + len(m.tabs)) % len(m.tabs)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if i := int(msg.String()[0] - '1'); i < len(m.tabs) {
			m.activeTab = i
		}

	case "up", "k":
		if m.cursors[m.activeTab] > 0 {
			m.cursors[m.activeTab]--
		}

	case "down", "j":
		if m.cursors[m.activeTab] < len(m.tabs[m.activeTab].Actions)-1 {
			m.cursors[m.activeTab]++
		}

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		return m, m.logs.scroll(msg)

	case "enter", " ":
		return m.activate(m.tabs[m.activeTab].Actions[m.cursors[m.activeTab]])
	}

	return m, nil
}

// activate starts the button's flow: confirmation, then inputs, then run.
func (m AppModel) activate(a toolkit.Action) (tea.Model, tea.Cmd) {
	if m.busy {
		m.status = RenderWarningSimple(fmt.Sprintf("Waiting for %s to finish", m.busyAction))
		return m, nil
	}

	log.Debug("action selected", logging.KeyAction, a.ID)

	if a.Streaming {
		if m.health.running || m.tk.Scanning() {
			m.showDialog(newMessageDialog("Error", toolkit.ErrScanRunning.Error(), true))
			return m, nil
		}
		m.status = ""
		return m, m.health.start(m.ctx, m.tk)
	}

	m.pending = &pendingAction{action: a, inputs: toolkit.Inputs{}}
	if a.Confirm != "" {
		m.dialog = newConfirmDialog("Warning", a.Confirm)
		return m, nil
	}
	return m.advance()
}

// advance prompts for the next missing input or runs the pending action.
func (m AppModel) advance() (AppModel, tea.Cmd) {
	p := m.pending
	if p == nil {
		return m, nil
	}

	if p.next < len(p.action.Inputs) {
		in := p.action.Inputs[p.next]
		m.dialog = newInputDialog(in.Title, in.Prompt, in.Secret, in.Optional, in.Validate)
		return m, m.dialog.input.Focus()
	}

	m.pending = nil
	m.busy = true
	m.busyAction = p.action.Label
	m.status = ""
	return m, runAction(m.ctx, m.tk, p.action, p.inputs)
}

func runAction(ctx context.Context, tk *toolkit.Toolkit, a toolkit.Action, in toolkit.Inputs) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{action: a, outcome: tk.Execute(ctx, a, in)}
	}
}

func (m AppModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	cmd := d.Update(msg)
	if !d.closed {
		return m, cmd
	}
	m.dialog = nil

	// Only confirm and input dialogs answer for the pending action.
	p := m.pending
	if p == nil || d.kind == dialogMessage {
		m.nextDialog()
		return m, cmd
	}

	if !d.result.accepted {
		m.pending = nil
		m.status = RenderWarningSimple(p.action.Label + " cancelled")
		m.nextDialog()
		return m, nil
	}

	if d.kind == dialogInput {
		p.inputs[p.action.Inputs[p.next].Key] = d.result.value
		p.next++
	}
	m, cmd = m.advance()
	m.nextDialog()
	return m, cmd
}

// showDialog opens d, or queues it behind the dialog already on screen.
func (m *AppModel) showDialog(d *dialog) {
	if m.dialog != nil {
		m.queued = append(m.queued, d)
		return
	}
	m.dialog = d
}

// nextDialog opens the oldest queued dialog once the screen is free.
func (m *AppModel) nextDialog() {
	if m.dialog != nil || len(m.queued) == 0 {
		return
	}
	m.dialog = m.queued[0]
	m.queued = m.queued[1:]
}

func (m AppModel) handleOutcome(msg actionDoneMsg) AppModel {
	m.busy = false
	m.busyAction = ""
	out := msg.outcome

	switch {
	case out.Cancelled:
		m.status = RenderWarningSimple(out.Message)
	case out.Failed():
		if errors.Is(out.Err, context.Canceled) && m.ctx.Err() != nil {
			return m
		}
		m.status = RenderErrorMessage(msg.action.Label + " failed")
		m.showDialog(newMessageDialog(out.Title, out.Message, true))
	case out.Title == "Done":
		m.status = RenderSuccessSimple(out.Message)
	default:
		m.status = RenderSuccessSimple(msg.action.Label)
		m.showDialog(newMessageDialog(out.Title, out.Message, false))
	}
	return m
}

// layout splits the terminal between the tab body and the log viewer.
func (m *AppModel) layout() {
	w := max(20, m.width-2)
	logHeight := max(4, m.height/3)
	m.logs.resize(w, logHeight)

	// header, tab bar, button, progress, help and log label take ~14 rows
	bodyHeight := max(4, m.height-logHeight-14)
	m.health.resize(w, bodyHeight)
}

func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(primaryTitleStyle.Render(appTitle))
	if m.host != "" {
		b.WriteString("  ")
		b.WriteString(subtleTextStyle.Render(m.host))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.dialog != nil {
		b.WriteString(m.dialog.View(m.width))
	} else {
		b.WriteString(m.renderBody())
	}
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(labelStyle.Bold(false).Render("Running " + m.busyAction + "..."))
	} else if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n\n")

	b.WriteString(m.logs.View())
	b.WriteString("\n")
	b.WriteString(helpStyleTUI.Render("←/→: Tabs  ↑/↓: Select  Enter: Run  PgUp/PgDn: Scroll log  Q: Quit"))

	return b.String()
}

func (m AppModel) renderTabs() string {
	rendered := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Title)
		if i == m.activeTab {
			rendered[i] = activeTabStyle.Render(label)
		} else {
			rendered[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}

func (m AppModel) renderBody() string {
	tab := m.tabs[m.activeTab]
	cursor := m.cursors[m.activeTab]

	var b strings.Builder
	for i, a := range tab.Actions {
		label := a.Label
		if a.Streaming && m.health.running {
			label += " (running)"
		}
		if i == cursor {
			b.WriteString(activeButtonStyle.Render("▶ " + label))
		} else {
			b.WriteString(buttonStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}

	if hasStreaming(tab) {
		b.WriteString("\n")
		b.WriteString(m.health.View())
		b.WriteString("\n")
	}
	return b.String()
}

func hasStreaming(tab toolkit.Tab) bool {
	for _, a := range tab.Actions {
		if a.Streaming {
			return true
		}
	}
	return false
}

// RunApp runs the interface until the user quits.
func RunApp(ctx context.Context, tk *toolkit.Toolkit, logUpdates <-chan string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewAppModel(ctx, tk, logUpdates)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
