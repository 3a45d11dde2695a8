package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ittoolkit/itk/internal/toolkit"
	"github.com/ittoolkit/itk/tui/theme"
)

type healthEventMsg struct {
	event toolkit.HealthEvent
}

type healthDoneMsg struct {
	summary toolkit.HealthSummary
	err     error
}

// healthPane holds the scan output and progress for the Win Image Fix tab.
type healthPane struct {
	lines    []string
	done     int
	total    int
	running  bool
	output   viewport.Model
	progress progress.Model

	events <-chan tea.Msg
	cancel context.CancelFunc
}

func newHealthPane() healthPane {
	vp := viewport.New(60, 10)
	vp.Style = paneStyle

	p := progress.New(
		progress.WithGradient(theme.ButtonColor, theme.PrimaryColor),
		progress.WithWidth(40),
	)

	return healthPane{
		total:    len(toolkit.HealthCommands),
		output:   vp,
		progress: p,
	}
}

// start launches the scan on its own goroutine. Events are buffered so a
// chatty sfc run never blocks on a slow render.
func (h *healthPane) start(parent context.Context, tk *toolkit.Toolkit) tea.Cmd {
	ctx, cancel := context.WithCancel(parent)
	events := make(chan tea.Msg, 256)

	h.lines = nil
	h.done = 0
	h.running = true
	h.events = events
	h.cancel = cancel
	h.refresh()

	// Sends give up once the whole program is shutting down.
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-parent.Done():
		}
	}

	go func() {
		defer close(events)
		defer cancel()
		summary, err := tk.HealthScan(ctx, func(e toolkit.HealthEvent) {
			send(healthEventMsg{event: e})
		})
		send(healthDoneMsg{summary: summary, err: err})
	}()

	return waitForHealth(events)
}

func waitForHealth(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// stop cancels a running scan. The goroutine reports completion through the
// usual healthDoneMsg.
func (h *healthPane) stop() {
	if h.cancel != nil {
		h.cancel()
	}
}

func (h *healthPane) apply(e toolkit.HealthEvent) tea.Cmd {
	h.lines = append(h.lines, e.Text())
	if e.Completed() {
		h.done = e.Step
	}
	if e.Total > 0 {
		h.total = e.Total
	}
	h.refresh()
	return waitForHealth(h.events)
}

func (h *healthPane) finish(msg healthDoneMsg) {
	h.running = false
	h.events = nil
	h.cancel = nil
	if msg.err != nil {
		h.lines = append(h.lines, fmt.Sprintf("[!] Error: %v", msg.err))
	} else if msg.summary.Cancelled {
		h.lines = append(h.lines, "[!] Cancelled")
	}
	h.refresh()
}

func (h *healthPane) percent() float64 {
	if h.total == 0 {
		return 0
	}
	return float64(h.done) / float64(h.total)
}

func (h *healthPane) resize(width, height int) {
	h.output.Width = width
	h.output.Height = height
	h.progress.Width = min(60, max(10, width-12))
	h.refresh()
}

func (h *healthPane) refresh() {
	h.output.SetContent(strings.Join(h.lines, "\n"))
	h.output.GotoBottom()
}

func (h healthPane) View() string {
	var b strings.Builder
	b.WriteString(h.output.View())
	b.WriteString("\n")
	b.WriteString(h.progress.ViewAs(h.percent()))
	b.WriteString(subtleTextStyle.Render(fmt.Sprintf("  %d/%d", h.done, h.total)))
	if h.running {
		b.WriteString("\n")
		b.WriteString(helpStyleTUI.Render("Esc: Cancel scan"))
	}
	return b.String()
}
