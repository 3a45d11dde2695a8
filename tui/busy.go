package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type BusyDoneMsg struct{}

// BusyModel shows a spinner while a CLI subcommand waits on an OS tool.
type BusyModel struct {
	text     string
	spin     spinner.Model
	Quitting bool

	styles busyStyles
}

type busyStyles struct {
	text lipgloss.Style
	help lipgloss.Style
}

func newBusyStyles() busyStyles {
	return busyStyles{
		text: LabelStyle().Bold(false),
		help: HelpStyle(),
	}
}

func NewBusyModel(text string) BusyModel {
	InitCommonStyles(os.Stdout)
	return BusyModel{
		text:   text,
		spin:   NewPrimarySpinner(),
		styles: newBusyStyles(),
	}
}

func (m BusyModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m BusyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BusyDoneMsg:
		m.Quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BusyModel) View() string {
	if m.Quitting {
		return ""
	}
	return m.spin.View() + " " + m.styles.text.Render(m.text) + "\n"
}

// RunBusy shows a spinner labelled text on out while fn runs. When out is not
// a terminal the spinner is skipped.
func RunBusy(out io.Writer, text string, fn func()) {
	f, ok := out.(*os.File)
	if !ok || !isTerminal(f) {
		fn()
		return
	}

	bp := tea.NewProgram(NewBusyModel(text), tea.WithOutput(out), tea.WithInput(nil))
	busyDone := make(chan struct{})
	go func() {
		_, _ = bp.Run()
		close(busyDone)
	}()

	fn()

	bp.Send(BusyDoneMsg{})
	<-busyDone
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
