package tui

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ittoolkit/itk/internal/toolkit"
)

// ErrNoTerminal is returned when a prompt is needed but stdin is not
// interactive.
var ErrNoTerminal = errors.New("input required but stdin is not a terminal")

// promptModel runs a single dialog as its own program for CLI subcommands.
type promptModel struct {
	d     *dialog
	width int
}

func (m promptModel) Init() tea.Cmd {
	if m.d.kind == dialogInput {
		return textinput.Blink
	}
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		return m, nil
	}
	cmd := m.d.Update(msg)
	if m.d.closed {
		return m, tea.Quit
	}
	return m, cmd
}

func (m promptModel) View() string {
	if m.d.closed {
		return ""
	}
	return m.d.View(m.width) + "\n"
}

func runDialog(d *dialog) (dialogResult, error) {
	if !isTerminal(os.Stdin) {
		return dialogResult{}, ErrNoTerminal
	}
	InitCommonStyles(os.Stdout)

	if _, err := tea.NewProgram(promptModel{d: d, width: 80}).Run(); err != nil {
		return dialogResult{}, err
	}
	return d.result, nil
}

// RunConfirm asks a yes/no question and reports the answer.
func RunConfirm(title, question string) (bool, error) {
	res, err := runDialog(newConfirmDialog(title, question))
	if err != nil {
		return false, err
	}
	return res.accepted, nil
}

// RunInput prompts for one action input. Backing out, or leaving a required
// value empty, returns a CancellationError.
func RunInput(in toolkit.Input) (string, error) {
	res, err := runDialog(newInputDialog(in.Title, in.Prompt, in.Secret, in.Optional, in.Validate))
	if err != nil {
		return "", err
	}
	if !res.accepted {
		return "", &CancellationError{}
	}
	return res.value, nil
}
