package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type dialogKind int

const (
	dialogConfirm dialogKind = iota
	dialogInput
	dialogMessage
)

// dialogResult is what a dialog reports once it closes.
type dialogResult struct {
	accepted bool
	value    string
}

// dialog is the modal shown over the tab body: a yes/no question, a text
// prompt or a message box.
type dialog struct {
	kind     dialogKind
	title    string
	prompt   string
	isError  bool
	cursor   int // confirm: 0 yes, 1 no
	input    textinput.Model
	validate func(string) error
	optional bool
	err      string

	closed bool
	result dialogResult
}

func newConfirmDialog(title, question string) *dialog {
	return &dialog{kind: dialogConfirm, title: title, prompt: question}
}

func newInputDialog(title, prompt string, secret, optional bool, validate func(string) error) *dialog {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "› "
	ti.PromptStyle = primaryCursorStyle
	ti.TextStyle = primaryCursorStyle
	ti.Cursor.Style = primaryCursorStyle
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	ti.Focus()

	return &dialog{
		kind:     dialogInput,
		title:    title,
		prompt:   prompt,
		input:    ti,
		validate: validate,
		optional: optional,
	}
}

func newMessageDialog(title, message string, isError bool) *dialog {
	return &dialog{kind: dialogMessage, title: title, prompt: message, isError: isError}
}

func (d *dialog) close(accepted bool, value string) {
	d.closed = true
	d.result = dialogResult{accepted: accepted, value: value}
}

func (d *dialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if d.kind == dialogInput {
			var cmd tea.Cmd
			d.input, cmd = d.input.Update(msg)
			return cmd
		}
		return nil
	}

	switch d.kind {
	case dialogConfirm:
		switch key.String() {
		case "left", "right", "up", "down", "tab", "h", "l", "k", "j":
			d.cursor = 1 - d.cursor
		case "y", "Y":
			d.close(true, "")
		case "n", "N", "esc", "ctrl+c":
			d.close(false, "")
		case "enter":
			d.close(d.cursor == 0, "")
		}

	case dialogInput:
		switch key.String() {
		case "esc", "ctrl+c":
			d.close(false, "")
		case "enter":
			value := strings.TrimSpace(d.input.Value())
			if d.input.EchoMode == textinput.EchoPassword {
				value = d.input.Value()
			}
			if value == "" && !d.optional {
				d.close(false, "")
				return nil
			}
			if d.validate != nil {
				if err := d.validate(value); err != nil {
					d.err = err.Error()
					return nil
				}
			}
			d.close(true, value)
		default:
			d.err = ""
			var cmd tea.Cmd
			d.input, cmd = d.input.Update(msg)
			return cmd
		}

	case dialogMessage:
		switch key.String() {
		case "enter", "esc", " ", "q", "ctrl+c":
			d.close(true, "")
		}
	}

	return nil
}

func (d *dialog) View(width int) string {
	var b strings.Builder

	title := primaryTitleStyle.Render(d.title)
	if d.isError {
		title = errorStyleTUI.Render("✗ " + d.title)
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	switch d.kind {
	case dialogConfirm:
		b.WriteString(d.prompt)
		b.WriteString("\n\n")
		options := []string{"Yes", "No"}
		for i, opt := range options {
			if i == d.cursor {
				b.WriteString(activeButtonStyle.Render("▶ " + opt))
			} else {
				b.WriteString(buttonStyle.Render("  " + opt))
			}
			b.WriteString("  ")
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyleTUI.Render("←/→: Choose  Enter: Confirm  Esc: Cancel"))

	case dialogInput:
		b.WriteString(d.prompt)
		b.WriteString("\n")
		b.WriteString(d.input.View())
		if d.err != "" {
			b.WriteString("\n")
			b.WriteString(RenderErrorMessage(d.err))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyleTUI.Render("Enter: Submit  Esc: Cancel"))

	case dialogMessage:
		b.WriteString(wrapMessage(d.prompt, width-8))
		b.WriteString("\n\n")
		b.WriteString(helpStyleTUI.Render("Enter: OK"))
	}

	style := dialogStyle
	if d.isError {
		style = errorDialogStyle
	}
	if width > 8 {
		style = style.MaxWidth(width - 2)
	}
	return style.Render(b.String())
}

// wrapMessage keeps long tool output from overflowing the dialog and caps it
// so a full "net user" listing still fits on screen.
func wrapMessage(s string, width int) string {
	const maxLines = 30

	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		hidden := len(lines) - maxLines
		lines = append(lines[:maxLines], subtleTextStyle.Render(fmt.Sprintf("… %d more lines in the log", hidden)))
	}
	if width <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, l := range lines {
		if len([]rune(l)) > width {
			lines[i] = string([]rune(l)[:width-1]) + "…"
		}
	}
	return strings.Join(lines, "\n")
}
