package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type logContentMsg string

// logPane is the "Unified Log Viewer" shown under every tab.
type logPane struct {
	content string
	view    viewport.Model
	updates <-chan string
}

func newLogPane(updates <-chan string) logPane {
	vp := viewport.New(60, 8)
	vp.Style = paneStyle
	return logPane{view: vp, updates: updates}
}

func waitForLog(updates <-chan string) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		content, ok := <-updates
		if !ok {
			return nil
		}
		return logContentMsg(content)
	}
}

func (l *logPane) set(content string) tea.Cmd {
	// Stay put if the user scrolled up to read something.
	follow := l.view.AtBottom() || l.content == ""
	l.content = content
	l.view.SetContent(content)
	if follow {
		l.view.GotoBottom()
	}
	return waitForLog(l.updates)
}

func (l *logPane) resize(width, height int) {
	l.view.Width = width
	l.view.Height = height
	l.view.SetContent(l.content)
	l.view.GotoBottom()
}

func (l *logPane) scroll(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.view, cmd = l.view.Update(msg)
	return cmd
}

func (l logPane) View() string {
	return labelStyle.Render("Unified Log Viewer") + "\n" + l.view.View()
}
