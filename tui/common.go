package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/ittoolkit/itk/tui/theme"
)

var (
	helpStyleTUI    lipgloss.Style
	errorStyleTUI   lipgloss.Style
	warningStyleTUI lipgloss.Style
	successStyle    lipgloss.Style

	primaryStyle       lipgloss.Style
	primaryTitleStyle  lipgloss.Style
	primaryCursorStyle lipgloss.Style
	labelStyle         lipgloss.Style
	subtleTextStyle    lipgloss.Style
	buttonStyle        lipgloss.Style
	activeButtonStyle  lipgloss.Style
	paneStyle          lipgloss.Style
	dialogStyle        lipgloss.Style
	errorDialogStyle   lipgloss.Style
	activeTabStyle     lipgloss.Style
	inactiveTabStyle   lipgloss.Style
)

// CancellationError is returned when the user backs out of a prompt.
type CancellationError struct{}

func (e *CancellationError) Error() string {
	return "operation cancelled"
}

func InitCommonStyles(out io.Writer) {
	theme.Init(out)

	helpStyleTUI = theme.Neutral().Italic(true)
	errorStyleTUI = theme.Error()
	warningStyleTUI = theme.Warning()
	successStyle = theme.Success()

	primaryStyle = theme.Primary()
	primaryTitleStyle = primaryStyle.Bold(true)
	primaryCursorStyle = primaryStyle
	labelStyle = theme.Label()
	subtleTextStyle = theme.Neutral()
	buttonStyle = labelStyle.Bold(false).
		Background(lipgloss.Color(theme.ButtonColor)).
		Padding(0, 2)
	activeButtonStyle = buttonStyle.
		Foreground(lipgloss.Color(theme.PrimaryColor)).
		Bold(true)
	paneStyle = subtleTextStyle.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ButtonColor)).
		Padding(0, 1)
	dialogStyle = labelStyle.Bold(false).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.PrimaryColor)).
		Padding(1, 2)
	errorDialogStyle = dialogStyle.BorderForeground(lipgloss.Color(theme.ErrorColor))
	activeTabStyle = primaryTitleStyle.
		Border(lipgloss.RoundedBorder(), true, true, false, true).
		BorderForeground(lipgloss.Color(theme.PrimaryColor)).
		Padding(0, 1)
	inactiveTabStyle = subtleTextStyle.
		Border(lipgloss.RoundedBorder(), true, true, false, true).
		BorderForeground(lipgloss.Color(theme.ButtonColor)).
		Padding(0, 1)
}

func RenderWarningSimple(message string) string {
	if message == "" {
		return ""
	}
	return warningStyleTUI.Render("⚠ " + message)
}

func RenderSuccessSimple(message string) string {
	if message == "" {
		return ""
	}
	return successStyle.Render("✓ " + message)
}

func RenderError(err error) string {
	if err == nil {
		return ""
	}
	return errorStyleTUI.Render("✗ Error: " + err.Error())
}

func RenderErrorMessage(message string) string {
	if message == "" {
		return ""
	}
	return errorStyleTUI.Render("✗ Error: " + message)
}

func LabelStyle() lipgloss.Style {
	return labelStyle
}

func HelpStyle() lipgloss.Style {
	return helpStyleTUI
}

func NewPrimarySpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = primaryStyle
	return s
}
