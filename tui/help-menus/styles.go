package helpmenus

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ittoolkit/itk/tui/theme"
)

var (
	initOnce         sync.Once
	HeaderStyle      lipgloss.Style
	SectionStyle     lipgloss.Style
	CommandStyle     lipgloss.Style
	CommandTextStyle lipgloss.Style
	DescStyle        lipgloss.Style
	FlagStyle        lipgloss.Style
	ExampleStyle     lipgloss.Style
)

const (
	flagColorHex    = "#ff6b35"
	descColorHex    = "#f2f2f2"
	exampleColorHex = "#bcbcbc"

	boxWidth = 77
)

func InitHelpStyles(out io.Writer) {
	theme.Init(out)

	initOnce.Do(func() {
		r := theme.Renderer()

		HeaderStyle = theme.Primary().Bold(true).Padding(1, 0)
		SectionStyle = theme.Label().MarginTop(1)
		CommandStyle = theme.Primary().Bold(true).Width(20)
		CommandTextStyle = theme.Primary().Bold(true)
		DescStyle = r.NewStyle().Foreground(lipgloss.Color(descColorHex))
		FlagStyle = r.NewStyle().Foreground(lipgloss.Color(flagColorHex)).Bold(true).Width(22)
		ExampleStyle = r.NewStyle().Foreground(lipgloss.Color(exampleColorHex)).Italic(true)
	})
}

// banner draws the rounded header box with each line centred.
func banner(lines ...string) string {
	var b strings.Builder
	b.WriteString("\n╭" + strings.Repeat("─", boxWidth) + "╮\n")
	b.WriteString("│" + strings.Repeat(" ", boxWidth) + "│\n")
	for _, l := range lines {
		b.WriteString("│" + center(l, boxWidth) + "│\n")
	}
	b.WriteString("│" + strings.Repeat(" ", boxWidth) + "│\n")
	b.WriteString("╰" + strings.Repeat("─", boxWidth) + "╯\n")
	return b.String()
}

func center(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func row(b *strings.Builder, label lipgloss.Style, name, desc string) {
	b.WriteString("  ")
	b.WriteString(label.Render(name))
	b.WriteString("   ")
	b.WriteString(DescStyle.Render(desc))
	b.WriteString("\n")
}
