package helpmenus

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func RenderRootHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	InitHelpStyles(out)

	var output strings.Builder

	version := cmd.Root().Version
	if version == "" {
		version = "dev"
	}

	output.WriteString(HeaderStyle.Render(banner("🛠  IT TOOLKIT  🛠", "v "+version)))
	output.WriteString("\n\n")

	output.WriteString(DescStyle.Render(cmd.Long))
	output.WriteString("\n\n\n")

	output.WriteString(SectionStyle.Render("● QUICK START"))
	output.WriteString("\n\n")
	row(&output, CommandStyle, "1.  Open toolkit", "itk")
	row(&output, CommandStyle, "2.  Flush DNS", "itk fix flushdns")
	row(&output, CommandStyle, "3.  Health scan", "itk health")
	row(&output, CommandStyle, "4.  Follow log", "itk log tail")
	output.WriteString("\n")

	output.WriteString(SectionStyle.Render("● AVAILABLE COMMANDS"))
	output.WriteString("\n\n")
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() && sub.Name() != "help" {
			row(&output, CommandStyle, sub.Name(), sub.Short)
		}
	}
	output.WriteString("\n")

	output.WriteString(SectionStyle.Render("● GLOBAL FLAGS"))
	output.WriteString("\n\n")
	renderFlags(&output, cmd.PersistentFlags())
	output.WriteString("\n")

	output.WriteString(SectionStyle.Render("● TIPS"))
	output.WriteString("\n\n")
	row(&output, CommandStyle, "Help", "use itk <command> --help")
	row(&output, CommandStyle, "Admin", "run from an elevated prompt; --dry-run skips the check")
	row(&output, CommandStyle, "Completion", "itk completion <bash|zsh|fish|powershell>")
	output.WriteString("\n")

	fmt.Fprint(out, output.String())
}
