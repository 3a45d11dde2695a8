package helpmenus

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Example is one entry in a command's EXAMPLES section.
type Example struct {
	Comment string
	Command string
}

// RenderCommandHelp prints the boxed help page for a subcommand: its
// subcommands or usage line, the given examples and its local flags.
func RenderCommandHelp(cmd *cobra.Command, examples ...Example) {
	out := cmd.OutOrStdout()
	InitHelpStyles(out)

	var output strings.Builder

	output.WriteString(HeaderStyle.Render(banner(strings.ToUpper(cmd.Name())+" COMMAND", cmd.Short)))

	if cmd.Long != "" {
		output.WriteString("\n")
		output.WriteString(DescStyle.Render(cmd.Long))
		output.WriteString("\n")
	}

	output.WriteString(SectionStyle.Render("● USAGE"))
	output.WriteString("\n\n")
	if cmd.HasAvailableSubCommands() {
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				row(&output, CommandStyle, sub.Name(), sub.CommandPath()+argsHint(sub))
			}
		}
	} else {
		output.WriteString("  ")
		output.WriteString(CommandTextStyle.Render(cmd.UseLine()))
		output.WriteString("\n")
	}
	output.WriteString("\n")

	if len(examples) > 0 {
		output.WriteString(SectionStyle.Render("● EXAMPLES"))
		output.WriteString("\n\n")
		for _, ex := range examples {
			output.WriteString("  ")
			output.WriteString(ExampleStyle.Render("# " + ex.Comment))
			output.WriteString("\n  ")
			output.WriteString(CommandTextStyle.Render(ex.Command))
			output.WriteString("\n\n")
		}
	}

	if cmd.HasAvailableLocalFlags() {
		output.WriteString(SectionStyle.Render("● FLAGS"))
		output.WriteString("\n\n")
		renderFlags(&output, cmd.LocalFlags())
		output.WriteString("\n")
	}

	fmt.Fprint(out, output.String())
}

func argsHint(cmd *cobra.Command) string {
	if _, rest, ok := strings.Cut(cmd.Use, " "); ok {
		return " " + rest
	}
	return ""
}

func renderFlags(b *strings.Builder, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		name := "--" + f.Name
		if f.Value.Type() != "bool" {
			name += " " + f.Value.Type()
		}
		row(b, FlagStyle, name, f.Usage)
	})
}
