package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/actionlog"
	helpmenus "github.com/ittoolkit/itk/tui/help-menus"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the shared action log",
}

func init() {
	logCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderCommandHelp(cmd,
			helpmenus.Example{Comment: "Follow the log while the toolkit runs elsewhere", Command: "itk log tail"},
		)
	})

	logCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the action log",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				content, err := current.tk.Log().Read()
				if err != nil {
					return fmt.Errorf("failed to read action log: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				if !strings.HasSuffix(content, "\n") {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "tail",
			Short: "Print the action log and follow new entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				updates := current.tk.Log().Watch(cmd.Context(), current.cfg.LogRefreshInterval())
				follow(cmd.OutOrStdout(), updates)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print where the action log is written",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), current.tk.Log().Path())
			},
		},
	)
	rootCmd.AddCommand(logCmd)
}

// follow prints each snapshot's new suffix. A snapshot that does not extend
// the previous one (the file was replaced) is printed whole.
func follow(w io.Writer, updates <-chan string) {
	prev := ""
	for content := range updates {
		switch {
		case content == actionlog.EmptyContent:
			if prev == "" {
				fmt.Fprintln(w, content)
			}
		case strings.HasPrefix(content, prev):
			fmt.Fprint(w, content[len(prev):])
		default:
			fmt.Fprint(w, content)
		}
		prev = content
		if prev == actionlog.EmptyContent {
			prev = ""
		}
	}
}
