package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/toolkit"
	helpmenus "github.com/ittoolkit/itk/tui/help-menus"
)

var datetimeCmd = &cobra.Command{
	Use:         "datetime",
	Short:       "Set the system date and time",
	Long:        "Sets the date (MM-DD-YYYY) and/or time (HH:MM:SS). Without flags both are prompted for; leave a prompt blank to keep the current value.",
	Args:        cobra.NoArgs,
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		given := map[string]string{}
		date, _ := cmd.Flags().GetString("date")
		clock, _ := cmd.Flags().GetString("time")
		if date != "" || clock != "" {
			given[toolkit.InputDate] = date
			given[toolkit.InputTime] = clock
		}
		return runWithInputs(cmd, toolkit.ActionSetDateTime, given)
	},
}

func init() {
	datetimeCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderCommandHelp(cmd,
			helpmenus.Example{Comment: "Set both", Command: "itk datetime --date 03-15-2025 --time 14:30:00"},
			helpmenus.Example{Comment: "Only fix the clock", Command: "itk datetime --time 08:00:00"},
		)
	})

	datetimeCmd.Flags().String("date", "", "new date, MM-DD-YYYY")
	datetimeCmd.Flags().String("time", "", "new time, HH:MM:SS")

	rootCmd.AddCommand(datetimeCmd)
}
