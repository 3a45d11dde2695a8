package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/toolkit"
	helpmenus "github.com/ittoolkit/itk/tui/help-menus"
)

var rdpCmd = &cobra.Command{
	Use:   "rdp",
	Short: "Enable, disable or inspect Remote Desktop",
}

func init() {
	rdpCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderCommandHelp(cmd,
			helpmenus.Example{Comment: "Allow Remote Desktop and open the firewall rule group", Command: "itk rdp enable"},
			helpmenus.Example{Comment: "Show whether connections are allowed", Command: "itk rdp status"},
		)
	})

	rdpCmd.AddCommand(
		actionCommand("enable", "Allow Remote Desktop connections", toolkit.ActionRDPEnable, true),
		actionCommand("disable", "Deny Remote Desktop connections", toolkit.ActionRDPDisable, true),
		actionCommand("status", "Show whether Remote Desktop is enabled", toolkit.ActionRDPStatus, false),
	)
	rootCmd.AddCommand(rdpCmd)
}
