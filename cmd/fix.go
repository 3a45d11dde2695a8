package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/toolkit"
	"github.com/ittoolkit/itk/tui"
	helpmenus "github.com/ittoolkit/itk/tui/help-menus"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Run basic network and policy fixes",
}

var renewCmd = &cobra.Command{
	Use:         "renew",
	Short:       "Release and renew the DHCP lease",
	Args:        cobra.NoArgs,
	Annotations: adminOnly(),
	RunE:        runRenew,
}

func init() {
	fixCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderCommandHelp(cmd,
			helpmenus.Example{Comment: "Clear the DNS resolver cache", Command: "itk fix flushdns"},
			helpmenus.Example{Comment: "Renew the lease without the confirmation prompt", Command: "itk fix renew --yes"},
		)
	})

	renewCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	fixCmd.AddCommand(
		actionCommand("flushdns", "Flush the DNS resolver cache", toolkit.ActionFlushDNS, true),
		actionCommand("winsock", "Reset the Winsock catalog", toolkit.ActionResetWinsock, true),
		renewCmd,
		actionCommand("gpupdate", "Force a Group Policy update", toolkit.ActionGPUpdate, true),
		actionCommand("battery", "Generate a battery report", toolkit.ActionBatteryReport, false),
	)
	rootCmd.AddCommand(fixCmd)
}

func runRenew(cmd *cobra.Command, args []string) error {
	action, err := toolkit.FindAction(toolkit.ActionIPRenew)
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		ok, err := tui.RunConfirm("Warning", action.Confirm)
		if err != nil {
			return err
		}
		if !ok {
			return &tui.CancellationError{}
		}
	}

	return runAction(cmd, action.ID, nil)
}
