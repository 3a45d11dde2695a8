package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/toolkit"
	"github.com/ittoolkit/itk/sentry"
	helpmenus "github.com/ittoolkit/itk/tui/help-menus"
)

var healthCmd = &cobra.Command{
	Use:         "health",
	Short:       "Run the SFC and DISM image health scan",
	Long:        "Runs sfc /scannow followed by the DISM scanhealth, checkhealth and restorehealth passes, streaming their output. Ctrl+C stops the scan.",
	Args:        cobra.NoArgs,
	Annotations: adminOnly(),
	RunE:        runHealth,
}

func init() {
	healthCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderCommandHelp(cmd,
			helpmenus.Example{Comment: "Scan and repair the Windows image", Command: "itk health"},
		)
	})
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	sentry.AddBreadcrumb("action", toolkit.ActionHealthScan, nil, sentry.LevelInfo)

	summary, err := current.tk.HealthScan(cmd.Context(), func(e toolkit.HealthEvent) {
		if e.Kind == toolkit.StepStarted {
			fmt.Fprintf(w, "(%d/%d) ", e.Step, e.Total)
		}
		fmt.Fprintln(w, e.Text())
	})
	if err != nil {
		return err
	}

	log.Info("health scan finished", "passed", summary.Passed, "completed", summary.Completed, "cancelled", summary.Cancelled)
	return printOutcome(cmd, summary.Outcome())
}
