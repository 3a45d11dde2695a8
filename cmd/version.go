package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "itk %s\n", version.BuildVersion)
		if version.BuildCommit != "" {
			fmt.Fprintf(w, "commit: %s\n", version.BuildCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(w, "built:  %s\n", version.BuildDate)
		}
		fmt.Fprintf(w, "go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
