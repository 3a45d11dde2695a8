package cmd

import (
	"errors"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/version"
	"github.com/ittoolkit/itk/sentry"
	"github.com/ittoolkit/itk/tui"
)

// WrapCommandWithSentry makes cmd and its subcommands report panics.
func WrapCommandWithSentry(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		WrapCommandWithSentry(sub)
	}
	if cmd.RunE == nil {
		return
	}

	originalRunE := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		defer sentry.CapturePanic(&sentry.EventOptions{
			Tags: sentry.NewTags().
				Set("command", c.CommandPath()).
				Set("version", version.BuildVersion),
		})
		return originalRunE(c, args)
	}
}

// CaptureCommandError reports a failed command. User cancellations and
// missing elevation are expected and stay local.
func CaptureCommandError(cmd *cobra.Command, err error) {
	if err == nil || !shouldReport(err) {
		return
	}

	eventID := sentry.CaptureError(err, &sentry.EventOptions{
		Tags: sentry.NewTags().
			Set("command", cmd.CommandPath()).
			Set("version", version.BuildVersion).
			Set("error_type", getErrorType(err)).
			Set("dry_run", boolTag(dryRun)),
		Extra: sentry.NewExtra().
			Set("args", cmd.Flags().Args()),
		Level: ptr(getLogLevelForError(err)),
	})

	if eventID != nil {
		// os.Exit skips deferred flushes.
		sentry.Flush(2 * time.Second)
	}
}

func shouldReport(err error) bool {
	var cancellationErr *tui.CancellationError
	if errors.As(err, &cancellationErr) {
		return false
	}
	switch getErrorType(err) {
	case "permission_error", "validation_error":
		return false
	}
	return true
}

func ptr[T any](v T) *T {
	return &v
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// getLogLevelForError determines the appropriate Sentry level for an error
func getLogLevelForError(err error) sentrygo.Level {
	switch getErrorType(err) {
	case "timeout_error", "scan_busy", "command_error", "tool_missing":
		return sentrygo.LevelWarning
	}
	return sentrygo.LevelError
}
