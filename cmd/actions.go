package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/logging"
	"github.com/ittoolkit/itk/internal/toolkit"
	"github.com/ittoolkit/itk/sentry"
	"github.com/ittoolkit/itk/tui"
)

// OutcomeError is returned by a subcommand whose action failed. Its message
// is what the toolkit showed the user.
type OutcomeError struct {
	Outcome toolkit.Outcome
}

func (e *OutcomeError) Error() string {
	return e.Outcome.Message
}

func (e *OutcomeError) Unwrap() error {
	return e.Outcome.Err
}

// actionCommand builds a subcommand that runs one toolkit action with no
// inputs.
func actionCommand(use, short, actionID string, admin bool) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, actionID, nil)
		},
	}
	if admin {
		c.Annotations = adminOnly()
	}
	return c
}

// runAction executes the action with a spinner and prints its outcome.
func runAction(cmd *cobra.Command, actionID string, in toolkit.Inputs) error {
	action, err := toolkit.FindAction(actionID)
	if err != nil {
		return err
	}

	logging.WithAction(log, action.ID).Debug("running action")
	sentry.AddBreadcrumb("action", action.ID, nil, sentry.LevelInfo)

	var out toolkit.Outcome
	tui.RunBusy(cmd.OutOrStdout(), action.Label+"...", func() {
		out = current.tk.Execute(cmd.Context(), action, in)
	})
	return printOutcome(cmd, out)
}

func printOutcome(cmd *cobra.Command, out toolkit.Outcome) error {
	w := cmd.OutOrStdout()
	switch {
	case out.Failed():
		return &OutcomeError{Outcome: out}
	case out.Cancelled:
		fmt.Fprintln(w, tui.RenderWarningSimple(out.Message))
	case out.Title == "Result":
		fmt.Fprintln(w, out.Message)
	default:
		fmt.Fprintln(w, tui.RenderSuccessSimple(out.Message))
	}
	return nil
}

func adminOnly() map[string]string {
	return map[string]string{annotationAdmin: "true"}
}
