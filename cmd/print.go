package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ittoolkit/itk/internal/privilege"
	"github.com/ittoolkit/itk/tui"
)

// PrintError writes err to stderr. A user cancellation is shown as a warning.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, formatError(err))
}

func formatError(err error) string {
	var cancellationErr *tui.CancellationError
	switch {
	case errors.As(err, &cancellationErr):
		return tui.RenderWarningSimple("Cancelled")
	case errors.Is(err, privilege.ErrNotElevated):
		return tui.RenderErrorMessage(privilege.Message)
	}
	return tui.RenderError(err)
}

func FormatWarningSimple(message string) string {
	return tui.RenderWarningSimple(message)
}
