package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/ittoolkit/itk/internal/privilege"
	"github.com/ittoolkit/itk/internal/runner"
	"github.com/ittoolkit/itk/internal/toolkit"
)

// getErrorType categorizes errors for better Sentry grouping
func getErrorType(err error) string {
	var exitErr *runner.ExitError

	switch {
	case errors.Is(err, privilege.ErrNotElevated):
		return "permission_error"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout_error"
	case errors.Is(err, toolkit.ErrScanRunning):
		return "scan_busy"
	case errors.Is(err, toolkit.ErrUnsupported):
		return "platform_error"
	case errors.As(err, &exitErr):
		return "command_error"
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "access is denied") ||
		strings.Contains(errStr, "requires elevation"):
		return "permission_error"

	case strings.Contains(errStr, "executable file not found") ||
		strings.Contains(errStr, "is not recognized"):
		return "tool_missing"

	case strings.Contains(errStr, "invalid"):
		return "validation_error"

	case strings.Contains(errStr, "registry"):
		return "registry_error"

	case strings.Contains(errStr, "action log"):
		return "log_error"

	case strings.Contains(errStr, "config"):
		return "config_error"

	case strings.Contains(errStr, "terminal") ||
		strings.Contains(errStr, "tui"):
		return "terminal_error"

	default:
		return "unknown_error"
	}
}
