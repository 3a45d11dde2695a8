package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittoolkit/itk/internal/privilege"
	"github.com/ittoolkit/itk/internal/runner"
	"github.com/ittoolkit/itk/internal/testutils"
	"github.com/ittoolkit/itk/internal/toolkit"
	"github.com/ittoolkit/itk/tui"
)

// resetFlags puts every flag back to its default so runs don't leak into
// each other through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs itk with args against the test environment in dry-run mode.
func execute(t *testing.T, env *testutils.TestEnvironment, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(closeSession)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", env.ConfigFile, "--dry-run"))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// TestRootCommand verifies the root command is properly initialized.
func TestRootCommand(t *testing.T) {
	assert.Equal(t, "itk", rootCmd.Use)
	assert.Equal(t, "Windows IT toolkit", rootCmd.Short)

	for _, name := range []string{"config", "log-file", "dry-run", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

// TestSubcommandsRegistered verifies every action is reachable from the CLI.
func TestSubcommandsRegistered(t *testing.T) {
	paths := [][]string{
		{"fix", "flushdns"}, {"fix", "winsock"}, {"fix", "renew"}, {"fix", "gpupdate"}, {"fix", "battery"},
		{"rdp", "enable"}, {"rdp", "disable"}, {"rdp", "status"},
		{"user", "domain"}, {"user", "info"}, {"user", "passwd"}, {"user", "list"},
		{"health"}, {"datetime"},
		{"log", "show"}, {"log", "tail"}, {"log", "path"},
		{"version"}, {"completion", "powershell"},
	}
	for _, p := range paths {
		c, _, err := rootCmd.Find(p)
		require.NoError(t, err, strings.Join(p, " "))
		assert.Equal(t, p[len(p)-1], c.Name())
	}
}

// TestAdminAnnotations verifies only state-changing commands demand elevation.
func TestAdminAnnotations(t *testing.T) {
	tests := []struct {
		path  []string
		admin bool
	}{
		{[]string{}, true},
		{[]string{"fix", "flushdns"}, true},
		{[]string{"fix", "renew"}, true},
		{[]string{"fix", "battery"}, false},
		{[]string{"rdp", "enable"}, true},
		{[]string{"rdp", "status"}, false},
		{[]string{"user", "info"}, false},
		{[]string{"user", "passwd"}, true},
		{[]string{"health"}, true},
		{[]string{"datetime"}, true},
		{[]string{"log", "show"}, false},
	}
	for _, tt := range tests {
		c, _, err := rootCmd.Find(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.admin, needsAdmin(c), "itk %s", strings.Join(tt.path, " "))
	}
}

// TestCommandFlags verifies the per-command flags exist.
func TestCommandFlags(t *testing.T) {
	assert.NotNil(t, renewCmd.Flags().Lookup("yes"))
	assert.NotNil(t, passwdCmd.Flags().Lookup("password"))
	assert.NotNil(t, datetimeCmd.Flags().Lookup("date"))
	assert.NotNil(t, datetimeCmd.Flags().Lookup("time"))
}

// TestFixFlushDNS verifies a basic fix runs and is logged.
func TestFixFlushDNS(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	out, err := execute(t, env, "fix", "flushdns")
	require.NoError(t, err)

	assert.Contains(t, out, "Executed: ipconfig /flushdns")
	assert.Equal(t, []string{"Executed: ipconfig /flushdns"}, testutils.ReadLogMessages(t, env.LogFile))
}

// TestFixRenew verifies the release/renew confirmation.
func TestFixRenew(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	_, err := execute(t, env, "fix", "renew")
	require.ErrorIs(t, err, tui.ErrNoTerminal)
	assert.Empty(t, testutils.ReadLogMessages(t, env.LogFile))

	_, err = execute(t, env, "fix", "renew", "--yes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Executed: ipconfig /release && ipconfig /renew"}, testutils.ReadLogMessages(t, env.LogFile))
}

// TestRDP verifies enable, disable and status.
func TestRDP(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	out, err := execute(t, env, "rdp", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "Remote Desktop enabled.")

	out, err = execute(t, env, "rdp", "disable")
	require.NoError(t, err)
	assert.Contains(t, out, "Remote Desktop disabled.")

	out, err = execute(t, env, "rdp", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Remote Desktop is disabled.")

	assert.Equal(t, []string{"RDP enabled", "RDP disabled"}, testutils.ReadLogMessages(t, env.LogFile))
}

// TestUserPasswd verifies the password flag is used but never logged.
func TestUserPasswd(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	_, err := execute(t, env, "user", "passwd", "bob", "--password", "s3cret!")
	require.NoError(t, err)

	logged := strings.Join(testutils.ReadLogMessages(t, env.LogFile), "\n")
	assert.Contains(t, logged, "Command: net user bob ********")
	assert.NotContains(t, logged, "s3cret!")
}

// TestUserInfo verifies the username argument and query output.
func TestUserInfo(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	out, err := execute(t, env, "user", "info", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry run] net user alice")

	_, err = execute(t, env, "user", "info")
	assert.ErrorIs(t, err, tui.ErrNoTerminal)
}

// TestUserInfoRejectsBadName verifies invalid usernames fail before running.
func TestUserInfoRejectsBadName(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	_, err := execute(t, env, "user", "info", "bad|name")
	var outcomeErr *OutcomeError
	require.ErrorAs(t, err, &outcomeErr)
	assert.Empty(t, testutils.ReadLogMessages(t, env.LogFile))
}

// TestDatetime verifies flag input and validation.
func TestDatetime(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	out, err := execute(t, env, "datetime", "--date", "03-15-2025", "--time", "14:30:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Date and Time updated.")
	assert.Equal(t, []string{"Date set to 03-15-2025", "Time set to 14:30:00"}, testutils.ReadLogMessages(t, env.LogFile))

	_, err = execute(t, env, "datetime", "--date", "2025-03-15")
	require.Error(t, err)
	assert.Contains(t, testutils.ReadLogMessages(t, env.LogFile)[2], "Date/Time update error")
}

// TestHealth verifies the scan streams every step.
func TestHealth(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	out, err := execute(t, env, "health")
	require.NoError(t, err)

	for i, c := range toolkit.HealthCommands {
		assert.Contains(t, out, fmt.Sprintf("(%d/4) [>] %s", i+1, c))
	}
	assert.Equal(t, 4, strings.Count(out, "[✓] Done"))
	assert.Contains(t, out, "All checks finished.")
	assert.Equal(t, []string{"System health check completed"}, testutils.ReadLogMessages(t, env.LogFile))
}

// TestLogCommands verifies show and path.
func TestLogCommands(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	out, err := execute(t, env, "log", "path")
	require.NoError(t, err)
	assert.Equal(t, env.LogFile+"\n", out)

	out, err = execute(t, env, "log", "show")
	require.NoError(t, err)
	assert.Equal(t, "No logs yet.\n", out)

	_, err = execute(t, env, "fix", "battery")
	require.NoError(t, err)

	out, err = execute(t, env, "log", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "] Executed: powercfg /batteryreport\n")
}

// TestLogFileFlag verifies --log-file overrides the configured path.
func TestLogFileFlag(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	other := env.TempDir + "/other.txt"
	out, err := execute(t, env, "log", "path", "--log-file", other)
	require.NoError(t, err)
	assert.Equal(t, other+"\n", out)
}

func TestFollow(t *testing.T) {
	updates := make(chan string, 4)
	updates <- "No logs yet."
	updates <- "[1] a\n"
	updates <- "[1] a\n[2] b\n"
	updates <- "[3] c\n"
	close(updates)

	var out bytes.Buffer
	follow(&out, updates)

	assert.Equal(t, "No logs yet.\n[1] a\n[2] b\n[3] c\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	env := testutils.SetupTestEnvironment(t)
	defer env.Cleanup()

	out, err := execute(t, env, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "itk "))
}

func TestGetErrorType(t *testing.T) {
	exitErr := &runner.ExitError{Result: runner.Result{ExitCode: 1}}

	tests := []struct {
		err      error
		expected string
	}{
		{privilege.ErrNotElevated, "permission_error"},
		{fmt.Errorf("run: %w", context.DeadlineExceeded), "timeout_error"},
		{toolkit.ErrScanRunning, "scan_busy"},
		{&OutcomeError{Outcome: toolkit.Outcome{Message: "Command failed", Err: exitErr}}, "command_error"},
		{errors.New(`exec: "sfc": executable file not found in %PATH%`), "tool_missing"},
		{errors.New(`invalid date "x", expected MM-DD-YYYY`), "validation_error"},
		{errors.New("failed to load config: bad yaml"), "config_error"},
		{errors.New("something else"), "unknown_error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, getErrorType(tt.err), tt.err.Error())
	}
}

func TestShouldReport(t *testing.T) {
	assert.False(t, shouldReport(&tui.CancellationError{}))
	assert.False(t, shouldReport(privilege.ErrNotElevated))
	assert.True(t, shouldReport(toolkit.ErrScanRunning))
}

func TestFormatError(t *testing.T) {
	assert.Contains(t, formatError(privilege.ErrNotElevated), privilege.Message)
	assert.NotContains(t, formatError(privilege.ErrNotElevated), privilege.ErrNotElevated.Error())
	assert.Contains(t, formatError(&tui.CancellationError{}), "Cancelled")
	assert.Contains(t, formatError(errors.New("boom")), "boom")
}
