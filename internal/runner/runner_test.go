package runner

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommandString verifies the display form quotes arguments with spaces
// and honours a masked display.
func TestCommandString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		expected string
	}{
		{"plain", Cmd("ipconfig", "/flushdns"), "ipconfig /flushdns"},
		{"quoted", Cmd("net", "user", "Jane Doe", "/domain"), `net user "Jane Doe" /domain`},
		{"empty arg", Cmd("net", "user", ""), `net user ""`},
		{"builtin", Builtin("date", "10-16-2026"), "date 10-16-2026"},
		{"masked", Cmd("net", "user", "bob", "s3cret").Masked(`net user bob ********`), "net user bob ********"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cmd.String())
		})
	}
}

// TestBuiltinArgv verifies cmd.exe built-ins run through cmd /C.
func TestBuiltinArgv(t *testing.T) {
	name, args := Builtin("time", "12:00:00").argv()
	assert.Equal(t, "cmd", name)
	assert.Equal(t, []string{"/C", "time", "12:00:00"}, args)

	name, args = Cmd("gpupdate", "/force").argv()
	assert.Equal(t, "gpupdate", name)
	assert.Equal(t, []string{"/force"}, args)
}

// TestResultOutput verifies stream selection by exit code.
func TestResultOutput(t *testing.T) {
	assert.Equal(t, "ok", Result{Stdout: "ok", Stderr: "warn"}.Output())
	assert.Equal(t, "boom", Result{ExitCode: 2, Stdout: "ok", Stderr: "boom"}.Output())
	assert.Equal(t, "only stdout", Result{ExitCode: 2, Stdout: "only stdout"}.Output())
	assert.Equal(t, "only stderr", Result{Stderr: "only stderr"}.Output())
}

// TestExitErrorMessage verifies the message carries command, code and output.
func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Result: Result{Command: Cmd("netsh", "winsock", "reset"), ExitCode: 1, Stderr: "access denied\n"}}
	assert.Equal(t, "command 'netsh winsock reset' returned non-zero exit status 1: access denied", err.Error())

	bare := &ExitError{Result: Result{Command: Cmd("gpupdate", "/force"), ExitCode: 5}}
	assert.Equal(t, "command 'gpupdate /force' returned non-zero exit status 5", bare.Error())
}

// TestScanLines verifies CR and LF splitting, trimming and NUL removal.
func TestScanLines(t *testing.T) {
	input := "Beginning system scan.\r\nVerification 10% complete.\rVerification 100% complete.\n\n  \x00W\x00i\x00n\x00  \nlast"

	var lines []string
	ScanLines(strings.NewReader(input), func(l string) { lines = append(lines, l) })

	assert.Equal(t, []string{
		"Beginning system scan.",
		"Verification 10% complete.",
		"Verification 100% complete.",
		"  Win",
		"last",
	}, lines)
}

// TestLimitedWriter verifies output beyond the limit is dropped without error.
func TestLimitedWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, limit: 5}

	n, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = w.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = w.Write([]byte("ijk"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, "abcde", buf.String())
}

// TestDryRunRecords verifies the dry-run executor records in order.
func TestDryRunRecords(t *testing.T) {
	d := NewDryRun()
	ctx := context.Background()

	res, err := d.Run(ctx, Cmd("ipconfig", "/flushdns"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "ipconfig /flushdns")

	var lines []string
	code, err := d.Stream(ctx, Cmd("sfc", "/scannow"), func(l string) { lines = append(lines, l) })
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"[dry run] sfc /scannow"}, lines)

	cmds := d.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "ipconfig /flushdns", cmds[0].String())
	assert.Equal(t, "sfc /scannow", cmds[1].String())
}

// TestDryRunCancelled verifies a cancelled context is reported.
func TestDryRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDryRun().Run(ctx, Cmd("gpupdate", "/force"))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestExecRun exercises the host executor with a POSIX shell.
func TestExecRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	e := NewExec()
	ctx := context.Background()

	res, err := e.Run(ctx, Cmd("sh", "-c", "echo out; echo err >&2"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)

	res, err = e.Run(ctx, Cmd("sh", "-c", "echo denied >&2; exit 3"))
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, 3, exitErr.Result.ExitCode)
	assert.Equal(t, "denied\n", res.Output())

	_, err = e.Run(ctx, Cmd("itk-definitely-missing-binary"))
	require.Error(t, err)
	assert.False(t, errors.As(err, &exitErr))
}

// TestExecStream exercises line streaming and exit codes.
func TestExecStream(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	var lines []string
	code, err := NewExec().Stream(context.Background(), Cmd("sh", "-c", "echo one; echo two >&2; exit 2"), func(l string) {
		lines = append(lines, l)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.ElementsMatch(t, []string{"one", "two"}, lines)
}

// TestExecStreamCancel verifies cancellation stops a running command.
func TestExecStreamCancel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	code, err := NewExec().Stream(ctx, Cmd("sleep", "5"), nil)
	assert.Error(t, err)
	assert.Equal(t, -1, code)
	assert.Less(t, time.Since(start), 4*time.Second)
}
