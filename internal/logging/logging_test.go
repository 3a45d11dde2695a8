package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPreInitLoggerUsesConfiguredHandler verifies that loggers created before
// Init write through the handler installed by Init.
func TestPreInitLoggerUsesConfiguredHandler(t *testing.T) {
	logger := L("runner")

	var buf bytes.Buffer
	Init("text", "info", &buf)

	logger.Info("command finished", "exitCode", 0)

	out := buf.String()
	assert.Contains(t, out, `msg="command finished"`)
	assert.Contains(t, out, "component=runner")
	assert.Contains(t, out, "exitCode=0")
}

// TestInitRespectsLevel verifies level filtering.
func TestInitRespectsLevel(t *testing.T) {
	logger := L("toolkit")

	var buf bytes.Buffer
	Init("text", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

// TestInitJSONFormat verifies the json handler is selected case-insensitively.
func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("JSON", "debug", &buf)

	WithAction(L("tui"), "flush-dns").Debug("activated")

	assert.Contains(t, buf.String(), `"action":"flush-dns"`)
	assert.Contains(t, buf.String(), `"component":"tui"`)
}

// TestRotatingWriterRotates verifies that exceeding the size limit moves the
// current file to a .1 backup.
func TestRotatingWriterRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag", "itk.log")

	rw, err := NewRotatingWriter(path, 1<<20, 2)
	require.NoError(t, err)
	defer rw.Close()

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	_, err = rw.Write(chunk)
	require.NoError(t, err)
	_, err = rw.Write(chunk)
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "expected a rotated backup")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())
}

// TestRotatingWriterKeepsBackupLimit verifies backups shift up and the oldest
// is dropped.
func TestRotatingWriterKeepsBackupLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itk.log")

	rw, err := NewRotatingWriter(path, 8, 2)
	require.NoError(t, err)

	for _, line := range []string{"first\n", "second\n", "third\n", "fourth\n"} {
		_, err := rw.Write([]byte(line))
		require.NoError(t, err)
	}
	require.NoError(t, rw.Close())

	read := func(p string) string {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, "fourth\n", read(path))
	assert.Equal(t, "third\n", read(path+".1"))
	assert.Equal(t, "second\n", read(path+".2"))
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))

	_, err = rw.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

// TestWithGroupKeepsOrder verifies attributes added after a group land
// inside it.
func TestWithGroupKeepsOrder(t *testing.T) {
	logger := L("cmd").WithGroup("scan").With("step", 2)

	var buf bytes.Buffer
	Init("text", "info", &buf)

	logger.Info("step started")

	assert.Contains(t, buf.String(), "component=cmd")
	assert.Contains(t, buf.String(), "scan.step=2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
