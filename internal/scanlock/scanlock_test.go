package scanlock

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks", FileName)

	lock, err := Acquire(path, time.Hour)
	require.NoError(t, err)

	pid, held := Holder(path, time.Hour)
	assert.True(t, held)
	assert.Equal(t, os.Getpid(), pid)

	_, err = Acquire(path, time.Hour)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, lock.Release())
	_, held = Holder(path, time.Hour)
	assert.False(t, held)

	again, err := Acquire(path, time.Hour)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestStaleLockIsReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	old := time.Now().Add(-2 * time.Hour).Unix()
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n%d\n", os.Getpid(), old)), 0o600))

	lock, err := Acquire(path, time.Hour)
	require.NoError(t, err)
	defer lock.Release()
}

func TestGarbageLockIsReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("not a lock"), 0o600))
	past := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(path, past, past))

	_, held := Holder(path, time.Hour)
	assert.False(t, held)

	lock, err := Acquire(path, time.Hour)
	require.NoError(t, err)
	defer lock.Release()
}

func TestUnwrittenLockIsHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	_, held := Holder(path, time.Hour)
	assert.True(t, held)

	_, err = Acquire(path, time.Hour)
	assert.ErrorIs(t, err, ErrLocked)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "lock file left in place")
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}
