// Package scanlock keeps two itk processes from running the image health
// scan at the same time. The lock is a file holding the owner's pid and the
// time it was taken; a lock whose owner has exited or that is older than the
// caller's limit is treated as stale and replaced.
package scanlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

const FileName = "ITToolKit_Health.lock"

// writeGrace is how long an unreadable lock file is assumed to be mid-write.
const writeGrace = 5 * time.Second

// ErrLocked is returned by Acquire while another live process holds the lock.
var ErrLocked = errors.New("health scan lock is held by another process")

type Lock struct {
	path string
}

// Acquire takes the lock at path. O_EXCL makes the create atomic.
func Acquire(path string, maxAge time.Duration) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	if pid, held := Holder(path, maxAge); held {
		return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
	}
	_ = os.Remove(path)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%d\n%d\n", os.Getpid(), time.Now().Unix()); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}

	return &Lock{path: path}, nil
}

// Release removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// Holder reports the pid recorded at path and whether it still counts as
// holding the lock.
func Holder(path string, maxAge time.Duration) (int, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	// A file the owner has created but not yet written still counts as held.
	young := time.Since(info.ModTime()) < writeGrace

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return 0, young
	}
	pid, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return 0, young
	}
	taken, err := strconv.ParseInt(strings.TrimSpace(lines[1]), 10, 64)
	if err != nil {
		return pid, young
	}

	if maxAge > 0 && time.Since(time.Unix(taken, 0)) > maxAge {
		return pid, false
	}
	alive, err := process.PidExists(int32(pid))
	if err != nil {
		return pid, false
	}
	return pid, alive
}
