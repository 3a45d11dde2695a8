// Package actionlog maintains the shared, append-only action log that every
// toolkit action writes to and the log viewer displays.
package actionlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// DefaultFileName is the log file name inside the temp directory.
	DefaultFileName = "ITToolKit_Combined_Log.txt"

	// EmptyContent is what Read returns before anything has been logged.
	EmptyContent = "No logs yet."

	timestampLayout = "2006-01-02 15:04:05"
)

// DefaultPath returns the log location used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultFileName)
}

// Log appends timestamped lines to a single text file.
type Log struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// New returns a Log writing to path, or to DefaultPath when path is empty.
func New(path string) *Log {
	if path == "" {
		path = DefaultPath()
	}
	return &Log{path: path, now: time.Now}
}

// Path returns the file the log writes to.
func (l *Log) Path() string {
	return l.path
}

// Append writes "[YYYY-MM-DD HH:MM:SS] message" followed by a newline.
// The file is opened and closed on every call so external readers always
// see complete lines.
func (l *Log) Append(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open action log: %w", err)
	}
	defer f.Close()

	line := FormatLine(l.now(), message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write action log: %w", err)
	}
	return nil
}

// Appendf is Append with fmt.Sprintf formatting.
func (l *Log) Appendf(format string, args ...any) error {
	return l.Append(fmt.Sprintf(format, args...))
}

// Read returns the whole log. A missing file is not an error; EmptyContent is
// returned instead.
func (l *Log) Read() (string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return EmptyContent, nil
		}
		return "", fmt.Errorf("read action log: %w", err)
	}
	return string(data), nil
}

// FormatLine renders one log line including the trailing newline.
func FormatLine(t time.Time, message string) string {
	return fmt.Sprintf("[%s] %s\n", t.Format(timestampLayout), message)
}
