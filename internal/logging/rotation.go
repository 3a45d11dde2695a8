package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotatingWriter appends to a diagnostics file and shifts it to numbered
// backups (itk.log.1, itk.log.2, ...) once it would grow past the limit.
type RotatingWriter struct {
	path    string
	limit   int64
	backups int

	mu   sync.Mutex
	f    *os.File
	size int64
}

// NewRotatingWriter opens path for appending, creating its directory.
// Non-positive limit or backups fall back to 10 MiB and 3.
func NewRotatingWriter(path string, limit int64, backups int) (*RotatingWriter, error) {
	if limit <= 0 {
		limit = 10 << 20
	}
	if backups <= 0 {
		backups = 3
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create diagnostics directory: %w", err)
	}

	w := &RotatingWriter{path: path, limit: limit, backups: backups}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return 0, os.ErrClosed
	}
	if w.size > 0 && w.size+int64(len(p)) > w.limit {
		if err := w.shift(); err != nil {
			return 0, fmt.Errorf("rotate diagnostics: %w", err)
		}
	}
	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

// Close closes the current file. Later writes fail with os.ErrClosed.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open diagnostics file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat diagnostics file: %w", err)
	}
	w.f, w.size = f, info.Size()
	return nil
}

// shift closes the live file, renames it to .1 after moving older backups up
// one slot (the oldest is overwritten), and reopens an empty file.
func (w *RotatingWriter) shift() error {
	_ = w.f.Close()
	w.f = nil

	for i := w.backups - 1; i >= 1; i-- {
		_ = os.Rename(w.backup(i), w.backup(i+1))
	}
	if err := os.Rename(w.path, w.backup(1)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return w.open()
}

func (w *RotatingWriter) backup(n int) string {
	return fmt.Sprintf("%s.%d", w.path, n)
}
