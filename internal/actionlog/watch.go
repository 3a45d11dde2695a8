package actionlog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ittoolkit/itk/internal/logging"
)

var log = logging.L("actionlog")

// DefaultRefreshInterval is how often Watch re-reads the file even when no
// filesystem event arrives.
const DefaultRefreshInterval = 2 * time.Second

// Watch streams snapshots of the log content. The current content is sent
// immediately; afterwards a new snapshot is sent whenever the content
// changes, detected either by an fsnotify event on the file or by the
// periodic refresh. The channel is closed when ctx is done.
func (l *Log) Watch(ctx context.Context, interval time.Duration) <-chan string {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	out := make(chan string, 1)

	go func() {
		defer close(out)

		var events <-chan fsnotify.Event
		var errs <-chan error
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Warn("file watcher unavailable, falling back to polling", "error", err)
		} else {
			defer watcher.Close()
			// Watch the directory: the file may not exist yet and some
			// platforms lose the watch when a file is recreated.
			if err := watcher.Add(filepath.Dir(l.path)); err != nil {
				log.Warn("cannot watch log directory, falling back to polling", "path", l.path, "error", err)
			} else {
				events = watcher.Events
				errs = watcher.Errors
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := ""
		first := true
		emit := func() bool {
			content, err := l.Read()
			if err != nil {
				log.Debug("log read failed", "error", err)
				return true
			}
			if !first && content == last {
				return true
			}
			first = false
			last = content
			select {
			case out <- content:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !emit() {
					return
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				log.Debug("file watcher error", "error", err)
			case ev, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				if filepath.Clean(ev.Name) != filepath.Clean(l.path) {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) {
					if !emit() {
						return
					}
				}
			}
		}
	}()

	return out
}
