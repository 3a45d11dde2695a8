// Package logging provides component-scoped slog loggers for diagnostics.
// Diagnostics go to a rotated file so they never interleave with the TUI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Field keys shared by every component.
const (
	KeyComponent  = "component"
	KeyAction     = "action"
	KeyCommand    = "command"
	KeyDurationMs = "durationMs"
	KeyError      = "error"
)

// base is the handler installed by Init. Component loggers are package
// variables built before Init runs, so they resolve it on every record.
var base atomic.Pointer[slog.Handler]

func init() {
	setBase(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func setBase(h slog.Handler) {
	base.Store(&h)
}

// lateHandler replays its WithAttrs/WithGroup calls, in order, on top of
// whatever handler is current.
type lateHandler struct {
	derive []func(slog.Handler) slog.Handler
}

func (h lateHandler) resolve() slog.Handler {
	out := *base.Load()
	for _, d := range h.derive {
		out = d(out)
	}
	return out
}

func (h lateHandler) with(d func(slog.Handler) slog.Handler) lateHandler {
	derive := make([]func(slog.Handler) slog.Handler, len(h.derive), len(h.derive)+1)
	copy(derive, h.derive)
	return lateHandler{derive: append(derive, d)}
}

func (h lateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.resolve().Enabled(ctx, level)
}

func (h lateHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.resolve().Handle(ctx, r)
}

func (h lateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

func (h lateHandler) WithGroup(name string) slog.Handler {
	return h.with(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

var root = slog.New(lateHandler{})

// Init installs the diagnostics handler: format "json" or text, level
// debug/info/warn/error. A nil output means os.Stderr.
func Init(format, level string, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if strings.EqualFold(format, "json") {
		setBase(slog.NewJSONHandler(output, opts))
	} else {
		setBase(slog.NewTextHandler(output, opts))
	}
	slog.SetDefault(root)
}

// L returns the logger for a component.
func L(component string) *slog.Logger {
	return root.With(KeyComponent, component)
}

// WithAction tags logger with an action ID.
func WithAction(logger *slog.Logger, actionID string) *slog.Logger {
	return logger.With(KeyAction, actionID)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		if strings.EqualFold(strings.TrimSpace(s), "warning") {
			return slog.LevelWarn
		}
		return slog.LevelInfo
	}
	return level
}
