// Package toolkit implements the administration actions exposed by the TUI
// and the CLI. Every action runs an OS tool through a runner.Executor and
// records what happened in the shared action log.
package toolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ittoolkit/itk/internal/actionlog"
	"github.com/ittoolkit/itk/internal/logging"
	"github.com/ittoolkit/itk/internal/runner"
)

var log = logging.L("toolkit")

const (
	DefaultCommandTimeout    = 5 * time.Minute
	DefaultHealthStepTimeout = 2 * time.Hour
)

// Outcome is what an action reports back to the user.
type Outcome struct {
	Title   string
	Message string
	Err     error

	// Cancelled means the action did nothing because input was missing or
	// the user declined.
	Cancelled bool
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

func success(title, message string) Outcome {
	return Outcome{Title: title, Message: message}
}

func failure(title, message string, err error) Outcome {
	return Outcome{Title: title, Message: message, Err: err}
}

func cancelled(message string) Outcome {
	return Outcome{Title: "Cancelled", Message: message, Cancelled: true}
}

// Toolkit binds the actions to an executor, a registry and the action log.
type Toolkit struct {
	exec     runner.Executor
	registry Registry
	log      *actionlog.Log

	commandTimeout    time.Duration
	healthStepTimeout time.Duration

	scanning     atomic.Bool
	scanLockPath string
}

type Option func(*Toolkit)

// WithRegistry replaces the system registry, used for dry runs and tests.
func WithRegistry(r Registry) Option {
	return func(t *Toolkit) { t.registry = r }
}

func WithCommandTimeout(d time.Duration) Option {
	return func(t *Toolkit) {
		if d > 0 {
			t.commandTimeout = d
		}
	}
}

func WithHealthStepTimeout(d time.Duration) Option {
	return func(t *Toolkit) {
		if d > 0 {
			t.healthStepTimeout = d
		}
	}
}

// WithScanLock makes HealthScan also take a lock file at path, so separate
// itk processes cannot scan at the same time.
func WithScanLock(path string) Option {
	return func(t *Toolkit) { t.scanLockPath = path }
}

func New(exec runner.Executor, alog *actionlog.Log, opts ...Option) *Toolkit {
	t := &Toolkit{
		exec:              exec,
		registry:          SystemRegistry(),
		log:               alog,
		commandTimeout:    DefaultCommandTimeout,
		healthStepTimeout: DefaultHealthStepTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Log returns the action log the toolkit writes to.
func (t *Toolkit) Log() *actionlog.Log {
	return t.log
}

// Scanning reports whether a health scan is in progress.
func (t *Toolkit) Scanning() bool {
	return t.scanning.Load()
}

func (t *Toolkit) run(ctx context.Context, c runner.Command) (runner.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.commandTimeout)
	defer cancel()
	return t.exec.Run(ctx, c)
}

// record appends a formatted line to the action log. A failing log write is
// reported in the diagnostic log but never fails the action itself.
func (t *Toolkit) record(format string, args ...any) {
	if err := t.log.Appendf(format, args...); err != nil {
		log.Error("action log write failed", logging.KeyError, err)
	}
}

// runSequence runs cmds in order, stopping at the first failure. The whole
// sequence is logged as one "a && b" line, matching how it is presented.
func (t *Toolkit) runSequence(ctx context.Context, cmds ...runner.Command) Outcome {
	display := sequenceString(cmds)
	for _, c := range cmds {
		if _, err := t.run(ctx, c); err != nil {
			t.record("Error: %v", err)
			return failure("Error", fmt.Sprintf("Command failed:\n%v", err), err)
		}
	}
	t.record("Executed: %s", display)
	return success("Done", "Executed: "+display)
}

func sequenceString(cmds []runner.Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " && ")
}

// query runs one command whose output is shown to the user. The command and
// its output are always logged; failures are logged a second time.
func (t *Toolkit) query(ctx context.Context, c runner.Command) Outcome {
	res, err := t.run(ctx, c)
	output := res.Output()
	t.record("Command: %s\nOutput: %s", c, strings.TrimRight(output, "\r\n"))

	if err != nil {
		detail := strings.TrimSpace(output)
		var exitErr *runner.ExitError
		if !errors.As(err, &exitErr) || detail == "" {
			detail = err.Error()
		}
		t.record("Error running %s: %s", c, detail)
		return failure("Error", detail, err)
	}
	return success("Result", strings.TrimSpace(output))
}
