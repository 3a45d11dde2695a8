package toolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ittoolkit/itk/internal/logging"
	"github.com/ittoolkit/itk/internal/runner"
	"github.com/ittoolkit/itk/internal/scanlock"
)

// ErrScanRunning is returned when a health scan is started while another is
// still in progress.
var ErrScanRunning = errors.New("a system health scan is already running")

// HealthCommands are run in order by HealthScan.
var HealthCommands = []runner.Command{
	runner.Cmd("sfc", "/scannow"),
	runner.Cmd("dism", "/online", "/cleanup-image", "/scanhealth"),
	runner.Cmd("dism", "/online", "/cleanup-image", "/checkhealth"),
	runner.Cmd("dism", "/online", "/cleanup-image", "/restorehealth"),
}

type HealthEventKind int

const (
	StepStarted HealthEventKind = iota
	StepOutput
	StepFinished
	StepFailed
)

// HealthEvent is one line of scan progress. Step is 1-based.
type HealthEvent struct {
	Kind     HealthEventKind
	Step     int
	Total    int
	Command  string
	Line     string
	ExitCode int
	Err      error
}

// Text renders the event the way the scan output pane shows it.
func (e HealthEvent) Text() string {
	switch e.Kind {
	case StepStarted:
		return "[>] " + e.Command
	case StepOutput:
		return "    " + strings.TrimSpace(e.Line)
	case StepFinished:
		if e.ExitCode == 0 {
			return "[✓] Done"
		}
		return fmt.Sprintf("[✗] Exit code %d", e.ExitCode)
	case StepFailed:
		return fmt.Sprintf("[!] Error: %v", e.Err)
	}
	return ""
}

// Completed reports whether the event closes a step.
func (e HealthEvent) Completed() bool {
	return e.Kind == StepFinished || e.Kind == StepFailed
}

// HealthSummary is the result of a scan.
type HealthSummary struct {
	Total     int
	Completed int
	Passed    int
	Cancelled bool
}

// Outcome converts the summary into the message shown when the scan ends.
func (s HealthSummary) Outcome() Outcome {
	if s.Cancelled {
		return cancelled("System health check cancelled.")
	}
	return success("Complete", "All checks finished.")
}

// HealthScan runs HealthCommands one after another, streaming output to
// onEvent from the calling goroutine. A failing step does not stop the scan;
// cancelling ctx does. Only one scan may run at a time.
func (t *Toolkit) HealthScan(ctx context.Context, onEvent func(HealthEvent)) (HealthSummary, error) {
	if !t.scanning.CompareAndSwap(false, true) {
		return HealthSummary{}, ErrScanRunning
	}
	defer t.scanning.Store(false)

	if t.scanLockPath != "" {
		lock, err := scanlock.Acquire(t.scanLockPath, t.scanLockMaxAge())
		if err != nil {
			if errors.Is(err, scanlock.ErrLocked) {
				return HealthSummary{}, ErrScanRunning
			}
			return HealthSummary{}, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				log.Warn("scan lock release failed", logging.KeyError, err)
			}
		}()
	}

	if onEvent == nil {
		onEvent = func(HealthEvent) {}
	}

	total := len(HealthCommands)
	summary := HealthSummary{Total: total}

	for i, c := range HealthCommands {
		if ctx.Err() != nil {
			break
		}

		step := i + 1
		onEvent(HealthEvent{Kind: StepStarted, Step: step, Total: total, Command: c.String()})

		stepCtx, cancel := context.WithTimeout(ctx, t.healthStepTimeout)
		code, err := t.exec.Stream(stepCtx, c, func(line string) {
			onEvent(HealthEvent{Kind: StepOutput, Step: step, Total: total, Command: c.String(), Line: line})
		})
		cancel()

		if err != nil {
			log.Warn("health step failed", logging.KeyCommand, c.String(), logging.KeyError, err)
			onEvent(HealthEvent{Kind: StepFailed, Step: step, Total: total, Command: c.String(), Err: err, ExitCode: -1})
		} else {
			onEvent(HealthEvent{Kind: StepFinished, Step: step, Total: total, Command: c.String(), ExitCode: code})
			if code == 0 {
				summary.Passed++
			}
		}
		summary.Completed = step
	}

	if ctx.Err() != nil {
		summary.Cancelled = true
		t.record("System health check cancelled")
		return summary, nil
	}

	t.record("System health check completed")
	return summary, nil
}

// scanLockMaxAge bounds how long a lock from a crashed process can block a
// new scan: every step running to its timeout.
func (t *Toolkit) scanLockMaxAge() time.Duration {
	return time.Duration(len(HealthCommands)) * t.healthStepTimeout
}
