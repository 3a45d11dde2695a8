// Package runner executes the external OS tools behind each toolkit action.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/ittoolkit/itk/internal/logging"
)

var log = logging.L("runner")

// MaxOutputSize bounds how much of each stream Run keeps.
const MaxOutputSize = 1024 * 1024

// Command is one external invocation. Args are passed as a vector, never
// through a shell, unless Shell is set for cmd.exe built-ins such as date.
type Command struct {
	Name  string
	Args  []string
	Shell bool

	// Display overrides String, used to mask secrets in logs and dialogs.
	Display string
}

// Cmd is a shorthand constructor.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Builtin returns a command that must run inside cmd.exe.
func Builtin(name string, args ...string) Command {
	return Command{Name: name, Args: args, Shell: true}
}

// Masked returns a copy of c that renders as display.
func (c Command) Masked(display string) Command {
	c.Display = display
	return c
}

func (c Command) String() string {
	if c.Display != "" {
		return c.Display
	}
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func (c Command) argv() (string, []string) {
	if !c.Shell {
		return c.Name, c.Args
	}
	args := append([]string{"/C", c.Name}, c.Args...)
	return "cmd", args
}

func quoteArg(a string) string {
	if a == "" || strings.ContainsAny(a, " \t\"") {
		return `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
	}
	return a
}

// Result is the captured outcome of Run.
type Result struct {
	Command  Command
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Output returns stdout on success and stderr on failure, falling back to
// the other stream when the preferred one is empty.
func (r Result) Output() string {
	primary, secondary := r.Stdout, r.Stderr
	if r.ExitCode != 0 {
		primary, secondary = r.Stderr, r.Stdout
	}
	if strings.TrimSpace(primary) == "" {
		return secondary
	}
	return primary
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Result Result
}

func (e *ExitError) Error() string {
	out := strings.TrimSpace(e.Result.Output())
	if out == "" {
		return fmt.Sprintf("command '%s' returned non-zero exit status %d", e.Result.Command, e.Result.ExitCode)
	}
	return fmt.Sprintf("command '%s' returned non-zero exit status %d: %s", e.Result.Command, e.Result.ExitCode, out)
}

// Executor runs commands. Exec is the real implementation; DryRun and the
// mocks in testutils stand in for it.
type Executor interface {
	Run(ctx context.Context, c Command) (Result, error)
	Stream(ctx context.Context, c Command, onLine func(string)) (int, error)
}

// Exec runs commands on the host.
type Exec struct{}

// NewExec returns the host executor.
func NewExec() *Exec {
	return &Exec{}
}

// Run executes c and captures its output. A non-zero exit returns the result
// together with an *ExitError.
func (e *Exec) Run(ctx context.Context, c Command) (Result, error) {
	start := time.Now()
	name, args := c.argv()
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitedWriter{buf: &stdout, limit: MaxOutputSize}
	cmd.Stderr = &limitedWriter{buf: &stderr, limit: MaxOutputSize}

	log.Debug("running command", logging.KeyCommand, c.String())
	err := cmd.Run()

	res := Result{
		Command:  c,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			log.Info("command failed", logging.KeyCommand, c.String(), "exitCode", res.ExitCode, logging.KeyDurationMs, res.Duration.Milliseconds())
			return res, &ExitError{Result: res}
		}
		if ctx.Err() != nil {
			err = fmt.Errorf("%s: %w", c, ctx.Err())
		} else {
			err = fmt.Errorf("%s: %w", c, err)
		}
		res.ExitCode = -1
		log.Warn("command could not run", logging.KeyCommand, c.String(), logging.KeyError, err)
		return res, err
	}

	log.Info("command completed", logging.KeyCommand, c.String(), logging.KeyDurationMs, res.Duration.Milliseconds())
	return res, nil
}

// Stream runs c with stdout and stderr merged, invoking onLine for every
// output line as it arrives. It returns the exit code; err is non-nil only
// when the process could not be started or was cancelled.
func (e *Exec) Stream(ctx context.Context, c Command, onLine func(string)) (int, error) {
	name, args := c.argv()
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	// Children that inherit the pipe must not hold Wait open forever.
	cmd.WaitDelay = 5 * time.Second

	if err := cmd.Start(); err != nil {
		pw.Close()
		return -1, fmt.Errorf("%s: %w", c, err)
	}

	scanDone := make(chan struct{})
	go func() {
		defer close(scanDone)
		ScanLines(pr, onLine)
	}()

	waitErr := cmd.Wait()
	pw.Close()
	<-scanDone

	if ctx.Err() != nil {
		return -1, fmt.Errorf("%s: %w", c, ctx.Err())
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("%s: %w", c, waitErr)
	}
	return 0, nil
}

// ScanLines calls onLine for each line read from r with trailing whitespace
// removed. Both \n and \r terminate a line because sfc and dism redraw their
// progress with carriage returns. Blank lines are skipped.
func ScanLines(r io.Reader, onLine func(string)) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxOutputSize)
	sc.Split(scanCRLF)
	for sc.Scan() {
		line := strings.TrimRight(stripNUL(sc.Text()), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if onLine != nil {
			onLine(line)
		}
	}
	// Drain so the writer side never blocks after a scanner error.
	_, _ = io.Copy(io.Discard, r)
}

// sfc writes UTF-16 to pipes on some builds; dropping NULs keeps it readable.
func stripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func scanCRLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// limitedWriter keeps at most limit bytes and silently drops the rest.
type limitedWriter struct {
	buf     *bytes.Buffer
	limit   int
	written int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.written >= w.limit {
		return len(p), nil
	}

	remaining := w.limit - w.written
	q := p
	if len(q) > remaining {
		q = q[:remaining]
	}

	n, err := w.buf.Write(q)
	w.written += n
	return len(p), err
}
