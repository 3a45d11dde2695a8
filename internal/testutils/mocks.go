package testutils

import (
	"context"
	"sync"

	"github.com/ittoolkit/itk/internal/runner"
)

// MockExecutor is a runner.Executor whose behaviour is supplied per test.
// Without RunFunc or StreamFunc every command succeeds with no output.
type MockExecutor struct {
	RunFunc    func(ctx context.Context, c runner.Command) (runner.Result, error)
	StreamFunc func(ctx context.Context, c runner.Command, onLine func(string)) (int, error)

	mu       sync.Mutex
	commands []runner.Command
}

func (m *MockExecutor) Run(ctx context.Context, c runner.Command) (runner.Result, error) {
	m.record(c)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, c)
	}
	return runner.Result{Command: c}, nil
}

func (m *MockExecutor) Stream(ctx context.Context, c runner.Command, onLine func(string)) (int, error) {
	m.record(c)
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, c, onLine)
	}
	return 0, nil
}

// Commands returns the display form of every command seen, in order.
func (m *MockExecutor) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.commands))
	for i, c := range m.commands {
		out[i] = c.String()
	}
	return out
}

// Raw returns the commands themselves, including unmasked arguments.
func (m *MockExecutor) Raw() []runner.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]runner.Command, len(m.commands))
	copy(out, m.commands)
	return out
}

func (m *MockExecutor) record(c runner.Command) {
	m.mu.Lock()
	m.commands = append(m.commands, c)
	m.mu.Unlock()
}

// FailWith returns a RunFunc that fails commands whose display form equals
// one of names with the given exit code and stderr, and succeeds otherwise
// with stdout.
func FailWith(exitCode int, stderr, stdout string, names ...string) func(context.Context, runner.Command) (runner.Result, error) {
	fail := make(map[string]bool, len(names))
	for _, n := range names {
		fail[n] = true
	}
	return func(_ context.Context, c runner.Command) (runner.Result, error) {
		if fail[c.String()] {
			res := runner.Result{Command: c, ExitCode: exitCode, Stderr: stderr}
			return res, &runner.ExitError{Result: res}
		}
		return runner.Result{Command: c, Stdout: stdout}, nil
	}
}
