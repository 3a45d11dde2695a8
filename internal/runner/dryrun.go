package runner

import (
	"context"
	"sync"
)

// DryRun records commands instead of executing them. Every command succeeds
// with empty output.
type DryRun struct {
	mu       sync.Mutex
	commands []Command
}

// NewDryRun returns an empty recorder.
func NewDryRun() *DryRun {
	return &DryRun{}
}

func (d *DryRun) Run(ctx context.Context, c Command) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Command: c, ExitCode: -1}, err
	}
	d.record(c)
	log.Info("dry run", "command", c.String())
	return Result{Command: c, Stdout: "[dry run] " + c.String() + "\n"}, nil
}

func (d *DryRun) Stream(ctx context.Context, c Command, onLine func(string)) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	d.record(c)
	if onLine != nil {
		onLine("[dry run] " + c.String())
	}
	return 0, nil
}

// Commands returns every command seen so far, in order.
func (d *DryRun) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Command, len(d.commands))
	copy(out, d.commands)
	return out
}

func (d *DryRun) record(c Command) {
	d.mu.Lock()
	d.commands = append(d.commands, c)
	d.mu.Unlock()
}
