package toolkit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ittoolkit/itk/internal/runner"
)

const (
	DateLayout = "01-02-2006"
	TimeLayout = "15:04:05"

	DatePrompt = "Enter new date (MM-DD-YYYY):"
	TimePrompt = "Enter new time (HH:MM:SS):"
)

// ValidateDate accepts an empty string (no change) or MM-DD-YYYY.
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q, expected MM-DD-YYYY", s)
	}
	return nil
}

// ValidateTime accepts an empty string (no change) or HH:MM:SS.
func ValidateTime(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM:SS", s)
	}
	return nil
}

// SetDateTime sets the system date and/or time through the cmd.exe date and
// time built-ins. Blank values are skipped. Input is validated before
// anything runs; the date is applied before the time.
func (t *Toolkit) SetDateTime(ctx context.Context, date, clock string) Outcome {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if date == "" && clock == "" {
		return cancelled("No date or time entered.")
	}

	for _, err := range []error{ValidateDate(date), ValidateTime(clock)} {
		if err != nil {
			t.record("Date/Time update error: %v", err)
			return failure("Error", err.Error(), err)
		}
	}

	if date != "" {
		if _, err := t.run(ctx, runner.Builtin("date", date)); err != nil {
			t.record("Date/Time update error: %v", err)
			return failure("Error", err.Error(), err)
		}
		t.record("Date set to %s", date)
	}

	if clock != "" {
		if _, err := t.run(ctx, runner.Builtin("time", clock)); err != nil {
			t.record("Date/Time update error: %v", err)
			return failure("Error", err.Error(), err)
		}
		t.record("Time set to %s", clock)
	}

	return success("DateTime Set", "Date and Time updated.")
}
