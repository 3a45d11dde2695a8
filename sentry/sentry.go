// Package sentry wraps sentry-go for error and crash reporting. Everything is
// a no-op until Init is called with a DSN.
package sentry

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry configuration options
type Config struct {
	DSN         string
	Environment string // "dev" or "production"
	Release     string // e.g. "itk@1.2.0"
	Debug       bool
	SampleRate  float64

	// Events whose message contains one of these are dropped.
	FilteredErrors []string

	ServiceName string
	InstanceID  string
}

// Init initializes Sentry with the provided configuration
func Init(cfg Config) error {
	if cfg.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
		SampleRate:       cfg.SampleRate,
		BeforeSend:       beforeSend(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("service", cfg.ServiceName)
		scope.SetTag("environment", cfg.Environment)
		if cfg.InstanceID != "" {
			scope.SetTag("instance_id", cfg.InstanceID)
		}
	})

	return nil
}

func beforeSend(cfg Config) func(*sentry.Event, *sentry.EventHint) *sentry.Event {
	return func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
		if filtered(event, cfg.FilteredErrors) {
			return nil
		}
		if event.Extra == nil {
			event.Extra = make(map[string]interface{})
		}
		event.Extra["service_name"] = cfg.ServiceName
		event.Extra["instance_id"] = cfg.InstanceID
		return event
	}
}

func filtered(event *sentry.Event, patterns []string) bool {
	for _, p := range patterns {
		if event.Message != "" && strings.Contains(event.Message, p) {
			return true
		}
		for _, exception := range event.Exception {
			if strings.Contains(exception.Value, p) {
				return true
			}
		}
	}
	return false
}

// Flush flushes buffered events with timeout
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// CaptureError captures an error with typed options
func CaptureError(err error, opts *EventOptions) *sentry.EventID {
	if err == nil {
		return nil
	}

	var eventID *sentry.EventID
	sentry.WithScope(func(scope *sentry.Scope) {
		opts.apply(scope)
		eventID = sentry.CaptureException(err)
	})
	return eventID
}

// AddBreadcrumb records an action so later events show what led up to them.
func AddBreadcrumb(category, message string, data map[string]interface{}, level Level) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "default",
		Category:  category,
		Message:   message,
		Data:      data,
		Level:     level,
		Timestamp: time.Now(),
	})
}

// Level is a Sentry severity level (re-exported for convenience)
type Level = sentry.Level

const (
	LevelDebug   = sentry.LevelDebug
	LevelInfo    = sentry.LevelInfo
	LevelWarning = sentry.LevelWarning
	LevelError   = sentry.LevelError
	LevelFatal   = sentry.LevelFatal
)

// CapturePanic should be used in a defer statement. It reports the panic,
// flushes, and re-panics.
func CapturePanic(opts *EventOptions) {
	if r := recover(); r != nil {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(sentry.LevelFatal)
			opts.apply(scope)
			sentry.CurrentHub().Recover(r)
		})
		sentry.Flush(5 * time.Second)
		panic(r)
	}
}

// Environment maps a build version to the reporting environment.
func Environment(buildVersion string) string {
	if buildVersion == "dev" {
		return "dev"
	}
	if env := os.Getenv("ITK_ENVIRONMENT"); env != "" {
		return env
	}
	return "production"
}

// InstanceID identifies the machine the toolkit runs on.
func InstanceID() string {
	if id := os.Getenv("COMPUTERNAME"); id != "" {
		return id
	}
	if id, err := os.Hostname(); err == nil && id != "" {
		return id
	}
	return "unknown"
}
