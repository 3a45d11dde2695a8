package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate returns every problem found in c.
func (c *Config) Validate() []error {
	var errs []error

	if c.LogRefreshSeconds <= 0 {
		errs = append(errs, fmt.Errorf("log_refresh_seconds must be positive, got %d", c.LogRefreshSeconds))
	}
	if c.CommandTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("command_timeout_seconds must be positive, got %d", c.CommandTimeoutSeconds))
	}
	if c.HealthStepTimeoutMinutes <= 0 {
		errs = append(errs, fmt.Errorf("health_step_timeout_minutes must be positive, got %d", c.HealthStepTimeoutMinutes))
	}
	if !validLogLevels[strings.ToLower(c.DiagLogLevel)] {
		errs = append(errs, fmt.Errorf("diag_log_level %q is not one of debug, info, warn, error", c.DiagLogLevel))
	}
	if !validLogFormats[strings.ToLower(c.DiagLogFormat)] {
		errs = append(errs, fmt.Errorf("diag_log_format %q must be text or json", c.DiagLogFormat))
	}

	return errs
}
