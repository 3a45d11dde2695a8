// Package sysinfo builds the one-line host summary shown in the TUI header.
package sysinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// Summary describes the machine the toolkit is running on.
type Summary struct {
	Hostname string
	Platform string
	Version  string
	Uptime   time.Duration
}

// Collect queries the host. Errors leave the corresponding fields empty.
func Collect(ctx context.Context) (Summary, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("collect host info: %w", err)
	}
	return Summary{
		Hostname: info.Hostname,
		Platform: info.Platform,
		Version:  info.PlatformVersion,
		Uptime:   time.Duration(info.Uptime) * time.Second,
	}, nil
}

func (s Summary) String() string {
	if s.Hostname == "" {
		return ""
	}
	parts := []string{s.Hostname}
	if platform := strings.TrimSpace(s.Platform + " " + s.Version); platform != "" {
		parts = append(parts, platform)
	}
	parts = append(parts, "up "+FormatUptime(s.Uptime))
	return strings.Join(parts, " · ")
}

// FormatUptime renders d as "3d 4h 5m", dropping leading zero units.
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	mins := int(d / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
