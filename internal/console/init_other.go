//go:build !windows

// Package console prepares the terminal for lipgloss output.
package console

// Init is a no-op outside Windows; other terminals speak VT already.
func Init() {}
