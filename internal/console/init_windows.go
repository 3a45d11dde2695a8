//go:build windows

// Package console prepares the terminal for lipgloss output.
package console

import (
	"os"

	"golang.org/x/sys/windows"
)

const utf8CodePage = 65001

// Init switches the console to UTF-8 and turns on VT escape processing for
// stdout and stderr so the box drawing and colours render.
func Init() {
	_ = windows.SetConsoleOutputCP(utf8CodePage)
	_ = windows.SetConsoleCP(utf8CodePage)

	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		handle := windows.Handle(f.Fd())
		var mode uint32
		if err := windows.GetConsoleMode(handle, &mode); err == nil {
			_ = windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
		}
	}
}
