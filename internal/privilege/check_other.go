//go:build !windows

package privilege

import "os"

// IsAdmin returns true when running as root.
func IsAdmin() bool {
	return os.Geteuid() == 0
}
