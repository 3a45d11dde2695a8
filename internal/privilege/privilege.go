package privilege

import "errors"

// ErrNotElevated is returned by Require when the process lacks admin rights.
var ErrNotElevated = errors.New("administrator privileges required")

// Message is what the user is told when ErrNotElevated stops a command.
const Message = "Please run this application as administrator."

// Require returns ErrNotElevated unless the process is elevated.
func Require() error {
	if !IsAdmin() {
		return ErrNotElevated
	}
	return nil
}
