package toolkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/ittoolkit/itk/internal/runner"
)

// maskedPassword replaces passwords wherever a command is shown or logged.
const maskedPassword = "********"

// invalidUserChars are the characters Windows rejects in account names.
const invalidUserChars = `"/\[]:;|=,+*?<>`

// ValidateUsername rejects names Windows would refuse.
func ValidateUsername(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("username is required")
	}
	if len(name) > 104 {
		return fmt.Errorf("username is longer than 104 characters")
	}
	if i := strings.IndexAny(name, invalidUserChars); i >= 0 {
		return fmt.Errorf("username contains invalid character %q", name[i])
	}
	return nil
}

// UserDomainInfo shows the domain account details for username.
func (t *Toolkit) UserDomainInfo(ctx context.Context, username string) Outcome {
	username = strings.TrimSpace(username)
	if username == "" {
		return cancelled("No username entered.")
	}
	if err := ValidateUsername(username); err != nil {
		return failure("Error", err.Error(), err)
	}
	return t.query(ctx, runner.Cmd("net", "user", username, "/domain"))
}

// AccountInfo shows the local account details for username.
func (t *Toolkit) AccountInfo(ctx context.Context, username string) Outcome {
	username = strings.TrimSpace(username)
	if username == "" {
		return cancelled("No username entered.")
	}
	if err := ValidateUsername(username); err != nil {
		return failure("Error", err.Error(), err)
	}
	return t.query(ctx, runner.Cmd("net", "user", username))
}

// ChangePassword sets a new password on a local account. The password never
// reaches the action log.
func (t *Toolkit) ChangePassword(ctx context.Context, username, password string) Outcome {
	username = strings.TrimSpace(username)
	if username == "" {
		return cancelled("No username entered.")
	}
	if password == "" {
		return cancelled("No password entered.")
	}
	if err := ValidateUsername(username); err != nil {
		return failure("Error", err.Error(), err)
	}

	display := runner.Cmd("net", "user", username, maskedPassword).String()
	return t.query(ctx, runner.Cmd("net", "user", username, password).Masked(display))
}

// ListUsers lists local accounts.
func (t *Toolkit) ListUsers(ctx context.Context) Outcome {
	return t.query(ctx, runner.Cmd("net", "user"))
}

// QueryGPUpdate is the User Dig flavour of gpupdate: its output is shown.
func (t *Toolkit) QueryGPUpdate(ctx context.Context) Outcome {
	return t.query(ctx, cmdGPUpdate)
}
