package toolkit

import (
	"context"
	"fmt"

	"github.com/ittoolkit/itk/internal/runner"
)

const (
	terminalServerKey = `SYSTEM\CurrentControlSet\Control\Terminal Server`
	denyTSConnections = "fDenyTSConnections"
)

func rdpFirewallCommand(enable bool) runner.Command {
	state := "No"
	if enable {
		state = "Yes"
	}
	return runner.Cmd("netsh", "advfirewall", "firewall", "set", "rule", "group=remote desktop", "new", "enable="+state).
		Masked(fmt.Sprintf(`netsh advfirewall firewall set rule group="remote desktop" new enable=%s`, state))
}

// SetRDP allows or denies Remote Desktop connections and opens or closes
// the matching firewall rule group. Both steps must succeed.
func (t *Toolkit) SetRDP(ctx context.Context, enable bool) Outcome {
	verb := "disable"
	past := "disabled"
	deny := uint32(1)
	if enable {
		verb, past, deny = "enable", "enabled", 0
	}

	if err := t.registry.SetDWORD(terminalServerKey, denyTSConnections, deny); err != nil {
		t.record("RDP %s failed: %v", verb, err)
		return failure("RDP Error", err.Error(), err)
	}

	if _, err := t.run(ctx, rdpFirewallCommand(enable)); err != nil {
		t.record("RDP %s failed: %v", verb, err)
		return failure("RDP Error", err.Error(), err)
	}

	t.record("RDP %s", past)
	return success("RDP", fmt.Sprintf("Remote Desktop %s.", past))
}

// RDPEnabled reports whether Remote Desktop connections are currently allowed.
func (t *Toolkit) RDPEnabled() (bool, error) {
	v, err := t.registry.GetDWORD(terminalServerKey, denyTSConnections)
	if err != nil {
		return false, err
	}
	return v == 0, nil
}

// RDPStatus wraps RDPEnabled as an Outcome. Nothing is logged.
func (t *Toolkit) RDPStatus(ctx context.Context) Outcome {
	enabled, err := t.RDPEnabled()
	if err != nil {
		return failure("RDP Error", err.Error(), err)
	}
	if enabled {
		return success("RDP", "Remote Desktop is enabled.")
	}
	return success("RDP", "Remote Desktop is disabled.")
}
