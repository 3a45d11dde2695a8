package toolkit

import (
	"context"

	"github.com/ittoolkit/itk/internal/runner"
)

const renewWarning = "Doing a release/renew will disconnect remote sessions. Proceed?"

var (
	cmdFlushDNS      = runner.Cmd("ipconfig", "/flushdns")
	cmdResetWinsock  = runner.Cmd("netsh", "winsock", "reset")
	cmdIPRelease     = runner.Cmd("ipconfig", "/release")
	cmdIPRenew       = runner.Cmd("ipconfig", "/renew")
	cmdGPUpdate      = runner.Cmd("gpupdate", "/force")
	cmdBatteryReport = runner.Cmd("powercfg", "/batteryreport")
)

// FlushDNS clears the local resolver cache.
func (t *Toolkit) FlushDNS(ctx context.Context) Outcome {
	return t.runSequence(ctx, cmdFlushDNS)
}

// ResetWinsock resets the Winsock catalog. Takes effect after a reboot.
func (t *Toolkit) ResetWinsock(ctx context.Context) Outcome {
	return t.runSequence(ctx, cmdResetWinsock)
}

// ReleaseRenew releases and renews every DHCP lease. Callers must confirm
// with the user first: remote sessions drop while the lease is released.
func (t *Toolkit) ReleaseRenew(ctx context.Context) Outcome {
	return t.runSequence(ctx, cmdIPRelease, cmdIPRenew)
}

// ForceGPUpdate reapplies group policy.
func (t *Toolkit) ForceGPUpdate(ctx context.Context) Outcome {
	return t.runSequence(ctx, cmdGPUpdate)
}

// BatteryReport writes battery-report.html to the working directory.
func (t *Toolkit) BatteryReport(ctx context.Context) Outcome {
	return t.runSequence(ctx, cmdBatteryReport)
}
