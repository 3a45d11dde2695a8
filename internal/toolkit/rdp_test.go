package toolkit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittoolkit/itk/internal/testutils"
)

const rdpRuleEnable = `netsh advfirewall firewall set rule group="remote desktop" new enable=Yes`
const rdpRuleDisable = `netsh advfirewall firewall set rule group="remote desktop" new enable=No`

// TestSetRDPEnable verifies the registry value, firewall rule and log line.
func TestSetRDPEnable(t *testing.T) {
	f := newFixture(t)

	out := f.tk.SetRDP(context.Background(), true)

	require.False(t, out.Failed())
	assert.Equal(t, "RDP", out.Title)
	assert.Equal(t, "Remote Desktop enabled.", out.Message)

	v, err := f.registry.GetDWORD(terminalServerKey, denyTSConnections)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)

	assert.Equal(t, []string{rdpRuleEnable}, f.exec.Commands())
	assert.Equal(t, []string{"RDP enabled"}, f.logged(t))

	raw := f.exec.Raw()
	require.Len(t, raw, 1)
	assert.Equal(t, []string{"advfirewall", "firewall", "set", "rule", "group=remote desktop", "new", "enable=Yes"}, raw[0].Args)
}

// TestSetRDPDisable verifies the deny flag is set and the rule disabled.
func TestSetRDPDisable(t *testing.T) {
	f := newFixture(t)

	out := f.tk.SetRDP(context.Background(), false)

	require.False(t, out.Failed())
	assert.Equal(t, "Remote Desktop disabled.", out.Message)

	enabled, err := f.tk.RDPEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	assert.Equal(t, []string{rdpRuleDisable}, f.exec.Commands())
	assert.Equal(t, []string{"RDP disabled"}, f.logged(t))
}

// TestSetRDPRegistryFailure verifies a registry error stops before the
// firewall step and is logged.
func TestSetRDPRegistryFailure(t *testing.T) {
	f := newFixture(t)
	f.registry.SetErr = errors.New("Access is denied.")

	out := f.tk.SetRDP(context.Background(), true)

	require.True(t, out.Failed())
	assert.Equal(t, "RDP Error", out.Title)
	assert.Empty(t, f.exec.Commands())
	assert.Equal(t, []string{"RDP enable failed: Access is denied."}, f.logged(t))
}

// TestSetRDPFirewallFailure verifies a failing netsh call fails the action.
func TestSetRDPFirewallFailure(t *testing.T) {
	f := newFixture(t)
	f.exec.RunFunc = testutils.FailWith(1, "No rules match the specified criteria.", "", rdpRuleDisable)

	out := f.tk.SetRDP(context.Background(), false)

	require.True(t, out.Failed())
	logged := f.logged(t)
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "RDP disable failed: ")
	assert.Contains(t, logged[0], "No rules match")
}

// TestRDPStatus verifies status reporting without logging.
func TestRDPStatus(t *testing.T) {
	f := newFixture(t)

	out := f.tk.RDPStatus(context.Background())
	assert.True(t, out.Failed(), "value not yet present")

	require.NoError(t, f.registry.SetDWORD(terminalServerKey, denyTSConnections, 0))
	out = f.tk.RDPStatus(context.Background())
	require.False(t, out.Failed())
	assert.Equal(t, "Remote Desktop is enabled.", out.Message)

	require.NoError(t, f.registry.SetDWORD(terminalServerKey, denyTSConnections, 1))
	out = f.tk.RDPStatus(context.Background())
	assert.Equal(t, "Remote Desktop is disabled.", out.Message)

	assert.Empty(t, f.logged(t))
}

// TestDryRunRegistryReportsDisabled verifies dry runs start from the Windows
// default of denied connections.
func TestDryRunRegistryReportsDisabled(t *testing.T) {
	f := newFixture(t)
	f.tk = New(f.exec, f.tk.Log(), WithRegistry(NewDryRunRegistry()))

	enabled, err := f.tk.RDPEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}
