package toolkit

import (
	"context"
	"fmt"
)

// Action IDs. They double as CLI-facing names in logs and diagnostics.
const (
	ActionFlushDNS      = "flush-dns"
	ActionResetWinsock  = "reset-winsock"
	ActionIPRenew       = "ip-renew"
	ActionGPUpdate      = "gpupdate"
	ActionBatteryReport = "battery-report"
	ActionRDPEnable     = "rdp-enable"
	ActionRDPDisable    = "rdp-disable"
	ActionRDPStatus     = "rdp-status"
	ActionUserDomain    = "user-domain"
	ActionUserInfo      = "user-info"
	ActionUserPassword  = "user-password"
	ActionUserGPUpdate  = "user-gpupdate"
	ActionUserList      = "user-list"
	ActionHealthScan    = "health-scan"
	ActionSetDateTime   = "set-datetime"
)

// Input keys.
const (
	InputUsername = "username"
	InputPassword = "password"
	InputDate     = "date"
	InputTime     = "time"
)

// Input is one value prompted for before an action runs.
type Input struct {
	Key    string
	Title  string
	Prompt string
	Secret bool
	// Optional inputs may be submitted empty.
	Optional bool
	Validate func(string) error
}

// Inputs holds collected input values by key.
type Inputs map[string]string

// Action is one button.
type Action struct {
	ID    string
	Label string

	// Confirm, when set, is a yes/no question asked before running.
	Confirm string
	Inputs  []Input

	// Streaming actions (the health scan) are driven by the caller through
	// Toolkit.HealthScan instead of Run.
	Streaming bool

	Run func(ctx context.Context, t *Toolkit, in Inputs) Outcome
}

// Tab groups actions under one heading.
type Tab struct {
	Title   string
	Actions []Action
}

var usernameInput = Input{Key: InputUsername, Title: "Input", Prompt: "Enter username:"}

// Tabs returns the interface layout in display order.
func Tabs() []Tab {
	return []Tab{
		{
			Title: "Basic Fixes",
			Actions: []Action{
				{ID: ActionFlushDNS, Label: "Flush DNS", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.FlushDNS(ctx)
				}},
				{ID: ActionResetWinsock, Label: "Reset Winsock", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.ResetWinsock(ctx)
				}},
				{ID: ActionIPRenew, Label: "IP Release/Renew", Confirm: renewWarning, Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.ReleaseRenew(ctx)
				}},
				{ID: ActionGPUpdate, Label: "Force GPUpdate", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.ForceGPUpdate(ctx)
				}},
				{ID: ActionBatteryReport, Label: "Battery Report", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.BatteryReport(ctx)
				}},
				{ID: ActionRDPEnable, Label: "Enable RDP", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.SetRDP(ctx, true)
				}},
				{ID: ActionRDPDisable, Label: "Disable RDP", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.SetRDP(ctx, false)
				}},
				{ID: ActionRDPStatus, Label: "RDP Status", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.RDPStatus(ctx)
				}},
			},
		},
		{
			Title: "User Dig",
			Actions: []Action{
				{ID: ActionUserDomain, Label: "User Domain Info", Inputs: []Input{usernameInput}, Run: func(ctx context.Context, t *Toolkit, in Inputs) Outcome {
					return t.UserDomainInfo(ctx, in[InputUsername])
				}},
				{ID: ActionUserInfo, Label: "Account Info", Inputs: []Input{usernameInput}, Run: func(ctx context.Context, t *Toolkit, in Inputs) Outcome {
					return t.AccountInfo(ctx, in[InputUsername])
				}},
				{ID: ActionUserPassword, Label: "Change Password", Inputs: []Input{
					usernameInput,
					{Key: InputPassword, Title: "Password", Prompt: "Enter new password:", Secret: true},
				}, Run: func(ctx context.Context, t *Toolkit, in Inputs) Outcome {
					return t.ChangePassword(ctx, in[InputUsername], in[InputPassword])
				}},
				{ID: ActionUserGPUpdate, Label: "Force GPUpdate", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.QueryGPUpdate(ctx)
				}},
				{ID: ActionUserList, Label: "List All Users", Run: func(ctx context.Context, t *Toolkit, _ Inputs) Outcome {
					return t.ListUsers(ctx)
				}},
			},
		},
		{
			Title: "Win Image Fix",
			Actions: []Action{
				{ID: ActionHealthScan, Label: "Start Health Scan", Streaming: true},
			},
		},
		{
			Title: "Date Time Set",
			Actions: []Action{
				{ID: ActionSetDateTime, Label: "Set Date and Time", Inputs: []Input{
					{Key: InputDate, Title: "Date", Prompt: DatePrompt, Optional: true, Validate: ValidateDate},
					{Key: InputTime, Title: "Time", Prompt: TimePrompt, Optional: true, Validate: ValidateTime},
				}, Run: func(ctx context.Context, t *Toolkit, in Inputs) Outcome {
					return t.SetDateTime(ctx, in[InputDate], in[InputTime])
				}},
			},
		},
	}
}

// FindAction looks an action up by ID across all tabs.
func FindAction(id string) (Action, error) {
	for _, tab := range Tabs() {
		for _, a := range tab.Actions {
			if a.ID == id {
				return a, nil
			}
		}
	}
	return Action{}, fmt.Errorf("unknown action %q", id)
}

// Execute runs a non-streaming action with the given inputs.
func (t *Toolkit) Execute(ctx context.Context, a Action, in Inputs) Outcome {
	if a.Streaming || a.Run == nil {
		err := fmt.Errorf("action %q must be run as a stream", a.ID)
		return failure("Error", err.Error(), err)
	}
	if in == nil {
		in = Inputs{}
	}
	log.Debug("executing action", "action", a.ID)
	return a.Run(ctx, t, in)
}
