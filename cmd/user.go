package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/toolkit"
	"github.com/ittoolkit/itk/tui"
	helpmenus "github.com/ittoolkit/itk/tui/help-menus"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Query accounts and change passwords",
}

var passwdCmd = &cobra.Command{
	Use:         "passwd [username]",
	Short:       "Set a new password on a local account",
	Args:        cobra.MaximumNArgs(1),
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		given := map[string]string{}
		if len(args) == 1 {
			given[toolkit.InputUsername] = args[0]
		}
		if pw, _ := cmd.Flags().GetString("password"); pw != "" {
			given[toolkit.InputPassword] = pw
		}
		return runWithInputs(cmd, toolkit.ActionUserPassword, given)
	},
}

func init() {
	userCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderCommandHelp(cmd,
			helpmenus.Example{Comment: "Show domain details for an account", Command: "itk user domain jdoe"},
			helpmenus.Example{Comment: "Reset a password, prompting for the new one", Command: "itk user passwd jdoe"},
		)
	})

	passwdCmd.Flags().String("password", "", "new password (prompted for when omitted)")

	userCmd.AddCommand(
		usernameCommand("domain [username]", "Show domain account details", toolkit.ActionUserDomain),
		usernameCommand("info [username]", "Show local account details", toolkit.ActionUserInfo),
		passwdCmd,
		actionCommand("list", "List local user accounts", toolkit.ActionUserList, false),
	)
	rootCmd.AddCommand(userCmd)
}

func usernameCommand(use, short, actionID string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			given := map[string]string{}
			if len(args) == 1 {
				given[toolkit.InputUsername] = args[0]
			}
			return runWithInputs(cmd, actionID, given)
		},
	}
}

// runWithInputs fills the action's inputs from given and prompts for the
// rest.
func runWithInputs(cmd *cobra.Command, actionID string, given map[string]string) error {
	action, err := toolkit.FindAction(actionID)
	if err != nil {
		return err
	}

	in := toolkit.Inputs{}
	for _, input := range action.Inputs {
		if v, ok := given[input.Key]; ok {
			in[input.Key] = v
			continue
		}
		v, err := tui.RunInput(input)
		if err != nil {
			return err
		}
		in[input.Key] = v
	}

	return runAction(cmd, actionID, in)
}
