package providers

import (
	"fmt"

	"github.com/spf13/cobra"

	"aihub/internal/app"
	"aihub/internal/app/errors"
	"aihub/internal/app/model"
	"aihub/internal/app/settings"
)

// Cmd represents the providers command
var Cmd = &cobra.Command{
	Use:   "providers",
	Short: "Show or change which provider serves each capability",
}

var getCmd = &cobra.Command{
	Use:   "get [capability]",
	Short: "Print the provider choice for a capability (or all)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()

		capabilities := model.Capabilities()
		if len(args) == 1 {
			capability := model.Capability(args[0])
			if !capability.Valid() {
				return errors.WithCause(errors.ErrInvalidChoice,
					errors.Newf("unknown capability %q", args[0]))
			}
			capabilities = []model.Capability{capability}
		}

		for _, capability := range capabilities {
			choice, err := application.Store.Get(capability)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", capability, choice)
		}
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set [capability] [local|cloud]",
	Short: "Persist the provider choice for a capability",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()

		capability := model.Capability(args[0])
		choice := settings.Choice(args[1])
		if err := application.Store.Set(capability, choice); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", capability, choice)
		return nil
	},
}

func init() {
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
}
