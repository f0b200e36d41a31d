package generate

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aihub/internal/app"
	"aihub/internal/app/model"
	"aihub/internal/app/settings"
)

// Cmd represents the generate command
var Cmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Complete a prompt with the selected text-generation provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()
		defer application.Engines.UnloadAll()

		ctx := cmd.Context()

		choice, err := application.Store.Get(model.CapabilityGeneration)
		if err != nil {
			return err
		}
		if choice == settings.ChoiceLocal && application.Engines.Generation != nil {
			if err := application.Engines.Generation.Load(ctx); err != nil {
				return err
			}
		}

		generator, err := application.Resolver.TextGeneration()
		if err != nil {
			return err
		}

		text, err := generator.Generate(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
