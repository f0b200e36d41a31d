package embed

import (
	"fmt"

	"github.com/spf13/cobra"

	"aihub/internal/app"
	"aihub/internal/app/model"
	"aihub/internal/app/settings"
)

// Cmd represents the embed command
var Cmd = &cobra.Command{
	Use:   "embed [text]...",
	Short: "Produce embedding vectors for one or more texts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()
		defer application.Engines.UnloadAll()

		ctx := cmd.Context()

		// Local inference requires the model loaded first.
		choice, err := application.Store.Get(model.CapabilityEmbedding)
		if err != nil {
			return err
		}
		if choice == settings.ChoiceLocal && application.Engines.Embedding != nil {
			if err := application.Engines.Embedding.Load(ctx); err != nil {
				return err
			}
		}

		provider, err := application.Resolver.Embedding()
		if err != nil {
			return err
		}

		vectors, err := provider.EmbedBatch(ctx, args)
		if err != nil {
			return err
		}

		info := provider.Info()
		fmt.Fprintf(cmd.OutOrStdout(), "provider: %s (%s)\n", info.Name, info.Kind)
		for i, vector := range vectors {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d] dim=%d first=%.4f\n", i, len(vector), vector[0])
		}
		return nil
	},
}
