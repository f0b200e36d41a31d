package transcribe

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aihub/internal/app"
	"aihub/internal/app/model"
	"aihub/internal/app/provider"
	"aihub/internal/app/settings"
)

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [file.wav]",
	Short: "Transcribe a WAV file to timestamped text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()
		defer application.Engines.UnloadAll()

		encoded, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		ctx := cmd.Context()

		choice, err := application.Store.Get(model.CapabilityTranscription)
		if err != nil {
			return err
		}
		if choice == settings.ChoiceLocal && application.Engines.Transcription != nil {
			if err := application.Engines.Transcription.Load(ctx); err != nil {
				return err
			}
		}

		stt, err := application.Resolver.SpeechToText()
		if err != nil {
			return err
		}

		segments, err := stt.Transcribe(ctx, encoded, provider.FormatWAV)
		if err != nil {
			return err
		}

		for _, segment := range segments {
			fmt.Fprintf(cmd.OutOrStdout(), "[%8.2f -> %8.2f] %s\n",
				segment.Start, segment.End, segment.Text)
		}
		return nil
	},
}
