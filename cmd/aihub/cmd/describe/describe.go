package describe

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"aihub/internal/app"
)

// Cmd represents the describe command
var Cmd = &cobra.Command{
	Use:   "describe [image]",
	Short: "Describe an image with the selected vision provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()

		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		vision, err := application.Resolver.Vision()
		if err != nil {
			return err
		}

		text, err := vision.Describe(cmd.Context(), image, http.DetectContentType(image))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
