package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"aihub/cmd/aihub/cmd/describe"
	"aihub/cmd/aihub/cmd/detect"
	"aihub/cmd/aihub/cmd/embed"
	"aihub/cmd/aihub/cmd/generate"
	"aihub/cmd/aihub/cmd/models"
	"aihub/cmd/aihub/cmd/providers"
	"aihub/cmd/aihub/cmd/serve"
	"aihub/cmd/aihub/cmd/transcribe"
	"aihub/cmd/aihub/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aihub",
	Short: "Manage local and cloud AI capabilities from one place",
	Long: `aihub runs AI capabilities through interchangeable providers.
- Local models run against whisper.cpp and llama.cpp inference servers
- Cloud capabilities go through OpenAI and Gemini
- Each capability's provider choice is persisted and switchable at runtime`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(models.Cmd)
	rootCmd.AddCommand(detect.Cmd)
	rootCmd.AddCommand(embed.Cmd)
	rootCmd.AddCommand(generate.Cmd)
	rootCmd.AddCommand(describe.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(providers.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
