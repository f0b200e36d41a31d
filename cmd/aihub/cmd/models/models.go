package models

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aihub/internal/app"
	"aihub/internal/app/model"
)

// Cmd represents the models command
var Cmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect the model catalog",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog models and their download status",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCAPABILITY\tNAME\tSIZE\tDOWNLOADED")
		for _, capability := range model.Capabilities() {
			for _, def := range application.Registry.AvailableModels(capability) {
				downloaded := "no"
				if application.Registry.IsDownloaded(def) {
					downloaded = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					def.ID, def.Capability, def.DisplayName, humanBytes(def.SizeBytes), downloaded)
			}
		}
		return w.Flush()
	},
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1fGiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func init() {
	Cmd.AddCommand(listCmd)
}
