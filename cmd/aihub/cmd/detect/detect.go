package detect

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aihub/internal/app/language"
)

var maxHypotheses int

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect [text]",
	Short: "Detect the language of a piece of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		detector := language.NewDetector()

		verdict, ok := detector.Detect(text)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no confident verdict (text too short or ambiguous)")
			return nil
		}

		code, _ := verdict.ISOCode()
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", verdict, code)

		for _, hyp := range detector.DetectWithConfidence(text, maxHypotheses) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %.3f\n", hyp.Language, hyp.Confidence)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().IntVarP(&maxHypotheses, "hypotheses", "n", 3, "number of ranked hypotheses to print")
}
