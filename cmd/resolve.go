package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/compass/internal/ideology"
	"github.com/abhisek/compass/internal/scoring"
)

var resolveCmd = &cobra.Command{
	Use:     "resolve",
	Short:   "Show the ideology and quadrant for a compass position",
	Example: "  compass resolve --econ -40 --social -20",
	RunE: func(cmd *cobra.Command, args []string) error {
		econ, _ := cmd.Flags().GetFloat64("econ")
		social, _ := cmd.Flags().GetFloat64("social")

		for name, v := range map[string]float64{"econ": econ, "social": social} {
			if v < -scoring.MaxScore || v > scoring.MaxScore {
				return fmt.Errorf("--%s must be within [-%g, %g], got %g", name, scoring.MaxScore, scoring.MaxScore, v)
			}
		}

		scores := scoring.Scores{Economic: econ, Social: social}
		quadrant := scoring.Classify(scores)
		ideo := ideology.Resolve(econ, social)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Position:  economic %.2f, social %.2f\n", econ, social)
		fmt.Fprintf(out, "Quadrant:  %s\n", quadrant.DisplayName())
		fmt.Fprintf(out, "Ideology:  %s\n\n", ideo.Name)
		fmt.Fprintf(out, "%s\n\n", ideo.Description)
		fmt.Fprintf(out, "Country:   %s %s\n  %s\n", ideo.Country.Flag, ideo.Country.Name, ideo.Country.Reasoning)
		fmt.Fprintf(out, "US party:  %s\n  %s\n  Differs on: %s\n", ideo.USParty.Party, ideo.USParty.Reasoning, ideo.USParty.Disagreements)
		return nil
	},
}

func init() {
	resolveCmd.Flags().Float64("econ", 0, "Economic score, -100 (Left) to 100 (Right)")
	resolveCmd.Flags().Float64("social", 0, "Social score, -100 (Libertarian) to 100 (Authoritarian)")
}
