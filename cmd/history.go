package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past survey results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.EventRepo().QueryResults(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results yet.")
			return nil
		}

		current := bank.Default().Version()
		fmt.Fprintf(out, "%-19s  %-24s  %-10s  %8s  %8s  %4s  %s\n",
			"Timestamp", "Ideology", "Quadrant", "Economic", "Social", "Qs", "Bank")
		fmt.Fprintln(out, strings.Repeat("─", 96))

		stale := 0
		for _, r := range results {
			mark := ""
			if !bank.Comparable(r.BankVersion, current) {
				mark = " *"
				stale++
			}
			fmt.Fprintf(out, "%-19s  %-24s  %-10s  %8.2f  %8.2f  %4d  %s%s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Ideology, 24),
				r.Quadrant,
				r.Economic,
				r.Social,
				r.QuestionCount,
				r.BankVersion,
				mark,
			)
		}

		if stale > 0 {
			fmt.Fprintf(out, "\n* recorded against a different major bank version than %s; scores are not comparable\n", current)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
}
