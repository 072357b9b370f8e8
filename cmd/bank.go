package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/compass/internal/bank"
	"github.com/abhisek/compass/internal/explain"
	"github.com/abhisek/compass/internal/llm"
	"github.com/abhisek/compass/internal/logger"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Browse and author the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions (optionally filtered by axis or specificity)",
	RunE: func(cmd *cobra.Command, args []string) error {
		axis, _ := cmd.Flags().GetString("axis")
		specificity, _ := cmd.Flags().GetInt("specificity")

		b, err := loadBank(cmd)
		if err != nil {
			return err
		}
		if axis != "" && axis != string(bank.AxisEconomic) && axis != string(bank.AxisSocial) {
			return fmt.Errorf("unknown axis %q (use economic or social)", axis)
		}

		questions := b.Filter(func(q bank.Question) bool {
			return (axis == "" || string(q.Axis) == axis) &&
				(specificity == 0 || q.Specificity == specificity)
		})
		if len(questions) == 0 {
			return fmt.Errorf("no questions match")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %-8s  %3s  %4s  %-9s  %s\n", "ID", "Axis", "Wt", "Spec", "Quadrant", "Statement")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, q := range questions {
			quadrant := string(q.Quadrant)
			if quadrant == "" {
				quadrant = "-"
			}
			explained := " "
			if q.Explanation != "" {
				explained = "?"
			}
			fmt.Fprintf(out, "%4d  %-8s  %+3d  %4d  %-9s %s%s\n",
				q.ID, q.Axis, q.Weight, q.Specificity, quadrant, explained, truncate(q.Text, 72))
		}

		fmt.Fprintf(out, "\n%d questions (bank %s, ? = has explanation)\n", len(questions), b.Version())
		return nil
	},
}

var bankExplainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Draft explanations for questions that lack one, using an LLM",
	Long: "Generates a neutral one-sentence explanation for every question without one\n" +
		"and prints the updated bank as YAML for review. The bank itself is never modified.",
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		outPath, _ := cmd.Flags().GetString("out")

		if !cfg.LLM.Enabled {
			return fmt.Errorf("no LLM provider configured: set COMPASS_LLM_PROVIDER or a vendor API key")
		}

		b, err := loadBank(cmd)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		log := logger.Get()
		provider, err := llm.NewProvider(ctx, cfg.LLM.Config, s.EventRepo(), log)
		if err != nil {
			return err
		}

		ecfg := explain.DefaultConfig()
		ecfg.Overwrite = overwrite
		if concurrency > 0 {
			ecfg.Concurrency = concurrency
		}

		report, err := explain.NewService(provider, ecfg, log).Fill(ctx, b)
		if err != nil {
			return fmt.Errorf("generate explanations: %w", err)
		}

		data, err := bank.Marshal(report.Bank)
		if err != nil {
			return err
		}
		if outPath == "" {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		} else if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "%d generated, %d skipped, %d failed (model %s)\n",
			len(report.Generated), len(report.Skipped), len(report.Failed), provider.ModelID())
		failed := make([]int, 0, len(report.Failed))
		for id := range report.Failed {
			failed = append(failed, id)
		}
		sort.Ints(failed)
		for _, id := range failed {
			fmt.Fprintf(errOut, "  question %d: %v\n", id, report.Failed[id])
		}
		return nil
	},
}

// loadBank returns the bank named by --bank, or the embedded one.
func loadBank(cmd *cobra.Command) (*bank.Bank, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		return bank.Default(), nil
	}
	return bank.Load(path)
}

func init() {
	bankCmd.PersistentFlags().String("bank", "", "Path to a bank YAML file (default: embedded bank)")

	bankListCmd.Flags().String("axis", "", "Filter by axis (economic or social)")
	bankListCmd.Flags().Int("specificity", 0, "Filter by specificity (1-5)")

	bankExplainCmd.Flags().Bool("overwrite", false, "Regenerate existing explanations too")
	bankExplainCmd.Flags().Int("concurrency", 0, "Maximum in-flight LLM requests (default 4)")
	bankExplainCmd.Flags().StringP("out", "o", "", "Write the YAML to a file instead of stdout")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankExplainCmd)
}
