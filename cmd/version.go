package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/compass/internal/bank"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "compass %s (question bank %s)\n", version, bank.Default().Version())
	},
}
