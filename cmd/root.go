package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/compass/internal/config"
	"github.com/abhisek/compass/internal/logger"
	"github.com/abhisek/compass/internal/store"
)

// cfg is resolved once per invocation by the root pre-run hook.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Adaptive political compass survey",
	Long: "Compass asks 40 agree/disagree statements, steering later questions toward the\n" +
		"quadrant your answers point at, and places you on the economic and social axes.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/compass/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides COMPASS_DB env var)")
	pf.String("log-file", "", "Path to diagnostics log (default $XDG_STATE_HOME/compass/compass.log)")
	pf.String("log-level", "", "Diagnostics log level: debug, info, warn, error")
	pf.String("llm-provider", "", "LLM provider: anthropic, openai, openrouter, gemini, mock")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and starts the diagnostics logger. The TUI owns
// the terminal, so diagnostics always go to a file.
func setup(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("config")
	c, err := config.Load(config.LoadOptions{File: file, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	if c.Log.File == "" {
		if p, err := config.DefaultLogPath(); err == nil {
			c.Log.File = p
		}
	}
	if err := logger.Initialize(c.Log); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	cfg = c
	return nil
}

// resolveDBPath returns the database path from --db or the config (highest
// priority), then COMPASS_DB, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
