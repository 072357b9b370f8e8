package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/app"
	"github.com/abhisek/compass/internal/logger"
	"github.com/abhisek/compass/internal/quiz"
)

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	log := logger.Get()
	engine := quiz.NewDefaultEngine()
	log.Info("starting compass",
		zap.String("version", version),
		zap.String("bank_version", engine.Bank().Version()))

	return app.Run(app.Options{
		Engine: engine,
		Repo:   st.EventRepo(),
		Log:    log,
	})
}
