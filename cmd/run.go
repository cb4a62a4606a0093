package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/datapath/internal/app"
	"github.com/abhisek/datapath/internal/auth"
	"github.com/abhisek/datapath/internal/lesson"
	"github.com/abhisek/datapath/internal/llm"
	"github.com/abhisek/datapath/internal/logging"
	"github.com/abhisek/datapath/internal/store"
	"github.com/abhisek/datapath/internal/tutor"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the terminal tutor (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	exec := newExecutor(cmd, st, logger)
	logger.WithField("db", cfg.DBPath).Info("starting terminal ui")
	return app.Run(ctx, tutor.NewState(), exec, logger)
}

// newExecutor wires auth, progress and the AI provider. A missing
// provider is reported and leaves AI features unavailable.
func newExecutor(cmd *cobra.Command, st *store.Store, logger *logrus.Logger) *tutor.Executor {
	var provider llm.Provider
	p, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		logger.WithError(err).Warn("no llm provider")
	} else {
		provider = p
	}

	cfg := lesson.DefaultConfig()
	return tutor.NewExecutor(
		auth.NewService(st.Accounts()),
		st.Progress(),
		lesson.NewGenerator(provider, cfg),
		lesson.NewTutor(provider, cfg),
		tutor.WithLogger(logger),
	)
}
