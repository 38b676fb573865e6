package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/app"
)

// runApp wires the oracle and a practice session, then launches the TUI.
func runApp(cmd *cobra.Command) error {
	closeLog, err := setupTUILogging()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()

	settings, err := practiceSettings(cmd)
	if err != nil {
		return err
	}

	env, err := openOracle(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	// A key found in the environment connects right away; without one the
	// practice screen asks for it.
	provider, err := env.envProvider(ctx)
	if err != nil {
		return fmt.Errorf("connect %s: %w", env.cfg.Provider, err)
	}
	slog.Info("starting practice",
		"provider", env.cfg.Provider,
		"connected", provider != nil,
		"grade", settings.Grade,
		"type", settings.ProblemType,
		"difficulty", settings.Difficulty,
	)

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Controller: env.controller(settings, provider),
		Provider:   env.cfg.Provider,
		SkipSplash: noSplash,
	})
}
