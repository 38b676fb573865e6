package cmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathbuddy",
	Short: "Math practice buddy for kids",
	Long: `Math Buddy asks an AI tutor for grade-appropriate math problems, hints,
answer checks and step-by-step explanations, and keeps score while you practice.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to the oracle call log (overrides MATHBUDDY_DB env var)")
	pf.Bool("record", false, "Record oracle calls to the default log location when --db is not set")
	pf.String("provider", "", "Oracle provider: gemini, openai, openrouter, anthropic or mock")
	pf.String("model", "", "Model ID for the selected provider")
	pf.String("grade", "", "Grade level, e.g. kindergarten or \"2nd Grade\"")
	pf.String("type", "", "Problem type, e.g. addition or \"Word Problems\"")
	pf.String("difficulty", "", "Difficulty: easy, medium or hard")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// resolveDBPath returns the oracle call log path: --db flag, then
// MATHBUDDY_DB, then the default location if --record is set. "" means no
// log is kept.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	flag, _ := cmd.Flags().GetString("db")
	p, err := store.ConfiguredDBPath(flag)
	if err != nil || p != "" {
		return p, err
	}
	if record, _ := cmd.Flags().GetBool("record"); record {
		return store.DefaultDBPath()
	}
	return "", nil
}

// eventLogPath is resolveDBPath for commands that read the log; they fall
// back to the default location.
func eventLogPath(cmd *cobra.Command) (string, error) {
	p, err := resolveDBPath(cmd)
	if err != nil || p != "" {
		return p, err
	}
	return store.DefaultDBPath()
}
