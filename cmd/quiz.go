package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/tutor"
	"github.com/abhisek/mathbuddy/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practice in plain line mode, without the full-screen UI",
	Long: `Work through a fixed number of problems on the command line.

Type your answer and press Enter. Other commands:
  /hint      ask for a hint
  /explain   show the step-by-step solution and move on
  /skip      move on without answering
  /quit      stop and show the score

The API key is read from the environment (e.g. GEMINI_API_KEY).`,
	RunE: runQuizCmd,
}

func init() {
	quizCmd.Flags().IntP("count", "n", 5, "Number of problems")
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	closeLog, err := setupTUILogging()
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := practiceSettings(cmd)
	if err != nil {
		return err
	}

	env, err := openOracle(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	provider, err := env.envProvider(cmd.Context())
	if err != nil {
		return fmt.Errorf("connect %s: %w", env.cfg.Provider, err)
	}
	if provider == nil {
		return fmt.Errorf("%s: %w", session.UserMessage(session.ErrMissingCredential), env.cfg.Validate())
	}

	ctrl := env.controller(settings, provider)
	return runQuiz(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout(), count)
}

// errQuit ends the quiz early.
var errQuit = errors.New("quit")

// runQuiz asks count problems, reading answers and commands line by line
// from in.
func runQuiz(ctx context.Context, ctrl *session.Controller, in io.Reader, out io.Writer, count int) error {
	scanner := bufio.NewScanner(in)
	st := ctrl.Settings()

	lipgloss.Fprintln(out, theme.Label.Render(fmt.Sprintf("%s · %s · %s",
		st.Grade.Label(), st.ProblemType.Label(), st.Difficulty.Label())))
	fmt.Fprintln(out)

	for i := 1; i <= count; i++ {
		err := quizProblem(ctx, ctrl, scanner, out, i, count)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	s := ctrl.Snapshot().Session
	fmt.Fprintf(out, "── Score: %d/%d (%d%%) ──\n", s.Score, s.TotalAttempts, s.Percentage())
	return nil
}

// quizProblem runs one problem until it is answered, explained or skipped.
// Oracle failures are printed and the problem moves on.
func quizProblem(ctx context.Context, ctrl *session.Controller, scanner *bufio.Scanner, out io.Writer, n, count int) error {
	fmt.Fprintln(out, "Creating a fun problem for you...")
	problem, err := ctrl.GenerateProblem(ctx)
	if err != nil {
		printError(out, err)
		return nil
	}

	fmt.Fprintf(out, "── Problem %d/%d ──\n", n, count)
	lipgloss.Fprintln(out, theme.Problem.Render(problem))

	for {
		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "/quit", "/q":
			return errQuit
		case "/skip", "/s":
			fmt.Fprintln(out)
			return nil
		case "/hint", "/h":
			hint, err := ctrl.GetHint(ctx)
			if err != nil {
				printError(out, err)
				continue
			}
			lipgloss.Fprintln(out, theme.Hint.Render("💡 Hint: "+hint))
			continue
		case "/explain", "/x":
			text, err := ctrl.ExplainSolution(ctx)
			if err != nil {
				printError(out, err)
				continue
			}
			fmt.Fprintln(out, text)
			fmt.Fprintln(out)
			return nil
		}
		if strings.HasPrefix(line, "/") {
			fmt.Fprintf(out, "Unknown command %q. Commands: /hint, /explain, /skip, /quit\n", line)
			continue
		}

		fb, err := ctrl.CheckAnswer(ctx, line)
		if err != nil {
			printError(out, err)
			continue
		}
		if fb.Verdict == tutor.Correct {
			lipgloss.Fprintln(out, theme.Correct.Render("✓ Correct!"))
		} else {
			lipgloss.Fprintln(out, theme.Incorrect.Render("✗ Keep trying!"))
		}
		fmt.Fprintln(out, fb.Text)
		fmt.Fprintln(out)
		return nil
	}
}

func printError(out io.Writer, err error) {
	lipgloss.Fprintln(out, theme.Failure.Render(session.UserMessage(err)))
}
