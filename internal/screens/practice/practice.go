package practice

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathbuddy/internal/router"
	"github.com/abhisek/mathbuddy/internal/screen"
	"github.com/abhisek/mathbuddy/internal/screens/settings"
	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/tutor"
	"github.com/abhisek/mathbuddy/internal/ui/components"
	"github.com/abhisek/mathbuddy/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// action is the oracle call currently in flight.
type action int

const (
	idle action = iota
	generating
	hinting
	checking
	explaining
)

// busyText is shown while an action is in flight.
var busyText = map[action]string{
	generating: "Creating a fun problem for you...",
	hinting:    "Thinking...",
	checking:   "Checking your answer...",
	explaining: "Preparing explanation...",
}

// PracticeScreen is the main screen: one problem at a time, with hints,
// answer checking and explanations from the oracle.
type PracticeScreen struct {
	ctrl     *session.Controller
	provider string

	input       components.TextInput
	busy        action
	spinFrame   int
	hint        string
	explanation string
	status      string
	errMsg      string
	needKey     bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.Resumer = (*PracticeScreen)(nil)

// New creates a PracticeScreen driving ctrl. provider names the oracle
// backend and selects the credential instructions.
func New(ctrl *session.Controller, provider string) *PracticeScreen {
	in := components.NewTextInput("Type your answer here...", 120)
	in.Blur()
	return &PracticeScreen{
		ctrl:     ctrl,
		provider: provider,
		input:    in,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.busy != idle {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if s.input.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check answer"},
			{Key: "Esc", Description: "Done typing"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{{Key: "g", Description: "New problem"}}
	if s.ctrl.Snapshot().Session.HasProblem() {
		hints = append(hints,
			layout.KeyHint{Key: "a", Description: "Answer"},
			layout.KeyHint{Key: "h", Description: "Hint"},
			layout.KeyHint{Key: "Enter", Description: "Check"},
			layout.KeyHint{Key: "x", Description: "Explain"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "r", Description: "Reset score"},
		layout.KeyHint{Key: "s", Description: "Settings"},
	)
}

// Resume refreshes the credential prompt after the settings screen closes.
func (s *PracticeScreen) Resume() tea.Cmd {
	if s.needKey && s.ctrl.HasCredential() {
		s.needKey = false
		s.errMsg = ""
	}
	return nil
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemReadyMsg:
		return s.handleProblem(msg)

	case hintReadyMsg:
		s.busy = idle
		if msg.Err != nil {
			s.fail(msg.Err)
			return s, nil
		}
		s.hint = msg.Hint
		return s, nil

	case checkDoneMsg:
		return s.handleCheck(msg)

	case explainReadyMsg:
		s.busy = idle
		if msg.Err != nil {
			s.fail(msg.Err)
			return s, nil
		}
		s.explanation = msg.Explanation
		return s, nil

	case settings.SavedMsg:
		s.status = "Settings saved."
		return s, nil

	case spinnerTickMsg:
		if s.busy == idle {
			return s, nil
		}
		s.spinFrame++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.input.Focused() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyReleaseMsg); ok {
		return s, nil
	}
	if s.busy != idle {
		return s, nil
	}

	key := msg.String()

	if s.input.Focused() {
		switch key {
		case "enter":
			return s, s.check()
		case "esc", "tab":
			s.input.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "g":
		return s, s.generate()
	case "h":
		return s, s.getHint()
	case "enter":
		return s, s.check()
	case "x":
		return s, s.explain()
	case "r":
		s.ctrl.ResetProgress()
		s.clearMessages()
		s.status = "Score reset. Fresh start!"
		return s, nil
	case "s":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: settings.New(s.ctrl)}
		}
	case "a", "tab":
		if s.ctrl.Snapshot().Session.HasProblem() {
			return s, s.input.Focus()
		}
	}
	return s, nil
}

func (s *PracticeScreen) generate() tea.Cmd {
	s.clearMessages()
	if !s.ctrl.HasCredential() {
		s.fail(session.ErrMissingCredential)
		return nil
	}
	return s.start(generating, func(ctx context.Context) tea.Msg {
		problem, err := s.ctrl.GenerateProblem(ctx)
		return problemReadyMsg{Problem: problem, Err: err}
	})
}

func (s *PracticeScreen) getHint() tea.Cmd {
	s.clearMessages()
	if err := s.precheck(); err != nil {
		s.fail(err)
		return nil
	}
	return s.start(hinting, func(ctx context.Context) tea.Msg {
		hint, err := s.ctrl.GetHint(ctx)
		return hintReadyMsg{Hint: hint, Err: err}
	})
}

func (s *PracticeScreen) check() tea.Cmd {
	s.clearMessages()
	if err := s.precheck(); err != nil {
		s.fail(err)
		return nil
	}
	answer := s.input.Value()
	if strings.TrimSpace(answer) == "" {
		s.fail(session.ErrEmptyAnswer)
		return s.input.Focus()
	}
	s.input.Blur()
	return s.start(checking, func(ctx context.Context) tea.Msg {
		fb, err := s.ctrl.CheckAnswer(ctx, answer)
		return checkDoneMsg{Feedback: fb, Err: err}
	})
}

func (s *PracticeScreen) explain() tea.Cmd {
	s.clearMessages()
	if err := s.precheck(); err != nil {
		s.fail(err)
		return nil
	}
	return s.start(explaining, func(ctx context.Context) tea.Msg {
		text, err := s.ctrl.ExplainSolution(ctx)
		return explainReadyMsg{Explanation: text, Err: err}
	})
}

// start marks a as in flight and returns the oracle command with the
// spinner.
func (s *PracticeScreen) start(a action, call func(context.Context) tea.Msg) tea.Cmd {
	s.busy = a
	s.spinFrame = 0
	return tea.Batch(
		func() tea.Msg { return call(context.Background()) },
		spinnerTick(),
	)
}

func (s *PracticeScreen) handleProblem(msg problemReadyMsg) (screen.Screen, tea.Cmd) {
	s.busy = idle
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	s.hint = ""
	s.explanation = ""
	s.input.Reset()
	return s, s.input.Focus()
}

func (s *PracticeScreen) handleCheck(msg checkDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = idle
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	s.input.Mark(msg.Feedback.Verdict == tutor.Correct)
	return s, nil
}

// precheck reports the error a problem-bound action would fail with,
// without calling the oracle.
func (s *PracticeScreen) precheck() error {
	snap := s.ctrl.Snapshot()
	if !snap.HasCredential {
		return session.ErrMissingCredential
	}
	if !snap.Session.HasProblem() {
		return session.ErrNoActiveProblem
	}
	return nil
}

func (s *PracticeScreen) fail(err error) {
	s.errMsg = session.UserMessage(err)
	s.needKey = errors.Is(err, session.ErrMissingCredential)
}

func (s *PracticeScreen) clearMessages() {
	s.errMsg = ""
	s.status = ""
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
