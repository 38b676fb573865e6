package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/tutor"
	"github.com/abhisek/mathbuddy/internal/ui/components"
	"github.com/abhisek/mathbuddy/internal/ui/layout"
	"github.com/abhisek/mathbuddy/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// keyInstructions tells the student where to get a key for each provider.
var keyInstructions = map[string][]string{
	llm.ProviderGemini: {
		"Visit aistudio.google.com",
		`Click "Get API key"`,
		"Create a new API key",
		"Press s and paste it into the settings",
	},
	llm.ProviderOpenAI: {
		"Visit platform.openai.com/api-keys",
		"Create a new secret key",
		"Press s and paste it into the settings",
	},
	llm.ProviderAnthropic: {
		"Visit console.anthropic.com",
		"Create a new API key",
		"Press s and paste it into the settings",
	},
	llm.ProviderOpenRouter: {
		"Visit openrouter.ai/keys",
		"Create a new API key",
		"Press s and paste it into the settings",
	},
}

func (s *PracticeScreen) View(width, height int) string {
	snap := s.ctrl.Snapshot()
	tw := layout.TextWidth(width)

	sections := []string{
		theme.Subtitle.Width(width).Render("Let's practice math together and have fun learning! 🌟"),
		s.renderSettingsLine(snap, width),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, renderProgress(snap.Session, tw)),
	}

	if !snap.HasCredential {
		sections = append(sections, s.renderCredentialPrompt(tw))
	} else {
		sections = append(sections, s.renderProblem(snap.Session, tw))
	}

	if line := s.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	if s.hint != "" {
		sections = append(sections, theme.HintCard.Width(tw).Render("💡 Hint: "+s.hint))
	}
	if fb := snap.Session.LastFeedback; fb != nil {
		sections = append(sections, renderFeedback(*fb, tw))
	}
	if s.explanation != "" {
		sections = append(sections, theme.ExplainCard.Width(tw).Render("📚 "+s.explanation))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *PracticeScreen) renderSettingsLine(snap session.Snapshot, width int) string {
	st := snap.Settings
	line := fmt.Sprintf("%s · %s · %s", st.Grade.Label(), st.ProblemType.Label(), st.Difficulty.Label())
	if snap.Model != "" {
		line += "  (" + snap.Model + ")"
	}
	return theme.Hint.Width(width).Align(lipgloss.Center).Render(line)
}

func renderProgress(sess session.Session, width int) string {
	if sess.TotalAttempts == 0 {
		return theme.Hint.Render("Start practicing to track your progress!")
	}
	bar := components.NewScoreBar(sess.Score, sess.TotalAttempts, width-24)
	cheer := theme.Label.Render(fmt.Sprintf("%d%%", sess.Percentage())) + " - Keep it up! 🎉"
	return bar.View() + "  " + cheer
}

func (s *PracticeScreen) renderCredentialPrompt(width int) string {
	steps := keyInstructions[s.provider]
	if steps == nil {
		steps = keyInstructions[llm.ProviderGemini]
	}

	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("👈 " + session.UserMessage(session.ErrMissingCredential)))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("How to get an API key:"))
	b.WriteString("\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	if s.provider == "" || s.provider == llm.ProviderGemini {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Google offers a free tier with generous limits."))
	}
	return theme.Card.Width(width).Render(b.String())
}

func (s *PracticeScreen) renderProblem(sess session.Session, width int) string {
	if !sess.HasProblem() {
		return theme.Card.Width(width).Align(lipgloss.Center).
			Render(theme.Hint.Render("Press g to generate a new problem"))
	}

	var b strings.Builder
	b.WriteString(theme.Label.Render("📝 Your Problem:"))
	b.WriteString("\n\n")
	b.WriteString(theme.Problem.Width(width - 6).Render(sess.CurrentProblem))
	b.WriteString("\n\n")
	b.WriteString("Your answer: ")
	b.WriteString(s.input.View())
	return theme.Card.Width(width).Render(b.String())
}

func (s *PracticeScreen) renderStatus() string {
	switch {
	case s.busy != idle:
		frame := spinnerFrames[s.spinFrame%len(spinnerFrames)]
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(frame + " " + busyText[s.busy])
	case s.errMsg != "":
		return theme.Failure.Render(s.errMsg)
	case s.status != "":
		return theme.Hint.Render(s.status)
	}
	return ""
}

func renderFeedback(fb session.Feedback, width int) string {
	if fb.Verdict == tutor.Correct {
		head := theme.Correct.Render("🎉 Correct!")
		return theme.CorrectCard.Width(width).Render(head + "\n" + fb.Text)
	}
	head := theme.Incorrect.Render("Keep trying!")
	return theme.IncorrectCard.Width(width).Render(head + "\n" + fb.Text)
}
