package settings

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathbuddy/internal/router"
	"github.com/abhisek/mathbuddy/internal/screen"
	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/tutor"
	"github.com/abhisek/mathbuddy/internal/ui/components"
	"github.com/abhisek/mathbuddy/internal/ui/layout"
	"github.com/abhisek/mathbuddy/internal/ui/theme"
)

// SavedMsg is sent to the screen beneath after settings were applied.
type SavedMsg struct{}

type credentialSetMsg struct {
	Err error
}

// Field order on the form.
const (
	fieldKey = iota
	fieldGrade
	fieldType
	fieldDifficulty
	fieldCount
)

// SettingsScreen edits the API key and the practice settings of one
// controller. Nothing is applied until the student presses Enter.
type SettingsScreen struct {
	ctrl    *session.Controller
	key     components.TextInput
	choices [fieldCount]components.Choice
	focus   int
	saving  bool
	saved   bool
	errMsg  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen pre-filled from ctrl.
func New(ctrl *session.Controller) *SettingsScreen {
	cur := ctrl.Settings()
	s := &SettingsScreen{
		ctrl: ctrl,
		key:  components.NewSecretInput("paste your API key"),
	}
	s.choices[fieldGrade] = newChoice("Grade Level", tutor.GradeOptions(), string(cur.Grade))
	s.choices[fieldType] = newChoice("What to Practice?", tutor.ProblemTypeOptions(), string(cur.ProblemType))
	s.choices[fieldDifficulty] = newChoice("Difficulty", tutor.DifficultyOptions(), string(cur.Difficulty))
	return s
}

func newChoice(label string, opts []tutor.Option, current string) components.Choice {
	labels := make([]string, len(opts))
	selected := 0
	for i, o := range opts {
		labels[i] = o.Label
		if o.Value == current {
			selected = i
		}
	}
	return components.NewChoice(label, labels, selected)
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.key.Init()
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓/Tab", Description: "Move"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case credentialSetMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = "That key did not work: " + msg.Err.Error()
			return s, nil
		}
		return s, s.done()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.focus == fieldKey {
		var cmd tea.Cmd
		s.key, cmd = s.key.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.saving {
		return s, nil
	}

	switch msg.String() {
	case "enter":
		return s, s.save()
	case "tab", "down":
		return s, s.moveFocus(1)
	case "shift+tab", "up":
		return s, s.moveFocus(-1)
	}

	if s.focus == fieldKey {
		var cmd tea.Cmd
		s.key, cmd = s.key.Update(msg)
		return s, cmd
	}
	var cmd tea.Cmd
	s.choices[s.focus], cmd = s.choices[s.focus].Update(msg)
	return s, cmd
}

func (s *SettingsScreen) moveFocus(delta int) tea.Cmd {
	s.choices[s.focus].Focused = false
	s.focus = (s.focus + delta + fieldCount) % fieldCount

	if s.focus == fieldKey {
		return s.key.Focus()
	}
	s.key.Blur()
	s.choices[s.focus].Focused = true
	return nil
}

// Selected returns the practice settings currently chosen on the form.
func (s *SettingsScreen) Selected() tutor.Settings {
	grades := tutor.GradeOptions()
	types := tutor.ProblemTypeOptions()
	levels := tutor.DifficultyOptions()
	return tutor.Settings{
		Grade:       tutor.GradeLevel(grades[s.choices[fieldGrade].Selected].Value),
		ProblemType: tutor.ProblemType(types[s.choices[fieldType].Selected].Value),
		Difficulty:  tutor.Difficulty(levels[s.choices[fieldDifficulty].Selected].Value),
	}
}

// save applies the settings right away and connects a typed key in the
// background. An empty key field keeps the current credential.
func (s *SettingsScreen) save() tea.Cmd {
	s.errMsg = ""
	if err := s.ctrl.Configure(s.Selected()); err != nil {
		s.errMsg = err.Error()
		return nil
	}

	key := strings.TrimSpace(s.key.Value())
	if key == "" {
		return s.done()
	}

	s.saving = true
	return func() tea.Msg {
		return credentialSetMsg{Err: s.ctrl.SetCredential(context.Background(), key)}
	}
}

func (s *SettingsScreen) done() tea.Cmd {
	s.saved = true
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return SavedMsg{} },
	)
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("⚙️  Settings"))
	b.WriteString("\n\n")

	keyLabel := lipgloss.NewStyle().Width(20).Foreground(theme.TextDim).Render("API Key")
	marker := "  "
	if s.focus == fieldKey {
		marker = theme.Selected.Render("▸ ")
	}
	b.WriteString(marker + keyLabel + s.key.View())
	b.WriteString("\n")
	if s.ctrl.HasCredential() {
		b.WriteString(theme.Hint.Render("  A key is set. Leave blank to keep it."))
	} else {
		b.WriteString(theme.Hint.Render("  Get your key from aistudio.google.com"))
	}
	b.WriteString("\n\n")

	for _, f := range []int{fieldGrade, fieldType, fieldDifficulty} {
		b.WriteString(s.choices[f].View())
		b.WriteString("\n")
	}

	switch {
	case s.saving:
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("Connecting..."))
	case s.errMsg != "":
		b.WriteString("\n" + theme.Failure.Render(s.errMsg))
	}

	card := theme.Card.Width(min(width-4, 64)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
