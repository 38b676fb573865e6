package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathbuddy/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app styling and an optional
// verdict mark shown after the value has been judged.
type TextInput struct {
	Model  textinput.Model
	Secret bool
	marked bool
	ok     bool
}

// NewTextInput creates a focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// NewSecretInput creates a text input that masks what is typed.
func NewSecretInput(placeholder string) TextInput {
	t := NewTextInput(placeholder, 256)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	t.Secret = true
	return t
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the wrapped input. Editing clears the mark.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.marked = false
	}
	return t, cmd
}

// View renders the input followed by the verdict mark, if any.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.marked {
		if t.ok {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Warning).Render("✗")
		}
	}
	return view
}

func (t TextInput) Value() string { return t.Model.Value() }

func (t *TextInput) SetValue(s string) { t.Model.SetValue(s) }

func (t TextInput) Focused() bool { return t.Model.Focused() }

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

func (t *TextInput) Blur() { t.Model.Blur() }

// Reset clears the value and the mark.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.marked = false
}

// Mark records the verdict for the current value.
func (t *TextInput) Mark(ok bool) {
	t.marked = true
	t.ok = ok
}
