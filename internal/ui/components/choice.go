package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathbuddy/internal/ui/theme"
)

// Choice is a single-line selector cycled with the left and right keys.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewChoice creates a selector with selected pre-chosen. An out-of-range
// index selects the first option.
func NewChoice(label string, options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{
		Label:    label,
		Options:  options,
		Selected: selected,
	}
}

// Update handles left/right cycling while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.Focused || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space", " ":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// Value returns the selected option, or "" when there are none.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders the label and the selected option between arrows.
func (c Choice) View() string {
	label := lipgloss.NewStyle().Width(20).Foreground(theme.TextDim).Render(c.Label)
	value := fmt.Sprintf("◂ %s ▸", c.Value())
	if c.Focused {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ") +
			label + theme.Selected.Render(value)
	}
	return "  " + label + theme.Unselected.Render(value)
}
