package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathbuddy/internal/router"
	"github.com/abhisek/mathbuddy/internal/screen"
	"github.com/abhisek/mathbuddy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	sparkleAt    = 400 * time.Millisecond
	bannerAt     = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `╭───────────╮
│  ┌─────┐  │
│  │ ◉ ◉ │  │
│  │  ‿  │  │
│  ├─────┤  │
│  │ +−×÷│  │
│  └─────┘  │
╰───────────╯`

var sparkleFrames = []string{"★", "✦", "✧"}

type tickMsg time.Time

// WelcomeScreen plays a short splash and hands over to the practice screen
// on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen replaced by next() on the first key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	mascot := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= sparkleAt {
		spark := sparkleFrames[w.tickCount%len(sparkleFrames)]
		a := lipgloss.NewStyle().Foreground(theme.Accent).Render(spark)
		b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spark)

		lines := strings.Split(mascot, "\n")
		for i := range lines {
			switch i {
			case 0, 6:
				lines[i] = a + "  " + lines[i] + "  " + b
			case 3:
				lines[i] = b + "  " + lines[i] + "  " + a
			default:
				lines[i] = "   " + lines[i] + "   "
			}
		}
		mascot = strings.Join(lines, "\n")
	}

	sections := []string{mascot}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width, height),
			"",
			theme.Body.Bold(true).Render("Let's practice math together and have fun learning!"),
			"",
			theme.Hint.Render("press any key to start"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
