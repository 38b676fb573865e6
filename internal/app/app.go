package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathbuddy/internal/router"
	"github.com/abhisek/mathbuddy/internal/screen"
	"github.com/abhisek/mathbuddy/internal/screens/practice"
	"github.com/abhisek/mathbuddy/internal/screens/welcome"
	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Controller *session.Controller

	// Provider names the oracle backend, for the credential instructions.
	Provider string

	// SkipSplash opens the practice screen directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *session.Controller
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	practiceScreen := func() screen.Screen {
		return practice.New(opts.Controller, opts.Provider)
	}

	var first screen.Screen
	if opts.SkipSplash {
		first = practiceScreen()
	} else {
		first = welcome.New(practiceScreen)
	}

	return AppModel{
		router: router.New(first),
		ctrl:   opts.Controller,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render draws the whole frame, or "" before the first window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	snap := m.ctrl.Snapshot()
	header := layout.RenderHeader(title, snap.Session.Score, snap.Session.TotalAttempts, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until the student quits.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: no session controller")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
