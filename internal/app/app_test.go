package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/router"
	"github.com/abhisek/mathbuddy/internal/screens/practice"
	"github.com/abhisek/mathbuddy/internal/screens/welcome"
	"github.com/abhisek/mathbuddy/internal/session"
)

func testModel(skipSplash bool) AppModel {
	ctrl := session.New(session.Options{Provider: llm.NewMockProvider()})
	m := newAppModel(Options{Controller: ctrl, Provider: llm.ProviderGemini, SkipSplash: skipSplash})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestStartsWithSplash(t *testing.T) {
	m := testModel(false)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("expected welcome screen, got %T", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("expected the splash to start ticking")
	}
}

func TestSkipSplash(t *testing.T) {
	m := testModel(true)
	if _, ok := m.router.Active().(*practice.PracticeScreen); !ok {
		t.Errorf("expected practice screen, got %T", m.router.Active())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := testModel(true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := testModel(true)

	updated, cmd := m.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	m = updated.(AppModel)
	updated, _ = m.Update(cmd())
	m = updated.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("expected settings pushed, depth %d", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestViewShowsHeaderScore(t *testing.T) {
	m := testModel(true)
	content := m.render()
	if !strings.Contains(content, "Math Buddy") {
		t.Error("expected app name in header")
	}
	if !strings.Contains(content, "0/0") {
		t.Error("expected score in header")
	}
}

func TestTooSmall(t *testing.T) {
	m := testModel(true)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}
