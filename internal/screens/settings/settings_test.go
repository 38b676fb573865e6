package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *SettingsScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func newController(connectErr error) (*session.Controller, *[]string) {
	var keys []string
	ctrl := session.New(session.Options{
		Connector: func(_ context.Context, apiKey string) (llm.Provider, error) {
			keys = append(keys, apiKey)
			if connectErr != nil {
				return nil, connectErr
			}
			return llm.NewMockProvider(), nil
		},
	})
	return ctrl, &keys
}

func TestPrefilledFromController(t *testing.T) {
	ctrl, _ := newController(nil)
	want := tutor.Settings{Grade: tutor.Grade3, ProblemType: tutor.TypeFractions, Difficulty: tutor.DifficultyHard}
	if err := ctrl.Configure(want); err != nil {
		t.Fatal(err)
	}

	s := New(ctrl)

	if got := s.Selected(); got != want {
		t.Errorf("Selected = %+v, want %+v", got, want)
	}
}

func TestChangeSettingsAndSave(t *testing.T) {
	ctrl, keys := newController(nil)
	s := New(ctrl)

	s.Update(specialKey(tea.KeyDown))  // grade
	s.Update(specialKey(tea.KeyRight)) // 1st grade
	s.Update(specialKey(tea.KeyDown))  // type
	s.Update(specialKey(tea.KeyLeft))  // wraps to fractions
	s.Update(specialKey(tea.KeyDown))  // difficulty
	s.Update(specialKey(tea.KeyRight)) // medium

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected done command")
	}

	got := ctrl.Settings()
	want := tutor.Settings{Grade: tutor.Grade1, ProblemType: tutor.TypeFractions, Difficulty: tutor.DifficultyMedium}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
	if len(*keys) != 0 {
		t.Error("blank key field must not touch the credential")
	}
	if !s.saved {
		t.Error("expected saved")
	}
}

func TestSaveConnectsTypedKey(t *testing.T) {
	ctrl, keys := newController(nil)
	s := New(ctrl)

	typeText(s, "AIza-abc")
	if strings.Contains(s.View(100, 40), "AIza-abc") {
		t.Error("key must be masked")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.saving {
		t.Fatal("expected saving state while connecting")
	}
	s.Update(cmd())

	if len(*keys) != 1 || (*keys)[0] != "AIza-abc" {
		t.Errorf("connector keys = %v", *keys)
	}
	if !ctrl.HasCredential() {
		t.Error("expected credential set")
	}
	if !s.saved {
		t.Error("expected saved after connecting")
	}
}

func TestSaveReportsBadKey(t *testing.T) {
	ctrl, _ := newController(errors.New("invalid key"))
	s := New(ctrl)

	typeText(s, "nope")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())

	if s.saved {
		t.Error("screen should stay open on a bad key")
	}
	if !strings.Contains(s.errMsg, "invalid key") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if ctrl.HasCredential() {
		t.Error("bad key must not connect")
	}
}

func TestFocusWraps(t *testing.T) {
	ctrl, _ := newController(nil)
	s := New(ctrl)

	s.Update(specialKey(tea.KeyUp))
	if s.focus != fieldDifficulty {
		t.Errorf("focus = %d, want difficulty", s.focus)
	}
	s.Update(specialKey(tea.KeyTab))
	if s.focus != fieldKey {
		t.Errorf("focus = %d, want key", s.focus)
	}
}
