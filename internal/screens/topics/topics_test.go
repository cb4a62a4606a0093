package topics

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
)

func newState() *tutor.State {
	st := tutor.NewState()
	st.Page = tutor.PageTopicSelect
	st.LoggedIn = true
	st.Username = "ada"
	st.Level = curriculum.Beginner
	return st
}

func press(s *TopicsScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func eventOf(t *testing.T, cmd tea.Cmd) tutor.Event {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd().(screen.EventMsg).Event
}

func TestGuideMeIsFirst(t *testing.T) {
	s := New(newState())
	if _, ok := eventOf(t, press(s, tea.KeyEnter)).(tutor.GuideMe); !ok {
		t.Error("expected GuideMe")
	}
}

func TestChooseTopic(t *testing.T) {
	s := New(newState())
	press(s, tea.KeyDown)
	press(s, tea.KeyDown)

	ev := eventOf(t, press(s, tea.KeyEnter))
	want := tutor.ChooseTopic{Topic: curriculum.Topics(curriculum.Beginner)[1]}
	if ev != want {
		t.Errorf("got %#v, want %#v", ev, want)
	}
}

func TestEscGoesBackToLevels(t *testing.T) {
	s := New(newState())
	if _, ok := eventOf(t, press(s, tea.KeyEscape)).(tutor.BackToLevels); !ok {
		t.Error("expected BackToLevels")
	}
}

func TestView(t *testing.T) {
	view := New(newState()).View(100, 40)
	for _, want := range []string{"Your Beginner Learning Path", "Guide me from Scratch", "Stacks (LIFO)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
