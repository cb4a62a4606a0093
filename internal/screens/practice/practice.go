package practice

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/components"
	"github.com/abhisek/datapath/internal/ui/layout"
	"github.com/abhisek/datapath/internal/ui/theme"
)

// PracticeScreen lists the LeetCode problems suggested for the topic.
type PracticeScreen struct {
	state *tutor.State
	vp    viewport.Model
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen.
func New(state *tutor.State) *PracticeScreen {
	return &PracticeScreen{state: state, vp: viewport.New()}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Proceed to Quiz"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back to Lesson"},
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		return s, screen.Dispatch(tutor.StartQuiz{})
	case "esc":
		return s, screen.Dispatch(tutor.BackToLesson{})
	case "pgup":
		s.vp.PageUp()
	case "pgdown":
		s.vp.PageDown()
	}
	return s, nil
}

func (s *PracticeScreen) View(width, height int) string {
	lv := s.state.View().Lesson
	if lv == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	wrap := lipgloss.NewStyle().Width(cw)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Practice: " + lv.Topic))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Time to apply what you've learned! Click a problem to open it on LeetCode."))
	b.WriteString("\n\n")

	switch {
	case lv.PracticeError != nil:
		b.WriteString(components.Notice("error", "Failed to parse the practice problems from the AI's response."))
	case strings.TrimSpace(lv.Practice) == "":
		b.WriteString(components.Notice("warning", "No LeetCode problems were generated for this topic."))
	default:
		b.WriteString(wrap.Render(theme.Body.Render(lv.Practice)))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Enter: \"I've practiced, proceed to Quiz!\""))

	s.vp.SetWidth(cw)
	s.vp.SetHeight(max(height, 3))
	s.vp.SetContent(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.vp.View())
}
