package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/components"
	"github.com/abhisek/datapath/internal/ui/layout"
	"github.com/abhisek/datapath/internal/ui/theme"
)

// QuizScreen runs the multiple-choice quiz for the current lesson.
type QuizScreen struct {
	state  *tutor.State
	choice components.Choice

	// index is the question the choice list was built for.
	index int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen.
func New(state *tutor.State) *QuizScreen {
	s := &QuizScreen{state: state, index: -1}
	s.sync()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	q := s.state.View().Quiz
	switch {
	case q == nil:
		return nil
	case q.LoadError != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Back to Topics"}}
	case q.Finished:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Practice"},
	}
}

// sync rebuilds the option list when the current question changed.
func (s *QuizScreen) sync() {
	q := s.state.View().Quiz
	if q == nil || q.Finished || q.LoadError != nil {
		return
	}
	if q.Index == s.index {
		return
	}
	selected := ""
	if q.Selected != nil {
		selected = *q.Selected
	}
	s.choice = components.NewChoice(q.Options, selected)
	s.index = q.Index
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	q := s.state.View().Quiz
	if q == nil {
		return s, nil
	}
	key := kmsg.String()

	switch {
	case q.LoadError != nil:
		if key == "enter" || key == "esc" {
			return s, screen.Dispatch(tutor.BackToTopics{})
		}
		return s, nil

	case q.Finished:
		if key != "enter" {
			return s, nil
		}
		if s.state.GuidedMode {
			return s, screen.Dispatch(tutor.ContinueGuided{})
		}
		return s, screen.Dispatch(tutor.LeaveQuiz{})
	}

	s.sync()
	switch key {
	case "left", "h":
		return s, screen.Dispatch(tutor.PrevQuestion{})
	case "right", "l":
		return s, screen.Dispatch(tutor.NextQuestion{})
	case "s":
		return s, screen.Dispatch(tutor.SubmitQuiz{})
	case "esc":
		return s, screen.Dispatch(tutor.BackToPractice{})
	}

	var picked bool
	s.choice, picked = s.choice.Update(msg)
	if picked {
		return s, screen.Dispatch(tutor.SelectAnswer{Answer: s.choice.Chosen})
	}
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	q := s.state.View().Quiz
	if q == nil {
		return ""
	}
	cardWidth := min(components.ContentWidth(width), 80)
	wrap := lipgloss.NewStyle().Width(cardWidth - 6)

	var b strings.Builder
	switch {
	case q.LoadError != nil:
		b.WriteString(components.Notice("error", "Failed to load quiz questions from the AI's response. Error: "+q.LoadError.Message))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press Enter to go back to topic selection."))

	case q.Finished:
		b.WriteString(theme.Title.Render(fmt.Sprintf("Quiz Complete! Your score: %d / %d", q.Score, q.Total)))
		b.WriteString("\n\n")
		switch q.Save {
		case tutor.SavePending:
			b.WriteString(components.Notice("info", "Saving your progress..."))
		case tutor.SaveOK:
			b.WriteString(components.Notice("success", "Your progress has been saved!"))
		case tutor.SaveFailed:
			b.WriteString(components.Notice("warning", "Failed to save your progress: "+q.SaveError))
		}
		b.WriteString("\n\n")
		label := "Back to Topic Selection"
		if s.state.GuidedMode {
			label = "Continue to Next Lesson"
		}
		b.WriteString(components.Button(label, true))

	default:
		s.sync()
		b.WriteString(theme.Title.Render("Quiz: " + s.state.SelectedTopic))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", q.Index+1, q.Total)))
		b.WriteString("\n")
		bar := components.NewProgressBar("", float64(q.Index+1)/float64(q.Total), false, cardWidth-10)
		b.WriteString(bar.View())
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(theme.Heading.Render(q.Question)))
		b.WriteString("\n\n")
		b.WriteString(s.choice.View())
		b.WriteString("\n")

		var nav []string
		if q.CanPrev {
			nav = append(nav, "← Previous")
		}
		if q.CanNext {
			nav = append(nav, "Next →")
		}
		if q.CanSubmit {
			nav = append(nav, "[s] Submit Quiz")
		}
		b.WriteString(theme.Hint.Render(strings.Join(nav, "   ")))
	}

	if n := s.state.Notice; n.Text != "" && !q.Finished {
		b.WriteString("\n\n" + components.Notice(string(n.Kind), n.Text))
	}

	return components.Center(components.Card(b.String(), cardWidth), width, height)
}
