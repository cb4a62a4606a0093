// Package lesson renders the lesson page: the generated lesson, the
// diagram, and a chat with the tutor about the topic.
package lesson

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	tutorlesson "github.com/abhisek/datapath/internal/lesson"
	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/components"
	"github.com/abhisek/datapath/internal/ui/layout"
	"github.com/abhisek/datapath/internal/ui/theme"
)

// inputHeight is the rows kept below the viewport for the chat input.
const inputHeight = 4

// LessonScreen shows the current lesson and the tutor chat.
type LessonScreen struct {
	state   *tutor.State
	vp      viewport.Model
	input   components.TextInput
	spinner spinner.Model

	// turns and waiting are the chat state last rendered. The viewport
	// follows the chat when either changes.
	turns   int
	waiting bool
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen for state.
func New(state *tutor.State) *LessonScreen {
	return &LessonScreen{
		state:   state,
		vp:      viewport.New(),
		input:   components.NewTextInput("", "", false, 500),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		turns:   -1,
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Focus(), s.spinner.Tick)
}

func (s *LessonScreen) Title() string {
	return s.state.SelectedTopic
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	v := s.state.View()
	switch {
	case v.GuidedComplete:
		return []layout.KeyHint{{Key: "Enter", Description: "Back to Topics"}}
	case v.Lesson != nil && v.Lesson.Error != "":
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back to Topics"},
		}
	case !s.state.HasLesson():
		return []layout.KeyHint{{Key: "Esc", Description: "Back to Topics"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+P", Description: "Practice"},
		{Key: "Esc", Description: "Topics"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.state.GuidedComplete() {
		if key == "enter" || key == "esc" {
			return s, screen.Dispatch(tutor.BackToTopics{})
		}
		return s, nil
	}
	if key == "esc" {
		return s, screen.Dispatch(tutor.BackToTopics{})
	}
	if s.state.LessonErr != nil {
		if key == "r" {
			return s, screen.Dispatch(tutor.RetryLesson{})
		}
		return s, nil
	}
	if !s.state.HasLesson() {
		return s, nil
	}

	switch key {
	case "ctrl+p":
		return s, screen.Dispatch(tutor.StartPractice{})
	case "pgup":
		s.vp.PageUp()
		return s, nil
	case "pgdown":
		s.vp.PageDown()
		return s, nil
	case "enter":
		text := strings.TrimSpace(s.input.Value())
		if text == "" || s.state.AwaitingReply {
			return s, nil
		}
		s.input.Reset()
		return s, screen.Dispatch(tutor.SendChat{Text: text})
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LessonScreen) View(width, height int) string {
	v := s.state.View()
	cw := components.ContentWidth(width)

	if v.GuidedComplete {
		body := theme.Title.Render("Congratulations! You've completed the guided path for your level.") +
			"\n\n" + theme.Hint.Render("Press Enter to go back to topic selection.")
		return components.Center(components.Card(body, min(cw, 72)), width, height)
	}

	lv := v.Lesson
	if lv == nil {
		return ""
	}

	if lv.Error != "" {
		msg := "AI Generation Failed: " + lv.Error
		if lv.Unavailable {
			msg = "AI model is unavailable. Cannot generate content."
		}
		body := components.Notice("error", msg) +
			"\n\n" + theme.Hint.Render("Press r to retry or Esc to go back to topics.")
		return components.Center(components.Card(body, min(cw, 80)), width, height)
	}

	if !s.state.HasLesson() {
		line := s.spinner.View() + " " +
			theme.Body.Render(fmt.Sprintf("DataPath AI is preparing your comprehensive lesson on %s...", lv.Topic))
		return components.Center(line, width, height)
	}

	s.vp.SetWidth(cw)
	s.vp.SetHeight(max(height-inputHeight, 3))
	s.vp.SetContent(s.renderContent(lv, cw))
	switch {
	case s.turns < 0:
		s.turns = len(lv.Chat)
	case len(lv.Chat) != s.turns || lv.AwaitingReply != s.waiting:
		s.turns = len(lv.Chat)
		s.waiting = lv.AwaitingReply
		s.vp.GotoBottom()
	}

	s.input.Model.Placeholder = fmt.Sprintf("Ask about %s...", lv.Topic)
	s.input.SetWidth(cw - 4)

	var footer strings.Builder
	if v.Notice != nil {
		footer.WriteString(components.Notice(string(v.Notice.Kind), v.Notice.Text))
	}
	footer.WriteString("\n")
	footer.WriteString(theme.Hint.Render("› ") + s.input.View())

	content := lipgloss.JoinVertical(lipgloss.Left, s.vp.View(), "", footer.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *LessonScreen) renderContent(lv *tutor.LessonView, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder

	if lv.ParseError != nil && lv.Concept == "" {
		b.WriteString(components.Notice("error", "Failed to parse the initial lesson from the AI's response."))
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(theme.Code.Render(lv.ParseError.Raw)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(theme.Heading.Render("Comprehensive Lesson"))
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(theme.Body.Render(lv.Concept)))
		b.WriteString("\n\n")

		b.WriteString(theme.Heading.Render("Visualizing: " + lv.Topic))
		b.WriteString("\n")
		if lv.ParseError != nil {
			b.WriteString(components.Notice("warning", "No diagram could be drawn for this lesson."))
		} else {
			b.WriteString(wrap.Render(theme.Body.Render(lv.DiagramText)))
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(lv.DiagramURL))
		}
		b.WriteString("\n\n")

		if lv.Code != "" {
			b.WriteString(wrap.Render(theme.Code.Render(lv.Code)))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(theme.Heading.Render("Need More Help? Ask the Tutor!"))
	b.WriteString("\n")
	for _, turn := range lv.Chat {
		label := theme.TutorLabel.Render("DataPath AI")
		if turn.Role == tutorlesson.RoleUser {
			label = theme.UserLabel.Render("You")
		}
		b.WriteString("\n" + label + "\n")
		b.WriteString(wrap.Render(theme.Body.Render(turn.Content)))
		b.WriteString("\n")
	}
	if lv.AwaitingReply {
		b.WriteString("\n" + s.spinner.View() + " " + theme.Hint.Render("DataPath AI is thinking..."))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Ctrl+P when you're ready: \"I'm ready for the practice!\""))
	return b.String()
}
