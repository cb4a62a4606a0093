package topics

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

// TopicsScreen lists the topics for the chosen level.
type TopicsScreen struct {
	state *tutor.State
	menu  components.Menu
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates a TopicsScreen for the state's level.
func New(state *tutor.State) *TopicsScreen {
	items := []components.MenuItem{{
		Label:  "Guide me from Scratch",
		Hint:   "Go through every topic of this level in order.",
		Action: func() tea.Cmd { return screen.Dispatch(tutor.GuideMe{}) },
	}}
	for i, topic := range state.Topics() {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", i+1, topic),
			Action: func() tea.Cmd { return screen.Dispatch(tutor.ChooseTopic{Topic: topic}) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Change level",
		Action: func() tea.Cmd { return screen.Dispatch(tutor.BackToLevels{}) },
	})
	return &TopicsScreen{state: state, menu: components.NewMenu(items)}
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Levels"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		return s, screen.Dispatch(tutor.BackToLevels{})
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TopicsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Your %s Learning Path", s.state.Level)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Pick a topic, or let DataPath guide you through all of them."))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if s.state.Notice.Text != "" {
		b.WriteString("\n" + components.Notice(string(s.state.Notice.Kind), s.state.Notice.Text))
	}

	card := components.Card(b.String(), min(components.ContentWidth(width), 80))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
