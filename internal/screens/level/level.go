package level

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/components"
	"github.com/abhisek/datapath/internal/ui/layout"
	"github.com/abhisek/datapath/internal/ui/theme"
)

// LevelScreen asks the learner for their skill level.
type LevelScreen struct {
	state *tutor.State
	menu  components.Menu
}

var _ screen.Screen = (*LevelScreen)(nil)
var _ screen.KeyHintProvider = (*LevelScreen)(nil)

// New creates a LevelScreen with the cursor on the current level, if any.
func New(state *tutor.State) *LevelScreen {
	var items []components.MenuItem
	selected := 0
	for i, l := range curriculum.AllLevels() {
		items = append(items, components.MenuItem{
			Label:  string(l),
			Hint:   l.Blurb(),
			Action: func() tea.Cmd { return screen.Dispatch(tutor.ChooseLevel{Level: l}) },
		})
		if l == state.Level {
			selected = i
		}
	}
	items = append(items, components.MenuItem{
		Label:  "Logout",
		Action: func() tea.Cmd { return screen.Dispatch(tutor.Logout{}) },
	})

	menu := components.NewMenu(items)
	menu.Select(selected)
	return &LevelScreen{state: state, menu: menu}
}

func (s *LevelScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelScreen) Title() string {
	return "Choose Your Level"
}

func (s *LevelScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start Learning"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LevelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LevelScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Hello, %s!", s.state.Username)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("To personalize your learning path, please choose your current level:"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if s.state.Notice.Text != "" {
		b.WriteString("\n" + components.Notice(string(s.state.Notice.Kind), s.state.Notice.Text))
	}

	card := components.Card(b.String(), min(components.ContentWidth(width), 80))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
