package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond

	// Duration is how long the splash stays up before moving to login.
	Duration = 2500 * time.Millisecond
)

// graphArt is a small node-and-edge figure drawn above the banner.
const graphArt = `    (A)───(B)
     │ ╲    │
     │  ╲   │
    (C)───(D)───(E)`

type tickMsg time.Time

// SplashScreen shows the product banner, then dispatches SplashElapsed.
type SplashScreen struct {
	elapsed time.Duration
	ticks   int
	done    bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen.
func New() *SplashScreen {
	return &SplashScreen{}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tickMsg); !ok || s.done {
		return s, nil
	}

	s.elapsed += tickInterval
	s.ticks++
	if s.elapsed >= Duration {
		s.done = true
		return s, screen.Dispatch(tutor.SplashElapsed{})
	}
	return s, tick()
}

func (s *SplashScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Secondary).Render(graphArt)

	banner := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 3).
		Render("D A T A P A T H")

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Your AI guide to Data Structures")

	dots := strings.Repeat("●", s.ticks%4) + strings.Repeat("○", 3-s.ticks%4)
	loading := lipgloss.NewStyle().Foreground(theme.TextDim).Render(dots)

	content := lipgloss.JoinVertical(lipgloss.Center, art, "", banner, "", tagline, "", loading)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
