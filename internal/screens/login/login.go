package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/components"
	"github.com/abhisek/datapath/internal/ui/layout"
	"github.com/abhisek/datapath/internal/ui/theme"
)

const (
	buttonLogin = iota
	buttonSignup
)

// LoginScreen collects credentials for an existing account.
type LoginScreen struct {
	state *tutor.State
	form  components.Form
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen reading notices from state.
func New(state *tutor.State) *LoginScreen {
	return &LoginScreen{
		state: state,
		form: components.NewForm(
			[]components.TextInput{
				components.NewTextInput("Username", "your username", false, 64),
				components.NewTextInput("Password", "your password", true, 128),
			},
			[]string{"Login", "Create a new account"},
		),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *LoginScreen) Title() string {
	return "Login"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok && s.state.Busy {
		return s, nil
	}

	form, pressed, cmd := s.form.Update(msg)
	s.form = form

	switch pressed {
	case buttonLogin:
		v := s.form.Values()
		return s, screen.Dispatch(tutor.SubmitLogin{Username: v[0], Password: v[1]})
	case buttonSignup:
		return s, screen.Dispatch(tutor.ShowSignup{})
	}
	return s, cmd
}

func (s *LoginScreen) View(width, height int) string {
	cardWidth := min(components.ContentWidth(width), 72)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Welcome Back to DataPath"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Login to continue your journey"))
	b.WriteString("\n\n")
	b.WriteString(s.form.View(cardWidth - 8))

	if s.state.Busy {
		b.WriteString("\n\n" + theme.Hint.Render("Signing in..."))
	} else if s.state.Notice.Text != "" {
		b.WriteString("\n\n" + components.Notice(string(s.state.Notice.Kind), s.state.Notice.Text))
	}

	card := components.Card(b.String(), cardWidth)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
