package signup

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
	buttonSignup = iota
	buttonBack
)

// SignupScreen creates a new account.
type SignupScreen struct {
	state *tutor.State
	form  components.Form
}

var _ screen.Screen = (*SignupScreen)(nil)
var _ screen.KeyHintProvider = (*SignupScreen)(nil)

// New creates a SignupScreen reading notices from state.
func New(state *tutor.State) *SignupScreen {
	return &SignupScreen{
		state: state,
		form: components.NewForm(
			[]components.TextInput{
				components.NewTextInput("Username", "choose a username", false, 64),
				components.NewTextInput("Password", "create a password", true, 128),
				components.NewTextInput("Confirm", "confirm password", true, 128),
			},
			[]string{"Sign Up", "Back to Login"},
		),
	}
}

func (s *SignupScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *SignupScreen) Title() string {
	return "Sign Up"
}

func (s *SignupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SignupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok && s.state.Busy {
		return s, nil
	}

	form, pressed, cmd := s.form.Update(msg)
	s.form = form

	switch pressed {
	case buttonSignup:
		v := s.form.Values()
		return s, screen.Dispatch(tutor.SubmitSignup{Username: v[0], Password: v[1], Confirm: v[2]})
	case buttonBack:
		return s, screen.Dispatch(tutor.ShowLogin{})
	}
	return s, cmd
}

func (s *SignupScreen) View(width, height int) string {
	cardWidth := min(components.ContentWidth(width), 72)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Create Your DataPath Account"))
	b.WriteString("\n\n")
	b.WriteString(s.form.View(cardWidth - 8))

	if s.state.Busy {
		b.WriteString("\n\n" + theme.Hint.Render("Creating your account..."))
	} else if s.state.Notice.Text != "" {
		b.WriteString("\n\n" + components.Notice(string(s.state.Notice.Kind), s.state.Notice.Text))
	}

	card := components.Card(b.String(), cardWidth)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
