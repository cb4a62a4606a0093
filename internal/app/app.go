// Package app is the terminal front end: a Bubble Tea model that feeds
// key presses through the tutor state machine and runs the resulting
// effects as commands.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/datapath/internal/router"
	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/screens/lesson"
	"github.com/abhisek/datapath/internal/screens/level"
	"github.com/abhisek/datapath/internal/screens/login"
	"github.com/abhisek/datapath/internal/screens/practice"
	"github.com/abhisek/datapath/internal/screens/quiz"
	"github.com/abhisek/datapath/internal/screens/signup"
	"github.com/abhisek/datapath/internal/screens/splash"
	"github.com/abhisek/datapath/internal/screens/topics"
	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/layout"
)

// Runner executes a state machine effect and returns its result event.
type Runner interface {
	Execute(ctx context.Context, sessionID string, eff tutor.Effect) tutor.Event
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	state  *tutor.State
	runner Runner
	router *router.Router
	logger *logrus.Logger
	width  int
	height int
}

// newAppModel creates an AppModel for state.
func newAppModel(ctx context.Context, state *tutor.State, runner Runner, logger *logrus.Logger) AppModel {
	m := AppModel{
		ctx:    ctx,
		state:  state,
		runner: runner,
		logger: logger,
	}
	m.router = router.New(m.buildScreen)
	return m
}

// buildScreen returns the screen rendering page.
func (m AppModel) buildScreen(page tutor.Page) (screen.Screen, error) {
	switch page {
	case tutor.PageSplash:
		return splash.New(), nil
	case tutor.PageLogin:
		return login.New(m.state), nil
	case tutor.PageSignup:
		return signup.New(m.state), nil
	case tutor.PageLevelSelect:
		return level.New(m.state), nil
	case tutor.PageTopicSelect:
		return topics.New(m.state), nil
	case tutor.PageLesson:
		return lesson.New(m.state), nil
	case tutor.PagePractice:
		return practice.New(m.state), nil
	case tutor.PageQuiz:
		return quiz.New(m.state), nil
	}
	return nil, fmt.Errorf("no screen for page %d", int(page))
}

func (m AppModel) Init() tea.Cmd {
	return m.sync()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.EventMsg:
		return m, m.apply(msg.Event)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// apply feeds ev to the state machine, starts a command per effect and
// moves the router to the resulting page.
func (m AppModel) apply(ev tutor.Event) tea.Cmd {
	effects, err := tutor.Apply(m.state, ev)
	if err != nil {
		m.logger.WithError(err).WithField("event", tutor.EventName(ev)).Debug("event rejected")
	}

	cmds := make([]tea.Cmd, 0, len(effects)+1)
	for _, eff := range effects {
		cmds = append(cmds, m.execute(eff))
	}
	cmds = append(cmds, m.sync())
	return tea.Batch(cmds...)
}

// execute runs eff off the update loop and delivers its result event.
func (m AppModel) execute(eff tutor.Effect) tea.Cmd {
	ctx, runner, id := m.ctx, m.runner, m.state.ID
	return func() tea.Msg {
		return screen.EventMsg{Event: runner.Execute(ctx, id, eff)}
	}
}

func (m AppModel) sync() tea.Cmd {
	cmd, err := m.router.Sync(m.state.Page)
	if err != nil {
		m.logger.WithError(err).Error("switch screen")
		return nil
	}
	return cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	if active == nil {
		return v
	}
	if m.state.Page == tutor.PageSplash {
		v.SetContent(active.View(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(active.Title(), m.state.Username, string(m.state.Level), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the terminal UI for state and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, state *tutor.State, runner Runner, logger *logrus.Logger) error {
	p := tea.NewProgram(newAppModel(ctx, state, runner, logger), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
