package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/datapath/internal/logging"
	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/screens/level"
	"github.com/abhisek/datapath/internal/screens/login"
	"github.com/abhisek/datapath/internal/tutor"
)

type fakeRunner struct {
	effects []tutor.Effect
	reply   func(tutor.Effect) tutor.Event
}

func (f *fakeRunner) Execute(_ context.Context, _ string, eff tutor.Effect) tutor.Event {
	f.effects = append(f.effects, eff)
	return f.reply(eff)
}

func newTestModel(runner Runner) AppModel {
	return newAppModel(context.Background(), tutor.NewState(), runner, logging.Discard())
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestInitShowsSplash(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	m.Init()
	require.Equal(t, tutor.PageSplash, m.router.Page())
}

func TestLoginRunsEffect(t *testing.T) {
	runner := &fakeRunner{reply: func(eff tutor.Effect) tutor.Event {
		a := eff.(tutor.Authenticate)
		return tutor.LoginSucceeded{Username: a.Username}
	}}
	m := newTestModel(runner)
	m.Init()

	m, _ = update(t, m, screen.EventMsg{Event: tutor.SplashElapsed{}})
	require.IsType(t, &login.LoginScreen{}, m.router.Active())

	m, cmd := update(t, m, screen.EventMsg{Event: tutor.SubmitLogin{Username: "ada", Password: "pw"}})
	require.True(t, m.state.Busy)
	require.NotNil(t, cmd)

	result := cmd()
	require.Equal(t, []tutor.Effect{tutor.Authenticate{Username: "ada", Password: "pw"}}, runner.effects)

	m, _ = update(t, m, result)
	require.Equal(t, tutor.PageLevelSelect, m.state.Page)
	require.IsType(t, &level.LevelScreen{}, m.router.Active())
	require.Equal(t, "ada", m.state.Username)
}

func TestRejectedEventKeepsPage(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	m.Init()

	m, cmd := update(t, m, screen.EventMsg{Event: tutor.StartQuiz{}})
	require.Nil(t, cmd)
	require.Equal(t, tutor.PageSplash, m.state.Page)
	require.Equal(t, tutor.PageSplash, m.router.Page())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	m.Init()

	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBuildScreenCoversEveryPage(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	for _, p := range tutor.AllPages() {
		s, err := m.buildScreen(p)
		require.NoError(t, err, p.String())
		require.NotNil(t, s)
	}
	_, err := m.buildScreen(tutor.Page(99))
	require.Error(t, err)
}

func TestViewBeforeResize(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	m.Init()
	v := m.View()
	require.True(t, v.AltScreen)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.NotPanics(t, func() { m.View() })
}
