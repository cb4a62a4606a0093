package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/datapath/internal/tutor"
	"github.com/abhisek/datapath/internal/ui/layout"
)

// Screen defines the interface for all application screens. A screen
// renders one tutor.Page and turns key presses into tutor events.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EventMsg carries a tutor event to the app model, which applies it to
// the session state.
type EventMsg struct {
	Event tutor.Event
}

// Dispatch returns a command delivering ev to the app model.
func Dispatch(ev tutor.Event) tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: ev}
	}
}
