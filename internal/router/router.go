package router

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/datapath/internal/screen"
	"github.com/abhisek/datapath/internal/tutor"
)

// Factory builds the screen for a page.
type Factory func(page tutor.Page) (screen.Screen, error)

// Router keeps the screen for the session's current page. The page is
// owned by the tutor state machine; the router only follows it.
type Router struct {
	build  Factory
	page   tutor.Page
	active screen.Screen
}

// New creates a Router that builds screens with build.
func New(build Factory) *Router {
	return &Router{build: build, page: -1}
}

// Sync makes the active screen match page, building a new screen and
// running its Init when the page changed.
func (r *Router) Sync(page tutor.Page) (tea.Cmd, error) {
	if r.active != nil && r.page == page {
		return nil, nil
	}
	s, err := r.build(page)
	if err != nil {
		return nil, fmt.Errorf("build screen for %s: %w", page, err)
	}
	r.page = page
	r.active = s
	return s.Init(), nil
}

// Page returns the page of the active screen.
func (r *Router) Page() tutor.Page {
	return r.page
}

// Active returns the active screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Update forwards a message to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
