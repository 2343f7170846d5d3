// Package router keeps the TUI screen stack. The request form sits at the
// bottom and result screens are opened on top of it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/qbank-ai/qbank/internal/screen"
)

// OpenMsg asks the router to show Screen above the current one.
type OpenMsg struct {
	Screen screen.Screen
}

// BackMsg closes the top screen.
type BackMsg struct{}

// Router owns the screen stack. The bottom screen is never closed.
type Router struct {
	stack []screen.Screen
}

func New(home screen.Screen) *Router {
	return &Router{stack: []screen.Screen{home}}
}

// Open shows s on top and returns its Init command.
func (r *Router) Open(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Back closes the top screen and reports whether anything was closed.
func (r *Router) Back() bool {
	if len(r.stack) <= 1 {
		return false
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	return true
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Busy reports whether the active screen has work in flight.
func (r *Router) Busy() bool {
	w, ok := r.Active().(screen.Worker)
	return ok && w.Busy()
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OpenMsg:
		return r.Open(msg.Screen)
	case BackMsg:
		r.Back()
		return nil
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
