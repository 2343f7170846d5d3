// Package app hosts the terminal UI: a router of screens framed by a
// header and a key-hint footer.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/qbank-ai/qbank/internal/router"
	"github.com/qbank-ai/qbank/internal/screen"
	"github.com/qbank-ai/qbank/internal/screens/form"
	"github.com/qbank-ai/qbank/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Generator form.Generator

	// Model is shown in the header.
	Model string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	model  string
	width  int
	height int
}

// newAppModel creates a new AppModel with the form screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(form.New(opts.Generator)),
		model:  opts.Model,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.BackMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	status := m.model
	if m.router.Busy() {
		status = "⏳ Đang tạo · " + m.model
	}

	chrome := layout.Chrome{
		Title:  active.Title(),
		Status: status,
		Hints:  m.footerHints(active),
	}
	return layout.Render(chrome, m.width, m.height, m.router.View)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Thoát"}}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
