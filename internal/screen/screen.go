// Package screen defines the contract between the app frame and the
// screens it hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/qbank-ai/qbank/internal/ui/layout"
)

// Screen is one page of the TUI. View renders the body only; the app
// draws the header and the footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Worker is implemented by screens that run a generation in the
// background. While Busy is true the header shows progress instead of the
// model name.
type Worker interface {
	Busy() bool
}
