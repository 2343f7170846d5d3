package components

import (
	"charm.land/lipgloss/v2"

	"github.com/qbank-ai/qbank/internal/ui/theme"
)

// ContentWidth returns the inner width for a card inside a frame.
func ContentWidth(frameWidth, maxWidth int) int {
	w := frameWidth - 4
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a titled rounded-border box of width cw.
func Card(title, content string, cw int) string {
	body := content
	if title != "" {
		body = theme.Title.Render(title) + "\n\n" + content
	}
	return theme.Card.Width(cw).Render(body)
}
