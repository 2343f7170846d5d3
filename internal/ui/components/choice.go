package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qbank-ai/qbank/internal/ui/theme"
)

// Choice is a single-line selector cycled with left/right.
type Choice struct {
	Label    string
	Items    []string
	Selected int
	focused  bool
}

// NewChoice creates a selector with the first item selected.
func NewChoice(label string, items []string) Choice {
	return Choice{Label: label, Items: items}
}

// Focus focuses the selector.
func (c *Choice) Focus() { c.focused = true }

// Blur removes focus from the selector.
func (c *Choice) Blur() { c.focused = false }

// Focused reports whether the selector has focus.
func (c Choice) Focused() bool { return c.focused }

// Value returns the selected item, or "" when there are none.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Items) {
		return ""
	}
	return c.Items[c.Selected]
}

// Update handles left/right cycling while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.focused || len(c.Items) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Items)) % len(c.Items)
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % len(c.Items)
	}
	return c, nil
}

// View renders the label followed by the selected item.
func (c Choice) View(labelWidth int) string {
	style := theme.Blurred
	marker := "  "
	value := c.Value()
	if c.focused {
		style = theme.Focused
		marker = "▸ "
		value = "◂ " + value + " ▸"
	}
	label := style.Width(labelWidth).Render(marker + c.Label)
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", theme.Body.Render(value))
}
