package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qbank-ai/qbank/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and optional numeric
// bounds.
type TextInput struct {
	Model textinput.Model
	Label string

	// NumericOnly drops every printable key that is not a digit. Values
	// are clamped to [0, Max] when Max > 0.
	NumericOnly bool
	Max         int
}

// NewTextInput creates a new labelled, blurred text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// NewNumberInput creates a digits-only input bounded by max.
func NewNumberInput(label string, value, max int) TextInput {
	t := NewTextInput(label, "0", len(strconv.Itoa(max)))
	t.NumericOnly = true
	t.Max = max
	t.SetNumber(value)
	return t
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if r < '0' || r > '9' {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.NumericOnly && t.Max > 0 {
		if n, err := t.NumericValue(); err == nil && n > t.Max {
			t.SetNumber(t.Max)
		}
	}
	return t, cmd
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// View renders the label and the input on one line.
func (t TextInput) View(labelWidth int) string {
	style := theme.Blurred
	marker := "  "
	if t.Focused() {
		style = theme.Focused
		marker = "▸ "
	}
	label := style.Width(labelWidth).Render(marker + t.Label)
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", t.Model.View())
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// NumericValue returns the input value as an integer. An empty numeric
// input counts as zero.
func (t TextInput) NumericValue() (int, error) {
	v := t.Model.Value()
	if v == "" && t.NumericOnly {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// SetNumber stores n, clamped to the input bounds.
func (t *TextInput) SetNumber(n int) {
	if n < 0 {
		n = 0
	}
	if t.Max > 0 && n > t.Max {
		n = t.Max
	}
	t.Model.SetValue(strconv.Itoa(n))
	t.Model.CursorEnd()
}

// Step adds delta to a numeric input, keeping it in bounds.
func (t *TextInput) Step(delta int) {
	n, _ := t.NumericValue()
	t.SetNumber(n + delta)
}
