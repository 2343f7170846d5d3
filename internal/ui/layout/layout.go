// Package layout draws the frame shared by every TUI screen: a header with
// the brand, screen title and status, the screen body, and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/qbank-ai/qbank/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width the form stacks its two cards.
	CompactWidthThreshold = 110
)

const brand = "🛡️ qbank"

type KeyHint struct {
	Key         string
	Description string
}

// Chrome is what the frame shows around a screen body.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Cửa sổ quá nhỏ!\n\nVui lòng mở rộng tối thiểu\n%d x %d\n\nHiện tại: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// Render draws the whole frame. body is called with the size left between
// header and footer.
func Render(c Chrome, width, height int, body func(width, height int) string) string {
	header := renderHeader(c.Title, c.Status, width)
	footer := renderFooter(c.Hints, width)

	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderHeader puts brand and title on the left and status flush right.
func renderHeader(title, status string, width int) string {
	left := theme.Title.Render(brand) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("  │  ") +
		lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := width - 4
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return box(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return box(width).Render(strings.Join(parts, desc.Render("  ·  ")))
}

func box(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}
