package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/qbank-ai/qbank/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent int // 0..100
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// View renders the bar with its percentage, and the label on the line below.
func (p ProgressBar) View() string {
	barWidth := p.Width - 6 // "  100%"
	if barWidth < 4 {
		barWidth = 4
	}

	pct := max(0, min(p.Percent, 100))
	filled := barWidth * pct / 100
	empty := barWidth - filled

	bar := lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		theme.Subtitle.Render(fmt.Sprintf("  %d%%", pct))

	if p.Label == "" {
		return bar
	}
	return bar + "\n" + theme.Body.Render(p.Label)
}
