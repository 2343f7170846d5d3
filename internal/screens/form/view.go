package form

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/qbank-ai/qbank/internal/questionbank"
	"github.com/qbank-ai/qbank/internal/ui/components"
	"github.com/qbank-ai/qbank/internal/ui/layout"
	"github.com/qbank-ai/qbank/internal/ui/theme"
)

const (
	infoLabelWidth  = 12
	countLabelWidth = 40
)

func (f *FormScreen) View(width, height int) string {
	var columns string
	if layout.IsCompactWidth(width) {
		cw := components.ContentWidth(width, 90)
		columns = lipgloss.JoinVertical(lipgloss.Left, f.renderInfo(cw), f.renderCounts(cw))
	} else {
		cw := components.ContentWidth(width/2, 60)
		columns = lipgloss.JoinHorizontal(lipgloss.Top, f.renderInfo(cw), " ", f.renderCounts(cw))
	}

	sections := []string{columns, "", f.submit.View()}

	if f.busy {
		sections = append(sections, "", f.renderProgress(lipgloss.Width(columns)))
	}
	if len(f.errors) > 0 {
		sections = append(sections, "", f.renderErrors())
	}
	sections = append(sections, "", theme.Hint.Render(questionbank.MsgUsageTip))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func (f *FormScreen) renderInfo(cw int) string {
	rows := []string{
		f.subject.View(infoLabelWidth),
		f.grade.View(infoLabelWidth),
		f.edition.View(infoLabelWidth),
		f.topic.View(infoLabelWidth),
	}
	return components.Card("📌 Thông tin bài học", strings.Join(rows, "\n"), cw)
}

func (f *FormScreen) renderCounts(cw int) string {
	rows := make([]string, 0, len(f.counts)+2)
	total := 0
	for i, c := range f.counts {
		n, _ := c.NumericValue()
		total += n
		bound := theme.Subtitle.Render("  tối đa " + countLabel(n, questionbank.CountKinds[i].Max))
		rows = append(rows, c.View(countLabelWidth)+bound)
	}

	limits := f.gen.Limits()
	totalLine := fmt.Sprintf("Tổng: %d/%d câu", total, limits.MaxTotal)
	switch {
	case total > limits.MaxTotal:
		totalLine = theme.WarningText.Render(totalLine + fmt.Sprintf("  (không được vượt quá %d)", limits.MaxTotal))
	case total < limits.MinTotal:
		totalLine = theme.WarningText.Render(totalLine)
	default:
		totalLine = theme.SuccessText.Render(totalLine)
	}
	rows = append(rows, "", totalLine)

	return components.Card("🔢 Số lượng & Loại câu hỏi", strings.Join(rows, "\n"), cw)
}

func (f *FormScreen) renderProgress(width int) string {
	bar := components.NewProgressBar(f.stage.Label(), f.stage.Percent(), min(width, 60))
	return theme.Body.Render(questionbank.ProgressMessage(f.total)) + "\n" + bar.View()
}

func (f *FormScreen) renderErrors() string {
	lines := make([]string, len(f.errors))
	for i, e := range f.errors {
		lines[i] = theme.ErrorText.Render(e)
	}
	return strings.Join(lines, "\n")
}
