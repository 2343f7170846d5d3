// Package result shows the raw text of a finished generation together
// with its warnings, contract report and the usage guide.
package result

import (
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/qbank-ai/qbank/internal/llm"
	"github.com/qbank-ai/qbank/internal/questionbank"
	"github.com/qbank-ai/qbank/internal/screen"
	"github.com/qbank-ai/qbank/internal/ui/layout"
	"github.com/qbank-ai/qbank/internal/ui/theme"
)

// maxViolations caps how many report lines are listed above the text.
const maxViolations = 5

// savedMsg reports the outcome of writing the raw text to disk.
type savedMsg struct {
	path string
	err  error
}

// ResultScreen displays one questionbank.Result.
type ResultScreen struct {
	result *questionbank.Result
	vp     viewport.Model
	status string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for res.
func New(res *questionbank.Result) *ResultScreen {
	vp := viewport.New()
	vp.SetContent(res.Text)
	return &ResultScreen{result: res, vp: vp}
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return "Kết quả"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓/PgUp/PgDn", Description: "Cuộn"},
		{Key: "S", Description: "Lưu văn bản"},
		{Key: "Esc", Description: "Quay lại"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

// SavePath is the file the raw text is written to.
func (r *ResultScreen) SavePath() string {
	return "qbank-" + r.result.ID.String()[:8] + ".txt"
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			r.status = theme.ErrorText.Render("❌ Không lưu được: " + msg.err.Error())
		} else {
			r.status = theme.SuccessText.Render("💾 Đã lưu " + msg.path)
		}
		return r, nil

	case tea.KeyPressMsg:
		if msg.String() == "s" {
			return r, saveText(r.SavePath(), r.result.Text)
		}
	}

	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

func saveText(path, text string) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(text+"\n"), 0o644)
		return savedMsg{path: path, err: err}
	}
}

func (r *ResultScreen) View(width, height int) string {
	top := r.renderSummary()

	textHeight := height - lipgloss.Height(top) - 3
	if textHeight < 3 {
		textHeight = 3
	}
	r.vp.SetWidth(width - 4)
	r.vp.SetHeight(textHeight)

	text := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(r.vp.View())

	return lipgloss.JoinVertical(lipgloss.Left, top, text)
}

func (r *ResultScreen) renderSummary() string {
	res := r.result
	var lines []string

	if res.OutOfScope {
		lines = append(lines, theme.WarningText.Render(questionbank.MsgOutOfScope))
	} else {
		lines = append(lines, theme.SuccessText.Render(questionbank.MsgSuccess))
	}
	if res.Truncated {
		lines = append(lines, theme.WarningText.Render(questionbank.MsgTruncated))
	}

	stats := fmt.Sprintf(
		"Mô hình: %s · Token: %d vào / %d ra · Thời gian: %s",
		res.Model, res.Usage.InputTokens, res.Usage.OutputTokens, res.Elapsed.Round(100*time.Millisecond),
	)
	if usd, ok := llm.EstimateCost(res.Model, res.Usage); ok {
		stats += fmt.Sprintf(" · ≈ $%.4f", usd)
	}
	lines = append(lines, theme.Subtitle.Render(stats))

	if rep := res.Report; rep != nil {
		style := theme.SuccessText
		if !rep.OK() {
			style = theme.WarningText
		}
		lines = append(lines, style.Render("Kiểm tra định dạng: "+rep.Summary()))
		for i, v := range rep.Violations {
			if i == maxViolations {
				lines = append(lines, theme.Hint.Render(fmt.Sprintf("  … và %d lỗi khác", len(rep.Violations)-maxViolations)))
				break
			}
			lines = append(lines, theme.Hint.Render("  "+v.String()))
		}
	}

	if !res.OutOfScope {
		lines = append(lines, "", theme.Label.Render("📝 Hướng dẫn sử dụng file"))
		for i, step := range questionbank.UsageGuide {
			lines = append(lines, theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, step)))
		}
	}

	if r.status != "" {
		lines = append(lines, "", r.status)
	}

	return strings.Join(lines, "\n")
}
