// Package form is the request entry screen: lesson details, textbook
// edition and the six question-type counts.
package form

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/qbank-ai/qbank/internal/questionbank"
	"github.com/qbank-ai/qbank/internal/router"
	"github.com/qbank-ai/qbank/internal/screen"
	"github.com/qbank-ai/qbank/internal/screens/result"
	"github.com/qbank-ai/qbank/internal/ui/components"
	"github.com/qbank-ai/qbank/internal/ui/layout"
)

// Generator runs one question-bank generation.
type Generator interface {
	GenerateWithProgress(ctx context.Context, req questionbank.Request, progress func(questionbank.Stage)) (*questionbank.Result, error)
	Limits() questionbank.Limits
}

// Focus order: three text fields, the edition, six counts, submit.
const (
	focusSubject = iota
	focusGrade
	focusTopic
	focusEdition
	focusFirstCount
)

var (
	focusSubmit = focusFirstCount + len(questionbank.CountKinds)
	focusCount  = focusSubmit + 1
)

// FormScreen collects a questionbank.Request and runs the generation.
type FormScreen struct {
	gen Generator

	subject components.TextInput
	grade   components.TextInput
	topic   components.TextInput
	edition components.Choice
	counts  []components.TextInput
	submit  components.Button

	focus int

	busy   bool
	total  int
	stage  questionbank.Stage
	events <-chan tea.Msg
	cancel context.CancelFunc

	errors []string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.Worker = (*FormScreen)(nil)

// New creates a FormScreen pre-filled with questionbank.DefaultRequest.
func New(gen Generator) *FormScreen {
	return NewWithRequest(gen, questionbank.DefaultRequest())
}

// NewWithRequest creates a FormScreen pre-filled with req.
func NewWithRequest(gen Generator, req questionbank.Request) *FormScreen {
	editions := make([]string, len(questionbank.Editions))
	for i, e := range questionbank.Editions {
		editions[i] = string(e)
	}

	f := &FormScreen{
		gen:     gen,
		subject: components.NewTextInput("Môn học", "Ví dụ: Toán, Vật lý...", 80),
		grade:   components.NewTextInput("Lớp", "Ví dụ: 6, 7, 8...", 10),
		topic:   components.NewTextInput("Chủ đề", "Ví dụ: Điện học, Phân số...", 200),
		edition: components.NewChoice("Bộ sách", editions),
	}
	f.subject.SetValue(req.Subject)
	f.grade.SetValue(req.Grade)
	f.topic.SetValue(req.Topic)
	for i, e := range questionbank.Editions {
		if e == req.Edition {
			f.edition.Selected = i
		}
	}

	values := req.Counts.Slice()
	for i, k := range questionbank.CountKinds {
		f.counts = append(f.counts, components.NewNumberInput(k.Label, values[i], k.Max))
	}

	f.submit = components.NewButton("🚀 Tạo ngân hàng câu hỏi", f.submitCmd)
	return f
}

func (f *FormScreen) Init() tea.Cmd {
	return f.setFocus(focusSubject)
}

func (f *FormScreen) Title() string {
	return "AI Tạo Ngân Hàng Câu Hỏi"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	if f.busy {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Hủy"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Chuyển ô"},
	}
	switch {
	case f.focus == focusEdition:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Chọn bộ sách"})
	case f.isCountFocus():
		hints = append(hints, layout.KeyHint{Key: "+/-", Description: "Tăng/giảm"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Tạo"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Thoát"},
	)
}

// Request assembles the request from the current field values.
func (f *FormScreen) Request() questionbank.Request {
	values := make([]int, len(f.counts))
	for i, c := range f.counts {
		values[i], _ = c.NumericValue()
	}
	return questionbank.Request{
		Subject: f.subject.Value(),
		Grade:   f.grade.Value(),
		Topic:   f.topic.Value(),
		Edition: questionbank.Edition(f.edition.Value()),
		Counts:  questionbank.CountsFromSlice(values),
	}
}

// Busy reports whether a generation is in flight.
func (f *FormScreen) Busy() bool {
	return f.busy
}

// Errors returns the messages shown for the last failed submit.
func (f *FormScreen) Errors() []string {
	return f.errors
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stageMsg:
		f.stage = msg.stage
		return f, waitForEvent(f.events)

	case generatedMsg:
		return f, f.handleGenerated(msg)

	case tea.KeyPressMsg:
		if f.busy {
			if msg.String() == "esc" && f.cancel != nil {
				f.cancel()
			}
			return f, nil
		}
		return f.handleKey(msg)
	}

	return f, nil
}

func (f *FormScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return f, f.setFocus((f.focus + 1) % focusCount)
	case "shift+tab", "up":
		return f, f.setFocus((f.focus - 1 + focusCount) % focusCount)
	case "ctrl+s":
		return f, f.submitCmd()
	case "enter":
		if f.focus != focusSubmit {
			return f, f.setFocus(f.focus + 1)
		}
	case "+", "=":
		if f.isCountFocus() {
			f.counts[f.focus-focusFirstCount].Step(1)
			return f, nil
		}
	case "-":
		if f.isCountFocus() {
			f.counts[f.focus-focusFirstCount].Step(-1)
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case f.focus == focusSubject:
		f.subject, cmd = f.subject.Update(msg)
	case f.focus == focusGrade:
		f.grade, cmd = f.grade.Update(msg)
	case f.focus == focusTopic:
		f.topic, cmd = f.topic.Update(msg)
	case f.focus == focusEdition:
		f.edition, cmd = f.edition.Update(msg)
	case f.isCountFocus():
		i := f.focus - focusFirstCount
		f.counts[i], cmd = f.counts[i].Update(msg)
	case f.focus == focusSubmit:
		f.submit, cmd = f.submit.Update(msg)
	}
	return f, cmd
}

func (f *FormScreen) isCountFocus() bool {
	return f.focus >= focusFirstCount && f.focus < focusSubmit
}

func (f *FormScreen) setFocus(i int) tea.Cmd {
	f.subject.Blur()
	f.grade.Blur()
	f.topic.Blur()
	f.edition.Blur()
	for j := range f.counts {
		f.counts[j].Blur()
	}
	f.submit.Active = false

	f.focus = i
	switch {
	case i == focusSubject:
		return f.subject.Focus()
	case i == focusGrade:
		return f.grade.Focus()
	case i == focusTopic:
		return f.topic.Focus()
	case i == focusEdition:
		f.edition.Focus()
	case f.isCountFocus():
		return f.counts[i-focusFirstCount].Focus()
	case i == focusSubmit:
		f.submit.Active = true
	}
	return nil
}

// submitCmd validates the form and, when valid, starts the generation.
func (f *FormScreen) submitCmd() tea.Cmd {
	req := f.Request()
	errs := questionbank.ValidateAll(req, f.gen.Limits())
	if len(errs) > 0 {
		f.errors = errs.Messages()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.errors = nil
	f.busy = true
	f.submit.Disabled = true
	f.total = req.Counts.Total()
	f.stage = questionbank.StageConnecting
	f.cancel = cancel
	f.events = runGeneration(ctx, f.gen, req)
	return waitForEvent(f.events)
}

func (f *FormScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.busy = false
	f.submit.Disabled = false
	f.events = nil

	if msg.err != nil {
		f.errors = []string{questionbank.UserMessage(msg.err)}
		return nil
	}

	next := result.New(msg.result)
	return func() tea.Msg {
		return router.OpenMsg{Screen: next}
	}
}

func countLabel(n, max int) string {
	return strconv.Itoa(n) + "/" + strconv.Itoa(max)
}
