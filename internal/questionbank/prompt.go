package questionbank

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/qbank-ai/qbank/internal/records"
)

//go:embed prompt.tmpl
var promptText string

// The prompt body uses {a}/{b} placeholders literally, so the template
// runs with [[ ]] delimiters.
var promptTemplate = template.Must(template.New("prompt").Delims("[[", "]]").Parse(promptText))

// OutOfScopeReply is the exact sentence the model is told to return when
// the topic is not part of the grade's curriculum.
const OutOfScopeReply = "Bạn nhập chủ đề không có trong chương trình hiện hành"

type promptData struct {
	Request
	Header string
}

// BuildPrompt renders the generation prompt for req. It performs no I/O
// and identical requests yield identical prompts. User values are
// substituted verbatim.
func BuildPrompt(req Request) string {
	var b strings.Builder
	// The template only reads plain fields of promptData, so Execute cannot fail.
	if err := promptTemplate.Execute(&b, promptData{Request: req, Header: records.HeaderLine()}); err != nil {
		panic("questionbank: render prompt: " + err.Error())
	}
	return b.String()
}
