// Package records defines the 22-column pipe-delimited question record
// the model is asked to emit, and checks raw model output against it.
package records

import (
	"strconv"
	"strings"
)

// FieldCount is the number of fields in every record line.
const FieldCount = 22

// Separator delimits fields within a line.
const Separator = "|"

// Columns are the header labels, in order.
var Columns = [FieldCount]string{
	"STT",
	"Loại câu hỏi",
	"Độ khó",
	"Mức độ nhận thức",
	"Đơn vị kiến thức",
	"Mức độ đánh giá",
	"Là câu hỏi con của câu hỏi chùm?",
	"Nội dung câu hỏi",
	"Đáp án đúng",
	"Đáp án 1",
	"Đáp án 2",
	"Đáp án 3",
	"Đáp án 4",
	"Đáp án 5",
	"Đáp án 6",
	"Đáp án 7",
	"Đáp án 8",
	"Tags (phân cách nhau bằng dấu ;)",
	"Giải thích",
	"Đảo đáp án",
	"Tính điểm mỗi đáp án đúng",
	"Nhóm đáp án theo từng chỗ trống",
}

// HeaderLine returns the literal header row.
func HeaderLine() string {
	return strings.Join(Columns[:], Separator)
}

// Field indexes (zero-based) into Record.Fields.
const (
	FieldSeq = iota
	FieldType
	FieldDifficulty
	FieldCognitive
	FieldKnowledgeUnit
	FieldAssessment
	FieldClusterChild
	FieldBody
	FieldCorrect
	FieldOption1
	FieldOption2
	FieldOption3
	FieldOption4
	FieldOption5
	FieldOption6
	FieldOption7
	FieldOption8
	FieldTags
	FieldExplanation
	FieldShuffle
	FieldPerOptionScoring
	FieldGrouping
)

// QuestionType is the literal label in the question-type column.
type QuestionType string

const (
	TypeSingleChoice QuestionType = "Một lựa chọn"
	TypeTrueFalse    QuestionType = "Đúng/Sai"
	TypeFillBlank    QuestionType = "Điền khuyết"
	TypeDragDrop     QuestionType = "Kéo thả"
	TypeClusterStem  QuestionType = "Câu hỏi chùm (câu dẫn)"
	TypeFreeResponse QuestionType = "Tự luận"
)

// QuestionTypes lists every accepted type label.
var QuestionTypes = []QuestionType{
	TypeSingleChoice,
	TypeTrueFalse,
	TypeFillBlank,
	TypeDragDrop,
	TypeClusterStem,
	TypeFreeResponse,
}

// Difficulties lists the accepted difficulty labels.
var Difficulties = []string{"Dễ", "Trung bình", "Khó", "Rất khó"}

// CognitiveLevels lists the accepted cognitive-level labels. Each may be
// prefixed by its marker, e.g. "➋ Thông hiểu".
var CognitiveLevels = []string{"Nhận biết", "Thông hiểu", "Vận dụng", "Vận dụng cao"}

var cognitiveMarkers = []string{"➊", "➋", "➌", "➍"}

const (
	Yes = "Có"
	No  = "Không"
)

// Record is one parsed output line.
type Record struct {
	Line   int // 1-based line number in the raw text
	Fields [FieldCount]string
}

// Field returns the trimmed value at index i.
func (r Record) Field(i int) string {
	return strings.TrimSpace(r.Fields[i])
}

// Seq parses the sequence number.
func (r Record) Seq() (int, error) {
	return strconv.Atoi(r.Field(FieldSeq))
}

func (r Record) Type() QuestionType {
	return QuestionType(r.Field(FieldType))
}

// IsClusterChild reports whether the record is flagged as a cluster child.
func (r Record) IsClusterChild() bool {
	return r.Field(FieldClusterChild) == Yes
}

// Options returns option fields 1-8, trimmed, including empty ones.
func (r Record) Options() []string {
	out := make([]string, 0, 8)
	for i := FieldOption1; i <= FieldOption8; i++ {
		out = append(out, r.Field(i))
	}
	return out
}

// CognitiveLevel returns the cognitive label with any marker removed.
func (r Record) CognitiveLevel() string {
	v := r.Field(FieldCognitive)
	for _, m := range cognitiveMarkers {
		if strings.HasPrefix(v, m) {
			return strings.TrimSpace(strings.TrimPrefix(v, m))
		}
	}
	return v
}
