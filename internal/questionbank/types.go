// Package questionbank validates a question-bank request, builds the
// generation prompt and runs it through an LLM provider.
package questionbank

import (
	"fmt"
	"strings"

	"github.com/qbank-ai/qbank/internal/records"
)

// Edition is a textbook series label.
type Edition string

const (
	EditionKetNoiTriThuc   Edition = "Kết nối tri thức với cuộc sống"
	EditionChanTroiSangTao Edition = "Chân trời sáng tạo"
	EditionCanhDieu        Edition = "Cánh Diều"
)

// Editions lists the selectable textbook series in display order.
var Editions = []Edition{EditionKetNoiTriThuc, EditionChanTroiSangTao, EditionCanhDieu}

// editionAliases are the short names accepted by ParseEdition.
var editionAliases = map[string]Edition{
	"kntt": EditionKetNoiTriThuc,
	"ctst": EditionChanTroiSangTao,
	"cd":   EditionCanhDieu,
}

// ParseEdition resolves a full edition label (case-insensitive) or one of
// the short aliases kntt, ctst and cd.
func ParseEdition(s string) (Edition, error) {
	s = strings.TrimSpace(s)
	if e, ok := editionAliases[strings.ToLower(s)]; ok {
		return e, nil
	}
	for _, e := range Editions {
		if strings.EqualFold(string(e), s) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown edition %q (use kntt, ctst or cd)", s)
}

// Counts holds the requested number of questions per type.
type Counts struct {
	SingleChoice int `json:"single_choice"`
	TrueFalse    int `json:"true_false"`
	FillBlank    int `json:"fill_blank"`
	DragDrop     int `json:"drag_drop"`
	Cluster      int `json:"cluster"`
	FreeResponse int `json:"free_response"`
}

// Total is the sum of all six counts.
func (c Counts) Total() int {
	return c.SingleChoice + c.TrueFalse + c.FillBlank + c.DragDrop + c.Cluster + c.FreeResponse
}

// Slice returns the counts in form order.
func (c Counts) Slice() []int {
	return []int{c.SingleChoice, c.TrueFalse, c.FillBlank, c.DragDrop, c.Cluster, c.FreeResponse}
}

// CountKind describes one of the six count inputs.
type CountKind struct {
	Key   string
	Label string
	Type  records.QuestionType
	Max   int
}

// CountKinds lists the six count inputs in form order with their bounds.
var CountKinds = []CountKind{
	{Key: "single_choice", Label: "Một lựa chọn (Trắc nghiệm 4 chọn 1)", Type: records.TypeSingleChoice, Max: 10},
	{Key: "true_false", Label: "Đúng/Sai", Type: records.TypeTrueFalse, Max: 20},
	{Key: "fill_blank", Label: "Điền khuyết (Dạng {a}, {b})", Type: records.TypeFillBlank, Max: 10},
	{Key: "drag_drop", Label: "Kéo thả (Dạng {a}, {b})", Type: records.TypeDragDrop, Max: 10},
	{Key: "cluster", Label: "Câu hỏi chùm", Type: records.TypeClusterStem, Max: 6},
	{Key: "free_response", Label: "Tự luận", Type: records.TypeFreeResponse, Max: 9},
}

// CountsFromSlice builds Counts from six values in form order.
func CountsFromSlice(v []int) Counts {
	var c Counts
	ptrs := []*int{&c.SingleChoice, &c.TrueFalse, &c.FillBlank, &c.DragDrop, &c.Cluster, &c.FreeResponse}
	for i := range ptrs {
		if i < len(v) {
			*ptrs[i] = v[i]
		}
	}
	return c
}

// Request is one question-bank generation request.
type Request struct {
	Subject string  `json:"subject"`
	Grade   string  `json:"grade"`
	Topic   string  `json:"topic"`
	Edition Edition `json:"edition"`
	Counts  Counts  `json:"counts"`
}

// DefaultRequest returns the values the form starts with.
func DefaultRequest() Request {
	return Request{
		Subject: "Khoa học tự nhiên",
		Grade:   "8",
		Topic:   "Đo tốc độ",
		Edition: EditionKetNoiTriThuc,
		Counts:  Counts{SingleChoice: 4},
	}
}

// Limits bounds the total question count.
type Limits struct {
	MinTotal int
	MaxTotal int
}

// DefaultLimits returns the standard bounds of 1..50 questions.
func DefaultLimits() Limits {
	return Limits{MinTotal: 1, MaxTotal: 50}
}
