package web

import (
	"github.com/qbank-ai/qbank/internal/questionbank"
	"github.com/qbank-ai/qbank/internal/records"
)

type fieldErrorPayload struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationPayload(errs questionbank.ValidationErrors) []fieldErrorPayload {
	out := make([]fieldErrorPayload, len(errs))
	for i, e := range errs {
		out[i] = fieldErrorPayload{Field: e.Field, Message: e.Message}
	}
	return out
}

type usagePayload struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

type violationPayload struct {
	Line    int    `json:"line"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type reportPayload struct {
	OK         bool               `json:"ok"`
	Records    int                `json:"records"`
	Counts     map[string]int     `json:"counts"`
	Violations []violationPayload `json:"violations"`
}

type resultPayload struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Model      string         `json:"model"`
	Usage      usagePayload   `json:"usage"`
	StopReason string         `json:"stop_reason"`
	ElapsedMs  int64          `json:"elapsed_ms"`
	Truncated  bool           `json:"truncated"`
	OutOfScope bool           `json:"out_of_scope"`
	Report     *reportPayload `json:"report,omitempty"`
}

func newReportPayload(rep *records.Report) *reportPayload {
	if rep == nil {
		return nil
	}
	counts := make(map[string]int, len(rep.Counts))
	for t, n := range rep.Counts {
		counts[string(t)] = n
	}
	violations := make([]violationPayload, len(rep.Violations))
	for i, v := range rep.Violations {
		violations[i] = violationPayload{Line: v.Line, Rule: string(v.Rule), Message: v.Message}
	}
	return &reportPayload{
		OK:         rep.OK(),
		Records:    rep.Records,
		Counts:     counts,
		Violations: violations,
	}
}

func newResultPayload(res *questionbank.Result) resultPayload {
	return resultPayload{
		ID:    res.ID.String(),
		Text:  res.Text,
		Model: res.Model,
		Usage: usagePayload{
			InputTokens:  res.Usage.InputTokens,
			OutputTokens: res.Usage.OutputTokens,
			TotalTokens:  res.Usage.TotalTokens,
		},
		StopReason: res.StopReason,
		ElapsedMs:  res.Elapsed.Milliseconds(),
		Truncated:  res.Truncated,
		OutOfScope: res.OutOfScope,
		Report:     newReportPayload(res.Report),
	}
}
