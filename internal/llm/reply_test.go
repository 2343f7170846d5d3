package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		reply Reply
		want  string
	}{
		{"direct text", TextReply{Text: "1|Đúng/Sai"}, "1|Đúng/Sai"},
		{"direct text pointer", &TextReply{Text: "abc"}, "abc"},
		{"empty direct text", TextReply{}, ""},
		{
			name: "first candidate parts concatenated",
			reply: CandidateReply{Candidates: []Candidate{
				{Parts: []Part{{Text: "STT|"}, {Text: "Loại"}}},
				{Parts: []Part{{Text: "ignored"}}},
			}},
			want: "STT|Loại",
		},
		{
			name: "thought and non-text parts skipped",
			reply: &CandidateReply{Candidates: []Candidate{
				{Parts: []Part{{Text: "draft", Thought: true}, {}, {Text: "final"}}},
			}},
			want: "final",
		},
		{"no candidates", CandidateReply{}, ""},
		{"candidate without parts", CandidateReply{Candidates: []Candidate{{}}}, ""},
		{"empty reply", EmptyReply{Reason: "blocked"}, ""},
		{"nil reply", nil, ""},
		{"nil pointer variant", (*TextReply)(nil), ""},
		{"nil candidate pointer", (*CandidateReply)(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			assert.NotPanics(t, func() { got = ExtractText(tt.reply) })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplyReason(t *testing.T) {
	assert.Equal(t, "prompt blocked: SAFETY", ReplyReason(EmptyReply{Reason: "prompt blocked: SAFETY"}))
	assert.Equal(t, "x", ReplyReason(&EmptyReply{Reason: "x"}))
	assert.Empty(t, ReplyReason(TextReply{Text: "hi"}))
}

func TestResponseText_NilSafe(t *testing.T) {
	var r *Response
	assert.Empty(t, r.Text())
	assert.Empty(t, (&Response{}).Text())
	assert.Equal(t, "ok", (&Response{Reply: TextReply{Text: "ok"}}).Text())
}
