package llm

import "strings"

// Reply is the provider output as a closed set of shapes:
// TextReply, CandidateReply or EmptyReply.
type Reply interface {
	isReply()
}

// TextReply is a reply exposed by the provider as a single text payload.
type TextReply struct {
	Text string
}

// Candidate is one generated alternative made of ordered content parts.
type Candidate struct {
	Parts        []Part
	FinishReason string
}

// Part is a single content segment. Non-text parts (inline data, function
// calls, thoughts) carry an empty Text and are skipped on extraction.
type Part struct {
	Text    string
	Thought bool
}

// CandidateReply is a reply exposed as a list of candidates, each with
// multiple content parts.
type CandidateReply struct {
	Candidates []Candidate
}

// EmptyReply is a reply with no extractable content. Reason is a
// provider-specific explanation such as a prompt block reason.
type EmptyReply struct {
	Reason string
}

func (TextReply) isReply()      {}
func (CandidateReply) isReply() {}
func (EmptyReply) isReply()     {}

// ExtractText returns the best-effort plain text of a reply:
// the direct text of a TextReply, otherwise the concatenated text parts of
// the first candidate, otherwise "". It never panics; any failure yields "".
func ExtractText(r Reply) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	switch v := r.(type) {
	case TextReply:
		return v.Text
	case *TextReply:
		return v.Text
	case CandidateReply:
		return extractCandidates(v.Candidates)
	case *CandidateReply:
		return extractCandidates(v.Candidates)
	default:
		return ""
	}
}

func extractCandidates(cands []Candidate) string {
	if len(cands) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range cands[0].Parts {
		if p.Thought || p.Text == "" {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// ReplyReason returns the explanation attached to an EmptyReply, or "".
func ReplyReason(r Reply) string {
	switch v := r.(type) {
	case EmptyReply:
		return v.Reason
	case *EmptyReply:
		return v.Reason
	}
	return ""
}
