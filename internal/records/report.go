package records

import (
	"fmt"
	"strings"
)

// Report summarizes a contract check over raw model output.
type Report struct {
	Records    int
	Counts     map[QuestionType]int
	Violations []Violation
}

// Analyze parses and checks text in one pass.
func Analyze(text string) Report {
	recs, violations := Parse(text)
	violations = append(violations, Check(recs)...)
	sortViolations(violations)

	counts := make(map[QuestionType]int)
	for _, r := range recs {
		counts[r.Type()]++
	}

	return Report{
		Records:    len(recs),
		Counts:     counts,
		Violations: violations,
	}
}

// OK reports whether at least one record parsed and nothing was violated.
func (r Report) OK() bool {
	return r.Records > 0 && len(r.Violations) == 0
}

// Summary is a one-line human-readable digest.
func (r Report) Summary() string {
	if r.OK() {
		return fmt.Sprintf("%d records, no problems", r.Records)
	}
	return fmt.Sprintf("%d records, %d problems", r.Records, len(r.Violations))
}

// String lists the summary followed by each violation.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString(r.Summary())
	for _, v := range r.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}
