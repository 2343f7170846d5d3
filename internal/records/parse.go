package records

import (
	"fmt"
	"strings"
)

// Parse splits raw model output into records. Blank lines, markdown
// fences and header rows are skipped. Lines that do not split into
// exactly FieldCount fields are returned as violations and omitted from
// the records.
func Parse(text string) ([]Record, []Violation) {
	var recs []Record
	var violations []Violation

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}

		parts := strings.Split(line, Separator)
		if strings.TrimSpace(parts[0]) == Columns[FieldSeq] {
			continue
		}

		if len(parts) != FieldCount {
			violations = append(violations, Violation{
				Line:    lineNo,
				Rule:    RuleFieldCount,
				Message: fmt.Sprintf("expected %d fields, got %d", FieldCount, len(parts)),
			})
			continue
		}

		rec := Record{Line: lineNo}
		copy(rec.Fields[:], parts)
		recs = append(recs, rec)
	}

	return recs, violations
}
