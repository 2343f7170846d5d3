package questionbank

import (
	"fmt"
	"strings"
)

// Field names used in FieldError.
const (
	FieldSubject = "subject"
	FieldGrade   = "grade"
	FieldTopic   = "topic"
	FieldEdition = "edition"
	FieldCounts  = "counts"
)

// FieldError is one validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Message }

// ValidationErrors collects every failure found in a request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the user-facing message of each error.
func (v ValidationErrors) Messages() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Message
	}
	return out
}

// Validate checks req against lim and reports every problem at once.
// Subject, topic and grade must be non-blank; the total count must lie
// within [lim.MinTotal, lim.MaxTotal]. It returns nil when req is valid.
func Validate(req Request, lim Limits) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(req.Subject) == "" {
		errs = append(errs, FieldError{FieldSubject, "Vui lòng nhập môn học"})
	}
	if strings.TrimSpace(req.Topic) == "" {
		errs = append(errs, FieldError{FieldTopic, "Vui lòng nhập chủ đề"})
	}
	if strings.TrimSpace(req.Grade) == "" {
		errs = append(errs, FieldError{FieldGrade, "Vui lòng nhập lớp"})
	}

	for i, n := range req.Counts.Slice() {
		if n < 0 {
			errs = append(errs, FieldError{FieldCounts, fmt.Sprintf("Số câu %q không được âm", CountKinds[i].Label)})
		}
	}

	total := req.Counts.Total()
	switch {
	case total < lim.MinTotal && total <= 0:
		errs = append(errs, FieldError{FieldCounts, "Vui lòng chọn ít nhất một loại câu hỏi"})
	case total < lim.MinTotal:
		errs = append(errs, FieldError{FieldCounts, fmt.Sprintf("Tổng số câu hỏi phải từ %d trở lên", lim.MinTotal)})
	case total > lim.MaxTotal:
		errs = append(errs, FieldError{FieldCounts, fmt.Sprintf("Tổng số câu hỏi không được vượt quá %d", lim.MaxTotal)})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateBounds checks each count against its per-type maximum and the
// edition against the known list. Form surfaces enforce these as input
// bounds; headless callers use this instead.
func ValidateBounds(req Request) ValidationErrors {
	var errs ValidationErrors
	for i, n := range req.Counts.Slice() {
		if k := CountKinds[i]; n > k.Max {
			errs = append(errs, FieldError{FieldCounts, fmt.Sprintf("Số câu %q tối đa là %d", k.Label, k.Max)})
		}
	}
	switch {
	case req.Edition == "":
		errs = append(errs, FieldError{FieldEdition, "Vui lòng chọn bộ sách giáo khoa"})
	case !knownEdition(req.Edition):
		errs = append(errs, FieldError{FieldEdition, fmt.Sprintf("Bộ sách %q không hợp lệ", req.Edition)})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateAll reports the errors of Validate and ValidateBounds together.
func ValidateAll(req Request, lim Limits) ValidationErrors {
	errs := append(Validate(req, lim), ValidateBounds(req)...)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func knownEdition(e Edition) bool {
	for _, k := range Editions {
		if k == e {
			return true
		}
	}
	return false
}
