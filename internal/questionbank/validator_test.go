package questionbank

import (
	"strings"
	"testing"
)

func validRequest() Request {
	return Request{
		Subject: "Toán",
		Grade:   "6",
		Topic:   "Phân số",
		Edition: EditionCanhDieu,
		Counts:  Counts{SingleChoice: 4},
	}
}

func TestValidate_Valid(t *testing.T) {
	if errs := Validate(validRequest(), DefaultLimits()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs := Validate(DefaultRequest(), DefaultLimits()); errs != nil {
		t.Fatalf("default request should be valid, got %v", errs)
	}
}

func TestValidate_ZeroTotal(t *testing.T) {
	req := validRequest()
	req.Counts = Counts{}

	errs := Validate(req, DefaultLimits())
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != FieldCounts || errs[0].Message != "Vui lòng chọn ít nhất một loại câu hỏi" {
		t.Errorf("unexpected error %+v", errs[0])
	}
}

func TestValidate_ExceedsMax(t *testing.T) {
	tests := []Counts{
		{SingleChoice: 10, TrueFalse: 20, FillBlank: 10, DragDrop: 10, Cluster: 1},
		{SingleChoice: 51},
		{TrueFalse: 20, FreeResponse: 9, Cluster: 6, DragDrop: 10, FillBlank: 6},
	}
	for _, c := range tests {
		req := validRequest()
		req.Counts = c
		errs := Validate(req, DefaultLimits())
		if len(errs) != 1 || errs[0].Message != "Tổng số câu hỏi không được vượt quá 50" {
			t.Errorf("counts %v (total %d): expected exceeds-max error, got %v", c, c.Total(), errs)
		}
	}
}

func TestValidate_BoundaryTotals(t *testing.T) {
	req := validRequest()
	req.Counts = Counts{SingleChoice: 10, TrueFalse: 20, FillBlank: 10, DragDrop: 10}
	if errs := Validate(req, DefaultLimits()); errs != nil {
		t.Fatalf("total of exactly 50 must pass, got %v", errs)
	}

	req.Counts = Counts{FreeResponse: 1}
	if errs := Validate(req, DefaultLimits()); errs != nil {
		t.Fatalf("total of 1 must pass, got %v", errs)
	}
}

func TestValidate_CustomLimits(t *testing.T) {
	req := validRequest()
	req.Counts = Counts{SingleChoice: 3}

	errs := Validate(req, Limits{MinTotal: 5, MaxTotal: 20})
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "5") {
		t.Fatalf("expected min-total error, got %v", errs)
	}

	req.Counts = Counts{SingleChoice: 10, TrueFalse: 11}
	errs = Validate(req, Limits{MinTotal: 5, MaxTotal: 20})
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "20") {
		t.Fatalf("expected max-total error, got %v", errs)
	}
}

func TestValidate_AllMissingFieldsReported(t *testing.T) {
	req := Request{Subject: "  ", Grade: "", Topic: "\t", Counts: Counts{}}

	errs := Validate(req, DefaultLimits())
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), errs)
	}

	want := map[string]string{
		FieldSubject: "Vui lòng nhập môn học",
		FieldTopic:   "Vui lòng nhập chủ đề",
		FieldGrade:   "Vui lòng nhập lớp",
		FieldCounts:  "Vui lòng chọn ít nhất một loại câu hỏi",
	}
	for _, e := range errs {
		if want[e.Field] != e.Message {
			t.Errorf("field %s: got %q, want %q", e.Field, e.Message, want[e.Field])
		}
	}
}

func TestValidate_NegativeCount(t *testing.T) {
	req := validRequest()
	req.Counts.TrueFalse = -1

	errs := Validate(req, DefaultLimits())
	if len(errs) != 1 || errs[0].Field != FieldCounts {
		t.Fatalf("expected 1 counts error, got %v", errs)
	}
}

func TestValidateBounds(t *testing.T) {
	req := validRequest()
	if errs := ValidateBounds(req); errs != nil {
		t.Fatalf("unexpected errors %v", errs)
	}

	req.Counts = Counts{SingleChoice: 11, Cluster: 7}
	req.Edition = "Sách cũ"
	errs := ValidateBounds(req)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}

	req = validRequest()
	req.Edition = ""
	errs = ValidateBounds(req)
	if len(errs) != 1 || errs[0].Field != FieldEdition {
		t.Fatalf("expected one edition error, got %v", errs)
	}
}

func TestValidateAll(t *testing.T) {
	if errs := ValidateAll(validRequest(), DefaultLimits()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}

	req := validRequest()
	req.Subject = " "
	req.Topic = ""
	req.Counts = Counts{SingleChoice: 11}
	errs := ValidateAll(req, DefaultLimits())

	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	want := []string{FieldSubject, FieldTopic, FieldCounts}
	if strings.Join(fields, ",") != strings.Join(want, ",") {
		t.Fatalf("fields = %v, want %v (errors %v)", fields, want, errs)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{{FieldSubject, "a"}, {FieldTopic, "b"}}
	if errs.Error() != "a; b" {
		t.Errorf("unexpected Error() %q", errs.Error())
	}
}

func TestCountsFromSlice(t *testing.T) {
	c := CountsFromSlice([]int{1, 2, 3, 4, 5, 6})
	if c.Total() != 21 || c.Cluster != 5 || c.FreeResponse != 6 {
		t.Fatalf("unexpected counts %+v", c)
	}
	if got := CountsFromSlice([]int{7}); got.SingleChoice != 7 || got.Total() != 7 {
		t.Fatalf("unexpected counts %+v", got)
	}
}

func TestParseEdition(t *testing.T) {
	tests := []struct {
		in      string
		want    Edition
		wantErr bool
	}{
		{"kntt", EditionKetNoiTriThuc, false},
		{" CTST ", EditionChanTroiSangTao, false},
		{"cd", EditionCanhDieu, false},
		{"cánh diều", EditionCanhDieu, false},
		{"Chân trời sáng tạo", EditionChanTroiSangTao, false},
		{"", "", true},
		{"khác", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEdition(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEdition(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEdition(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
