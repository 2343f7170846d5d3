package questionbank

import (
	"strings"
	"testing"

	"github.com/qbank-ai/qbank/internal/records"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := validRequest()
	a := BuildPrompt(req)
	b := BuildPrompt(req)
	if a != b {
		t.Fatal("identical requests must yield identical prompts")
	}

	req.Topic = "Số thập phân"
	if BuildPrompt(req) == a {
		t.Fatal("different topics must yield different prompts")
	}
}

func TestBuildPrompt_Substitutions(t *testing.T) {
	msg := BuildPrompt(validRequest())

	for _, want := range []string{
		`Chủ đề: "Phân số" - Môn Toán - Lớp 6.`,
		"bám sát bộ sách giáo khoa Cánh Diều",
		"Môn Toán lớp 6 chỉ được phép chứa kiến thức ĐÚNG LỚP ĐÓ",
		"- Một lựa chọn: 4 | Đúng/Sai: 0 | Điền khuyết: 0 | Kéo thả: 0 | Chùm: 0 | Tự luận: 0",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Header(t *testing.T) {
	msg := BuildPrompt(validRequest())

	header := records.HeaderLine()
	if strings.Count(header, "|") != 21 {
		t.Fatalf("header must have 21 separators")
	}
	if !strings.Contains(msg, "HEADER (Copy chính xác dòng này làm dòng đầu tiên):\n"+header+"\n") {
		t.Error("prompt must carry the header on its own line after the HEADER instruction")
	}
}

func TestBuildPrompt_Rulebook(t *testing.T) {
	msg := BuildPrompt(validRequest())

	for _, want := range []string{
		"Thông tư số 32/2018/TT-BGDĐT",
		"- Nhận biết: 20–30%",
		"- Vận dụng cao: 10–20%",
		`Chỉ trả về: "` + OutOfScopeReply + `"`,
		"MỖI DÒNG PHẢI CÓ ĐÚNG 21 DẤU |",
		"Áp suất là độ lớn của {a} trên một đơn vị {b}",
		"Công thức tính áp suất: p = {a} / {b}",
		"Câu hỏi chùm (câu dẫn)",
		"➊ Nhận biết / ➋ Thông hiểu / ➌ Vận dụng / ➍ Vận dụng cao",
		"<br>a) Tính thời gian",
		`phải ghi đúng "Tự luận"`,
		"STT tăng dần từ 1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(msg, "{{") || strings.Contains(msg, "[[") {
		t.Error("prompt must not contain template delimiters")
	}
}

func TestBuildPrompt_VerbatimValues(t *testing.T) {
	req := validRequest()
	req.Topic = `Lực & "áp suất" <b>`
	msg := BuildPrompt(req)
	if !strings.Contains(msg, `Chủ đề: "Lực & "áp suất" <b>"`) {
		t.Error("user values must be substituted without escaping")
	}
}
