package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRender(t *testing.T) {
	var gotW, gotH int
	body := func(w, h int) string {
		gotW, gotH = w, h
		return "BODY"
	}

	out := Render(Chrome{
		Title:  "Tạo câu hỏi",
		Status: "gemini-2.5-flash",
		Hints:  []KeyHint{{Key: "Tab", Description: "Chuyển ô"}},
	}, 100, 30, body)

	for _, want := range []string{"qbank", "Tạo câu hỏi", "gemini-2.5-flash", "Tab", "Chuyển ô", "BODY"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if gotW != 100 {
		t.Errorf("body width = %d, want 100", gotW)
	}
	if gotH <= 0 || gotH >= 30 {
		t.Errorf("body height = %d, want between header and footer", gotH)
	}
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal not reported")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size reported as too small")
	}
}
