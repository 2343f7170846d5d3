package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbank-ai/qbank/internal/llm"
	"github.com/qbank-ai/qbank/internal/questionbank"
	"github.com/qbank-ai/qbank/internal/records"
)

func newTestServer(t *testing.T, ratePerMinute int, responses ...llm.MockResponse) (*Server, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	gen := questionbank.New(mock, questionbank.DefaultConfig(), nil)
	return New(gen, Options{Mode: gin.TestMode, RatePerMinute: ratePerMinute}), mock
}

func do(s *Server, method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(s *Server, path, body string) *httptest.ResponseRecorder {
	return do(s, http.MethodPost, path, "application/json", strings.NewReader(body))
}

func postForm(s *Server, form url.Values) *httptest.ResponseRecorder {
	return do(s, http.MethodPost, "/generate", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (Response, map[string]any) {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data, _ := resp.Data.(map[string]any)
	return resp, data
}

const validJSON = `{
	"subject": "Khoa học tự nhiên",
	"grade": "8",
	"topic": "Đo tốc độ",
	"edition": "Cánh Diều",
	"counts": {"single_choice": 4, "true_false": 2}
}`

func validForm() url.Values {
	return url.Values{
		"subject":       {"Toán"},
		"grade":         {"6"},
		"topic":         {"Phân số"},
		"edition":       {string(questionbank.EditionChanTroiSangTao)},
		"single_choice": {"5"},
		"free_response": {"1"},
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, 0)
	rec := do(s, http.MethodGet, "/healthz", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp, data := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "mock", data["model"])
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, 0)
	rec := do(s, http.MethodGet, "/", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Thông tin bài học")
	assert.Contains(t, body, `value="Khoa học tự nhiên"`)
	assert.Contains(t, body, `max="20"`)
	assert.Contains(t, body, questionbank.MsgUsageTip)
}

func TestGenerateForm_Success(t *testing.T) {
	s, mock := newTestServer(t, 0, llm.MockResponse{Text: records.Sample})
	rec := postForm(s, validForm())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, questionbank.MsgSuccess)
	assert.Contains(t, body, "no problems")
	assert.Contains(t, body, "Hướng dẫn sử dụng file")
	assert.Equal(t, 1, mock.CallCount())

	sent := mock.Calls[0].Messages[0].Content
	assert.Contains(t, sent, "Phân số")
	assert.Contains(t, sent, string(questionbank.EditionChanTroiSangTao))
}

func TestGenerateForm_ValidationErrors(t *testing.T) {
	s, mock := newTestServer(t, 0)
	form := validForm()
	form.Set("subject", " ")
	form.Set("topic", "")
	form.Set("single_choice", "0")
	form.Set("free_response", "0")

	rec := postForm(s, form)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Vui lòng nhập môn học")
	assert.Contains(t, body, "Vui lòng nhập chủ đề")
	assert.Contains(t, body, "Vui lòng chọn ít nhất một loại câu hỏi")
	assert.Zero(t, mock.CallCount())
}

func TestGenerateForm_BadNumber(t *testing.T) {
	s, mock := newTestServer(t, 0)
	form := validForm()
	form.Set("true_false", "abc")

	rec := postForm(s, form)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "không hợp lệ")
	assert.Zero(t, mock.CallCount())
}

func TestGenerateAPI_Success(t *testing.T) {
	s, mock := newTestServer(t, 0, llm.MockResponse{
		Text:  records.Sample,
		Usage: llm.Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	})
	rec := postJSON(s, "/api/v1/questions", validJSON)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp, data := decodeEnvelope(t, rec)
	assert.Equal(t, "success", resp.Message)
	assert.Equal(t, strings.TrimSpace(records.Sample), data["text"])
	assert.Equal(t, false, data["out_of_scope"])

	report, ok := data["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, report["ok"])

	usage := data["usage"].(map[string]any)
	assert.EqualValues(t, 150, usage["total_tokens"])
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateAPI_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"subject":`},
		{"fractional count", `{"subject":"a","grade":"1","topic":"b","counts":{"cluster":1.5}}`},
		{"string count", `{"subject":"a","grade":"1","topic":"b","counts":{"cluster":"2"}}`},
		{"numeric subject", `{"subject":5,"grade":"1","topic":"b","counts":{"cluster":1}}`},
		{"unknown count key", `{"subject":"a","grade":"1","topic":"b","counts":{"essay":1}}`},
		{"unknown field", `{"subject":"a","grade":"1","topic":"b","counts":{"cluster":1},"extra":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestServer(t, 0)
			rec := postJSON(s, "/api/v1/questions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, mock.CallCount())
		})
	}
}

func TestGenerateAPI_Validation(t *testing.T) {
	s, mock := newTestServer(t, 0)
	rec := postJSON(s, "/api/v1/questions", `{"subject":"","grade":"8","topic":"x","counts":{"true_false":20,"drag_drop":10,"fill_blank":10,"free_response":9,"cluster":6}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp, data := decodeEnvelope(t, rec)
	assert.Contains(t, resp.Message, "Vui lòng nhập môn học")
	assert.Contains(t, resp.Message, "Tổng số câu hỏi không được vượt quá 50")

	errs, ok := data["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errs, 2)
	assert.Zero(t, mock.CallCount())
}

func TestGenerateAPI_ReportsEveryError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			"blank fields and per-type maximum",
			`{"subject":"","grade":"","topic":"","counts":{"single_choice":11}}`,
			[]string{"subject", "topic", "grade", "counts"},
		},
		{
			"missing fields",
			`{"counts":{"true_false":2}}`,
			[]string{"subject", "topic", "grade"},
		},
		{
			"missing counts",
			`{"subject":"a","grade":"1","topic":"b"}`,
			[]string{"counts"},
		},
		{
			"negative count and unknown edition",
			`{"subject":"a","grade":"1","topic":"b","edition":"Khác","counts":{"cluster":-1,"single_choice":2}}`,
			[]string{"counts", "edition"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestServer(t, 0)
			rec := postJSON(s, "/api/v1/questions", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			_, data := decodeEnvelope(t, rec)
			errs, ok := data["errors"].([]any)
			require.True(t, ok)

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.(map[string]any)["field"].(string))
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Zero(t, mock.CallCount())
		})
	}
}

func TestGenerateForm_EmptyEditionDefaults(t *testing.T) {
	s, mock := newTestServer(t, 0, llm.MockResponse{Text: records.Sample})
	form := validForm()
	form.Set("edition", "")

	rec := postForm(s, form)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Messages[0].Content, string(questionbank.EditionKetNoiTriThuc))
}

func TestGenerateAPI_Throttled(t *testing.T) {
	s, mock := newTestServer(t, 1)
	mock.WithFallback(llm.MockResponse{Text: records.Sample})

	first := postJSON(s, "/api/v1/questions", validJSON)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(s, "/api/v1/questions", validJSON)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	resp, _ := decodeEnvelope(t, second)
	assert.Equal(t, msgBusy, resp.Message)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateAPI_ProviderErrors(t *testing.T) {
	tests := []struct {
		name     string
		resp     llm.MockResponse
		status   int
		contains string
	}{
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}, http.StatusServiceUnavailable, questionbank.MsgProviderTip},
		{"unavailable", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial")}}, http.StatusBadGateway, "Lỗi trong quá trình xử lý"},
		{"empty", llm.MockResponse{Reply: llm.EmptyReply{Reason: "prompt blocked: SAFETY"}}, http.StatusBadGateway, questionbank.MsgEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, 0, tt.resp)
			rec := postJSON(s, "/api/v1/questions", validJSON)
			require.Equal(t, tt.status, rec.Code)
			resp, _ := decodeEnvelope(t, rec)
			assert.Contains(t, resp.Message, tt.contains)
		})
	}
}

func TestCheckAPI(t *testing.T) {
	s, _ := newTestServer(t, 0)

	rec := do(s, http.MethodPost, "/api/v1/check", "text/plain", strings.NewReader(records.Sample))
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)
	assert.Equal(t, true, data["ok"])

	rec = do(s, http.MethodPost, "/api/v1/check", "text/plain", strings.NewReader("1|x"))
	require.Equal(t, http.StatusOK, rec.Code)
	_, data = decodeEnvelope(t, rec)
	assert.Equal(t, false, data["ok"])
	assert.Len(t, data["violations"], 1)

	rec = do(s, http.MethodPost, "/api/v1/check", "text/plain", strings.NewReader("  "))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t, 0, llm.MockResponse{Text: records.Sample})
	require.Equal(t, http.StatusOK, postJSON(s, "/api/v1/questions", validJSON).Code)
	postJSON(s, "/api/v1/questions", `{}`)

	rec := do(s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `qbank_generations_total{outcome="success"} 1`)
	assert.Contains(t, body, `qbank_generations_total{outcome="invalid"} 1`)
	assert.Contains(t, body, `http_requests_total{endpoint="/api/v1/questions",method="POST",status="200"} 1`)
}
