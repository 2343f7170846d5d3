package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qbank-ai/qbank/internal/llm"
	"github.com/qbank-ai/qbank/internal/questionbank"
	"github.com/qbank-ai/qbank/internal/records"
)

// msgBusy is shown when the generation limiter rejects a request.
const msgBusy = "⏳ Hệ thống đang bận, vui lòng thử lại sau ít phút."

type countField struct {
	Key   string
	Label string
	Max   int
	Value int
}

type pageData struct {
	Request  questionbank.Request
	Editions []questionbank.Edition
	Counts   []countField
	MaxTotal int
	Model    string

	Errors []string
	Result *questionbank.Result

	MsgSuccess    string
	MsgOutOfScope string
	MsgTruncated  string
	UsageGuide    []string
	UsageTip      string
}

func (s *Server) page(req questionbank.Request) pageData {
	values := req.Counts.Slice()
	counts := make([]countField, len(questionbank.CountKinds))
	for i, k := range questionbank.CountKinds {
		counts[i] = countField{Key: k.Key, Label: k.Label, Max: k.Max, Value: values[i]}
	}
	return pageData{
		Request:       req,
		Editions:      questionbank.Editions,
		Counts:        counts,
		MaxTotal:      s.gen.Limits().MaxTotal,
		Model:         s.gen.ModelID(),
		MsgSuccess:    questionbank.MsgSuccess,
		MsgOutOfScope: questionbank.MsgOutOfScope,
		MsgTruncated:  questionbank.MsgTruncated,
		UsageGuide:    questionbank.UsageGuide,
		UsageTip:      questionbank.MsgUsageTip,
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(questionbank.DefaultRequest()))
}

func (s *Server) handleHealth(c *gin.Context) {
	success(c, gin.H{"status": "ok", "model": s.gen.ModelID()})
}

// formRequest reads the posted form. Count fields that are not integers
// are reported as errors and read as zero.
func formRequest(c *gin.Context) (questionbank.Request, []string) {
	var problems []string
	values := make([]int, len(questionbank.CountKinds))
	for i, k := range questionbank.CountKinds {
		raw := strings.TrimSpace(c.PostForm(k.Key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Số câu %q không hợp lệ", k.Label))
			continue
		}
		values[i] = n
	}

	edition := questionbank.Edition(c.PostForm("edition"))
	if edition == "" {
		edition = questionbank.EditionKetNoiTriThuc
	}

	return questionbank.Request{
		Subject: c.PostForm("subject"),
		Grade:   c.PostForm("grade"),
		Topic:   c.PostForm("topic"),
		Edition: edition,
		Counts:  questionbank.CountsFromSlice(values),
	}, problems
}

func (s *Server) validate(req questionbank.Request) questionbank.ValidationErrors {
	return questionbank.ValidateAll(req, s.gen.Limits())
}

func (s *Server) handleGenerateForm(c *gin.Context) {
	req, problems := formRequest(c)
	data := s.page(req)

	errs := s.validate(req)
	if len(problems) > 0 || len(errs) > 0 {
		s.metrics.observe(outcomeInvalid, nil)
		data.Errors = append(problems, errs.Messages()...)
		c.HTML(http.StatusUnprocessableEntity, "index.html", data)
		return
	}

	if !s.limiter.Allow() {
		s.metrics.observe(outcomeThrottled, nil)
		data.Errors = []string{msgBusy}
		c.HTML(http.StatusTooManyRequests, "index.html", data)
		return
	}

	res, err := s.generate(c.Request.Context(), req)
	if err != nil {
		data.Errors = strings.Split(questionbank.UserMessage(err), "\n")
		c.HTML(statusFor(err), "index.html", data)
		return
	}

	data.Result = res
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) handleGenerateAPI(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "read body: "+err.Error())
		return
	}

	req, err := decodeRequest(body)
	if err != nil {
		s.metrics.observe(outcomeInvalid, nil)
		badRequest(c, err.Error())
		return
	}

	if errs := s.validate(req); len(errs) > 0 {
		s.metrics.observe(outcomeInvalid, nil)
		fail(c, http.StatusUnprocessableEntity, questionbank.UserMessage(errs), gin.H{"errors": validationPayload(errs)})
		return
	}

	if !s.limiter.Allow() {
		s.metrics.observe(outcomeThrottled, nil)
		fail(c, http.StatusTooManyRequests, msgBusy, nil)
		return
	}

	res, err := s.generate(c.Request.Context(), req)
	if err != nil {
		fail(c, statusFor(err), questionbank.UserMessage(err), nil)
		return
	}
	success(c, newResultPayload(res))
}

func (s *Server) handleCheckAPI(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "read body: "+err.Error())
		return
	}
	if strings.TrimSpace(string(body)) == "" {
		badRequest(c, "empty body")
		return
	}
	rep := records.Analyze(string(body))
	success(c, newReportPayload(&rep))
}

// generate runs one generation and records its outcome.
func (s *Server) generate(ctx context.Context, req questionbank.Request) (*questionbank.Result, error) {
	res, err := s.gen.Generate(ctx, req)
	switch {
	case errors.Is(err, questionbank.ErrEmptyResponse):
		s.metrics.observe(outcomeEmpty, nil)
	case err != nil:
		s.metrics.observe(outcomeError, nil)
		s.logger.Warn("generation failed", zap.Error(err))
	case res.OutOfScope:
		s.metrics.observe(outcomeOutOfScope, res)
	default:
		s.metrics.observe(outcomeSuccess, res)
	}
	return res, err
}

// statusFor maps a generation error to an HTTP status.
func statusFor(err error) int {
	var verrs questionbank.ValidationErrors
	var rateErr *llm.ErrRateLimit
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &rateErr):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}
