package questionbank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qbank-ai/qbank/internal/llm"
	"github.com/qbank-ai/qbank/internal/records"
)

// ErrEmptyResponse is returned when the provider reply holds no text.
var ErrEmptyResponse = errors.New("AI returned no content")

// GenerationError wraps a provider failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate questions: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Config controls the Generator.
type Config struct {
	Limits Limits

	// Timeout bounds the provider call. Zero means no deadline.
	Timeout time.Duration

	// MaxTokens and Temperature are passed through to the provider;
	// zero leaves the provider default.
	MaxTokens   int
	Temperature float64

	// Check runs the record contract check on every reply.
	Check bool
}

// DefaultConfig returns the standard generator settings.
func DefaultConfig() Config {
	return Config{
		Limits:  DefaultLimits(),
		Timeout: 120 * time.Second,
		Check:   true,
	}
}

// Result is the outcome of one successful generation.
type Result struct {
	ID         uuid.UUID
	Request    Request
	Prompt     string
	Text       string // raw reply, trimmed
	Model      string
	Usage      llm.Usage
	StopReason string
	Elapsed    time.Duration

	// Truncated is set when the provider stopped at its token limit.
	Truncated bool

	// OutOfScope is set when the model declined the topic as outside the
	// grade's curriculum.
	OutOfScope bool

	// Report is the contract check of Text; nil when checking is off or
	// the reply is out of scope.
	Report *records.Report
}

// Stage marks progress through one generation.
type Stage int

const (
	StageConnecting Stage = iota
	StageProcessing
	StageDone
)

// Percent is the progress shown for the stage.
func (s Stage) Percent() int {
	switch s {
	case StageConnecting:
		return 20
	case StageProcessing:
		return 60
	default:
		return 100
	}
}

func (s Stage) Label() string {
	switch s {
	case StageConnecting:
		return "🔄 Đang kết nối AI..."
	case StageProcessing:
		return "📊 Đang xử lý dữ liệu..."
	default:
		return "✅ Hoàn thành!"
	}
}

// Generator turns a Request into raw question-bank text using an LLM.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a Generator. A nil logger disables logging.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, config: cfg, logger: logger.Named("questionbank")}
}

// Limits returns the total-count bounds the generator enforces.
func (g *Generator) Limits() Limits {
	return g.config.Limits
}

// ModelID reports the configured model.
func (g *Generator) ModelID() string {
	return g.provider.ModelID()
}

// Generate validates req, sends the built prompt once and returns the
// raw reply. It never retries.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	return g.GenerateWithProgress(ctx, req, nil)
}

// GenerateWithProgress is Generate with a callback invoked as each Stage
// is reached. progress may be nil.
func (g *Generator) GenerateWithProgress(ctx context.Context, req Request, progress func(Stage)) (*Result, error) {
	report := func(s Stage) {
		if progress != nil {
			progress(s)
		}
	}

	if errs := Validate(req, g.config.Limits); errs != nil {
		return nil, errs
	}

	res := &Result{
		ID:      uuid.New(),
		Request: req,
		Prompt:  BuildPrompt(req),
	}
	log := g.logger.With(zap.String("id", res.ID.String()))

	ctx = llm.WithCall(ctx, llm.Call{Purpose: "question-gen", RequestID: res.ID.String()})
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	llmReq := llm.UserPrompt(res.Prompt)
	llmReq.MaxTokens = g.config.MaxTokens
	llmReq.Temperature = g.config.Temperature

	report(StageConnecting)
	log.Info("generating questions",
		zap.String("subject", req.Subject),
		zap.String("grade", req.Grade),
		zap.String("topic", req.Topic),
		zap.Int("total", req.Counts.Total()),
	)

	start := time.Now()
	resp, err := g.provider.Generate(ctx, llmReq)
	res.Elapsed = time.Since(start)
	if err != nil {
		log.Warn("provider call failed", zap.Error(err), zap.Duration("elapsed", res.Elapsed))
		return nil, &GenerationError{Err: err}
	}

	report(StageProcessing)
	res.Text = strings.TrimSpace(resp.Text())
	if res.Text == "" {
		reason := llm.ReplyReason(resp.Reply)
		log.Warn("empty reply", zap.String("reason", reason), zap.String("stop_reason", resp.StopReason))
		if reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyResponse, reason)
		}
		return nil, ErrEmptyResponse
	}

	res.Model = resp.Model
	res.Usage = resp.Usage
	res.StopReason = resp.StopReason
	res.Truncated = resp.StopReason == "max_tokens"
	res.OutOfScope = strings.Contains(res.Text, OutOfScopeReply)

	if g.config.Check && !res.OutOfScope {
		rep := records.Analyze(res.Text)
		res.Report = &rep
		log.Info("reply checked", zap.Int("records", rep.Records), zap.Int("problems", len(rep.Violations)))
	}

	report(StageDone)
	return res, nil
}
