package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider is a decorator that logs every LLM request.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, logger: logger.Named("llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	call := CallFrom(ctx)
	fields := []zap.Field{
		zap.String("purpose", call.Purpose),
		zap.String("model", l.inner.ModelID()),
		zap.Int("prompt_chars", promptChars(req)),
		zap.Duration("latency", time.Since(start)),
	}
	if call.RequestID != "" {
		fields = append(fields, zap.String("request_id", call.RequestID))
	}

	if err != nil {
		l.logger.Error("llm request failed", append(fields, zap.Error(err))...)
		return resp, err
	}

	if resp != nil {
		fields = append(fields,
			zap.String("served_by", resp.Model),
			zap.String("stop_reason", resp.StopReason),
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
		if usd, ok := EstimateCost(resp.Model, resp.Usage); ok {
			fields = append(fields, zap.Float64("cost_usd", usd))
		}
		if reason := ReplyReason(resp.Reply); reason != "" {
			fields = append(fields, zap.String("empty_reason", reason))
		}
	}

	l.logger.Info("llm request", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// Close releases the wrapped provider if it holds resources.
func (l *LoggingProvider) Close() error {
	if c, ok := l.inner.(Closer); ok {
		return c.Close()
	}
	return nil
}

func promptChars(req Request) int {
	n := len(req.System)
	for _, m := range req.Messages {
		n += len(m.Content)
	}
	return n
}
