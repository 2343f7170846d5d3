package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with logging middleware. The mock
// provider answers every call with mockText.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger, mockText string) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider().WithFallback(MockResponse{Text: mockText})
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, logger), nil
}

// Close releases p if it implements Closer.
func Close(p Provider) error {
	if c, ok := p.(Closer); ok {
		return c.Close()
	}
	return nil
}
