package llm

import (
	"fmt"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "openrouter", "anthropic", "mock"
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig

	// Timeout bounds a single generation call. Zero disables the deadline.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"

	// BlockNone sets every harm category threshold to BLOCK_NONE.
	BlockNone bool
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model:     "gemini-flash",
			BlockNone: true,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Timeout: 120 * time.Second,
	}
}

// SetAPIKey stores key on the sub-config of the selected provider.
func (c *Config) SetAPIKey(key string) {
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	}
}

// SetModel overrides the model of the selected provider. Empty is a no-op.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	}
}

// NeedsAPIKey reports whether the selected provider requires a credential.
func (c Config) NeedsAPIKey() bool {
	return c.Provider != ProviderMock
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("an API key is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("an API key is required for the openai provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("an API key is required for the openrouter provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("an API key is required for the anthropic provider")
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
