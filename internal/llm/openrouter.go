package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// openRouterAppTitle is sent as X-Title so calls are attributed to
	// this app on the OpenRouter dashboard.
	openRouterAppTitle = "qbank"
)

// openRouterModels lets the Gemini aliases work unchanged when routing
// through OpenRouter. Any other name is passed through.
var openRouterModels = map[string]string{
	"gemini-flash":      "google/gemini-2.5-flash",
	"gemini-flash-lite": "google/gemini-2.5-flash-lite",
	"gemini-pro":        "google/gemini-2.5-pro",
	"claude-haiku":      "anthropic/claude-haiku-4.5",
	"claude-sonnet":     "anthropic/claude-sonnet-4.5",
}

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible endpoint.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{
		Transport: attributionTransport{title: openRouterAppTitle, base: http.DefaultTransport},
	}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, openRouterModels),
	}}, nil
}

// attributionTransport adds the OpenRouter app headers to every request.
type attributionTransport struct {
	title string
	base  http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(req)
}
