package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash":      "gemini-2.5-flash",
	"gemini-flash-lite": "gemini-2.5-flash-lite",
	"gemini-pro":        "gemini-2.5-pro",
}

// geminiHarmCategories are the categories whose thresholds are relaxed
// when GeminiConfig.BlockNone is set.
var geminiHarmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	blockNone bool
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		model:     resolveModel(cfg.Model, geminiModels),
		blockNone: cfg.BlockNone,
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		SafetySettings: buildGeminiSafetySettings(p.blockNone),
	}

	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, buildGeminiContents(req.Messages), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	resp := &Response{
		Reply:      geminiReply(result),
		Model:      p.model,
		StopReason: mapGeminiStopReason(result),
	}

	if result != nil && result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func buildGeminiSafetySettings(blockNone bool) []*genai.SafetySetting {
	if !blockNone {
		return nil
	}
	out := make([]*genai.SafetySetting, 0, len(geminiHarmCategories))
	for _, c := range geminiHarmCategories {
		out = append(out, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return out
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

// geminiReply maps the SDK response shape onto the Reply sum.
func geminiReply(result *genai.GenerateContentResponse) Reply {
	if result == nil {
		return EmptyReply{Reason: "no response"}
	}
	if len(result.Candidates) == 0 {
		reason := "no candidates"
		if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
			reason = "prompt blocked: " + string(fb.BlockReason)
		}
		return EmptyReply{Reason: reason}
	}

	cands := make([]Candidate, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		if c == nil {
			continue
		}
		cand := Candidate{FinishReason: string(c.FinishReason)}
		if c.Content != nil {
			for _, part := range c.Content.Parts {
				if part == nil {
					continue
				}
				cand.Parts = append(cand.Parts, Part{Text: part.Text, Thought: part.Thought})
			}
		}
		cands = append(cands, cand)
	}
	return CandidateReply{Candidates: cands}
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0] != nil {
		switch result.Candidates[0].FinishReason {
		case "STOP":
			return "end"
		case "MAX_TOKENS":
			return "max_tokens"
		case "SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST":
			return "safety"
		}
	}
	return "end"
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return mapStatusError(apiErr.Code, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

// mapStatusError classifies an HTTP status code from any provider SDK.
func mapStatusError(code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &ErrAuth{Err: err}
	case code == http.StatusBadRequest:
		return &ErrInvalidResponse{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
