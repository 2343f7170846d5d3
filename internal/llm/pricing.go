package llm

// price is USD per million tokens.
type price struct {
	input, output float64
}

// prices covers the models the configured providers resolve to. Served
// model IDs that carry a date suffix are listed explicitly.
var prices = map[string]price{
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-2.0-flash":      {0.1, 0.4},

	"google/gemini-2.5-flash":      {0.3, 2.5},
	"google/gemini-2.5-flash-lite": {0.1, 0.4},
	"google/gemini-2.5-pro":        {1.25, 10},
	"anthropic/claude-haiku-4.5":   {1, 5},
	"anthropic/claude-sonnet-4.5":  {3, 15},

	"gpt-4o":            {2.5, 10},
	"gpt-4o-2024-08-06": {2.5, 10},
	"gpt-4o-mini":       {0.15, 0.6},
	"gpt-4.1-mini":      {0.4, 1.6},

	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},
}

// EstimateCost returns the USD cost of u on model. ok is false when the
// model has no known price.
func EstimateCost(model string, u Usage) (usd float64, ok bool) {
	p, ok := prices[model]
	if !ok {
		return 0, false
	}
	return (float64(u.InputTokens)*p.input + float64(u.OutputTokens)*p.output) / 1_000_000, true
}
