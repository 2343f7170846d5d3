package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the provider's reply
// normalized into a Reply variant.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Closer is implemented by providers that hold resources which must be
// released at process exit.
type Closer interface {
	Close() error
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional; the question bank sends its
	// whole instruction as a single user message.
	System string

	// Messages is the conversation history. For question generation this
	// contains one user message holding the built prompt.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request around prompt.
func UserPrompt(prompt string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Response holds the LLM's output.
type Response struct {
	// Reply is the provider output normalized into one of the Reply
	// variants. Never nil for a successful call; an absent payload is
	// represented by EmptyReply.
	Reply Reply

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "safety", "error"
	StopReason string
}

// Text is shorthand for ExtractText(r.Reply). Safe on a nil receiver.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return ExtractText(r.Reply)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
