package llm

import (
	"context"
	"strings"
)

// Provider is the oracle abstraction: a hosted model that turns a prompt
// into text. Every tutoring operation goes through exactly one Generate call.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its text response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional; the tutor prompts carry their
	// persona inline so they read the same on every backend.
	System string

	// Messages is the conversation history. Practice Buddy always sends a
	// single user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
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

// Response holds the LLM's output.
type Response struct {
	// Content is the generated text, untrimmed.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is one of StopEnd, StopMaxTokens or StopError.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopError     = "error"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// CompleteOptions tunes a single Complete call.
type CompleteOptions struct {
	MaxTokens   int
	Temperature float64
}

// Complete sends prompt as a single user message and returns the trimmed
// response text. An empty response is reported as *ErrInvalidResponse.
func Complete(ctx context.Context, p Provider, prompt string, opts CompleteOptions) (string, error) {
	resp, err := p.Generate(ctx, Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", &ErrInvalidResponse{Err: errEmptyResponse}
	}
	return text, nil
}
