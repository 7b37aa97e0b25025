// Package llm provides centralized LLM configuration and client abstractions.
// This package enables easy switching between model tiers and providers.
package llm

import (
	"context"
	"fmt"
)

// Role tags a chat message with its author.
type Role string

// Message roles understood by all providers.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry in a completion request.
type Message struct {
	Role    Role
	Content string
}

// Request describes a single text-completion call.
type Request struct {
	Messages    []Message
	Temperature float32
	// JSONMode asks the provider for a JSON-only response where supported.
	// Providers without native JSON mode ignore it; extraction downstream
	// handles fenced or prose-wrapped output either way.
	JSONMode bool
	Tier     ModelTier
}

// Client is an abstraction over LLM providers.
type Client interface {
	// Complete returns a single text completion for the request.
	Complete(ctx context.Context, req Request) (string, error)
	// Model returns the underlying provider model for a tier.
	Model(tier ModelTier) string
	// Close releases any resources held by the client.
	Close() error
}

// ServiceError represents a transport, quota, or provider failure.
// It is never retried automatically; callers surface it to the user.
type ServiceError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s completion failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s completion failed: %s", e.Provider, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewClient creates a new LLM client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// systemAndRest splits the request messages into the first system message
// and the remaining conversation turns. Providers that take a dedicated
// system field use the split form.
func systemAndRest(messages []Message) (string, []Message) {
	var system string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem && system == "" {
			system = m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
