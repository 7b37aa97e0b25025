package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const (
	// anthropicEndpoint is the Anthropic Messages API endpoint.
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	// anthropicVersion is the API version header value.
	anthropicVersion = "2023-06-01"
	// anthropicMaxTokens caps a single completion.
	anthropicMaxTokens = 4096
)

// AnthropicClient implements Client against the Anthropic Messages API.
type AnthropicClient struct {
	apiKey     string
	endpoint   string
	config     *Config
	httpClient *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(config *Config, apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, &ServiceError{Provider: ProviderAnthropic, Message: "API key is required"}
	}

	endpoint := anthropicEndpoint
	if config.BaseURL != "" {
		endpoint = config.BaseURL
	}

	return &AnthropicClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		config:   config,
		httpClient: &http.Client{
			Timeout: config.CallTimeout(),
		},
	}, nil
}

// Complete returns a single text completion for the request.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "no model configured for tier " + string(req.Tier)}
	}

	system, rest := systemAndRest(req.Messages)
	body := anthropicRequest{
		Model:       modelName,
		MaxTokens:   anthropicMaxTokens,
		Temperature: req.Temperature,
		System:      system,
	}
	for _, m := range rest {
		role := "user"
		if m.Role == RoleAssistant {
			role = "assistant"
		}
		body.Messages = append(body.Messages, anthropicMessage{Role: role, Content: m.Content})
	}
	if len(body.Messages) == 0 {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "request has no user messages"}
	}
	// The Messages API has no JSON response mode; prompts are expected to
	// instruct JSON-only output and extraction cleans the rest.

	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "failed to create HTTP request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{
			Provider: ProviderAnthropic,
			Message:  "API request failed with status " + resp.Status + ": " + string(respBody),
		}
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "failed to parse response", Cause: err}
	}
	if len(parsed.Content) == 0 {
		return "", &ServiceError{Provider: ProviderAnthropic, Message: "no content in response"}
	}
	return parsed.Content[0].Text, nil
}

// Model returns the model name for a tier
func (c *AnthropicClient) Model(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *AnthropicClient) Close() error {
	return nil
}
