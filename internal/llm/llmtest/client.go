// Package llmtest provides scripted llm.Client fakes for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jkoster/webfolio/internal/llm"
)

// ScriptedClient returns canned responses in order and records every request.
// When Script is set it takes precedence over Responses; when both are
// exhausted, Complete returns Fallback.
type ScriptedClient struct {
	mu        sync.Mutex
	Responses []string
	// Script maps a request to a response; return handled=false to fall
	// through to Responses/Fallback.
	Script   func(req llm.Request) (resp string, err error, handled bool)
	Fallback string
	Err      error
	Calls    []llm.Request

	next int
}

// Complete implements llm.Client.
func (c *ScriptedClient) Complete(_ context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls = append(c.Calls, req)
	if c.Err != nil {
		return "", c.Err
	}
	if c.Script != nil {
		if resp, err, handled := c.Script(req); handled {
			return resp, err
		}
	}
	if c.next < len(c.Responses) {
		resp := c.Responses[c.next]
		c.next++
		return resp, nil
	}
	return c.Fallback, nil
}

// Model implements llm.Client.
func (c *ScriptedClient) Model(tier llm.ModelTier) string {
	return "scripted-" + string(tier)
}

// Close implements llm.Client.
func (c *ScriptedClient) Close() error { return nil }

// LastUserContent returns the content of the last non-system message of the
// most recent call, or empty when no calls were made.
func (c *ScriptedClient) LastUserContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Calls) == 0 {
		return ""
	}
	msgs := c.Calls[len(c.Calls)-1].Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != llm.RoleSystem {
			return msgs[i].Content
		}
	}
	return ""
}
