package oracle

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 800
)

// AnthropicOracle asks Claude for the underwriting verdict. Temperature is
// pinned to 0: the verdict must be reproducible for identical contexts.
type AnthropicOracle struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// AnthropicOption configures the oracle.
type AnthropicOption func(*AnthropicOracle)

// WithModel overrides the default model.
func WithModel(model string) AnthropicOption {
	return func(o *AnthropicOracle) {
		o.model = model
	}
}

// WithMaxTokens overrides the response token budget.
func WithMaxTokens(n int64) AnthropicOption {
	return func(o *AnthropicOracle) {
		o.maxTokens = n
	}
}

// NewAnthropicOracle creates an oracle on an existing Anthropic client.
func NewAnthropicOracle(client *anthropic.Client, opts ...AnthropicOption) *AnthropicOracle {
	o := &AnthropicOracle{
		client:    client,
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Decide sends the decision context and returns the raw verdict text.
// Parsing and fail-closed defaults are the caller's concern.
func (o *AnthropicOracle) Decide(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(o.model),
		MaxTokens:   o.maxTokens,
		Temperature: anthropic.Float(0),
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(req))),
		},
	}

	resp, err := o.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("reasoning request: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
