package adapter

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"
)

// AnthropicAdapter implements the Adapter interface for Claude models on the Anthropic API.
type AnthropicAdapter struct {
	client anthropic.Client
}

// NewAnthropicAdapter creates a new Anthropic adapter.
func NewAnthropicAdapter(apiKey string, opts ...option.RequestOption) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, errors.WithHint(errors.New("anthropic API key is required"), "set ANTHROPIC_API_KEY")
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(opts...)
	return &AnthropicAdapter{client: client}, nil
}

// Name returns the adapter identifier.
func (a *AnthropicAdapter) Name() string {
	return "anthropic"
}

// Models returns the list of supported Claude models.
func (a *AnthropicAdapter) Models() []string {
	return []string{
		"claude-sonnet-4-20250514",
		"claude-opus-4-20250514",
	}
}

// Generate sends the prompt to Claude as a single user message.
func (a *AnthropicAdapter) Generate(ctx context.Context, req Request) (*Response, error) {
	return generateMessage(ctx, a.client, a.Name(), req)
}

// generateMessage is shared by every adapter that speaks the Messages API.
func generateMessage(ctx context.Context, client anthropic.Client, name string, req Request) (*Response, error) {
	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return nil, apiError(name, err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return &Response{
				Text:    block.Text,
				Adapter: name,
				Model:   req.Model,
				Usage:   newUsage(resp.Usage.InputTokens, resp.Usage.OutputTokens),
			}, nil
		}
	}
	return nil, emptyResponse(name, req.Model)
}
