package adapter

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/zen-systems/promptgen/pkg/config"
)

// Names lists the adapters New can build.
var Names = []string{"bedrock", "anthropic", "openai", "google", "mock"}

// New creates the adapter selected by cfg.Adapter.
func New(ctx context.Context, cfg config.Inference) (Adapter, error) {
	switch cfg.Adapter {
	case "bedrock":
		return NewBedrockAdapter(ctx, cfg.Region)
	case "anthropic":
		return NewAnthropicAdapter(cfg.AnthropicAPIKey)
	case "openai":
		return NewOpenAIAdapter(cfg.OpenAIAPIKey)
	case "google":
		return NewGoogleAdapter(ctx, cfg.GoogleAPIKey)
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, errors.WithHintf(errors.Wrapf(ErrUnknownAdapter, "%q", cfg.Adapter), "available adapters: %v", Names)
	}
}
