package adapter

import "context"

// Adapter defines the interface for LLM provider adapters.
type Adapter interface {
	// Generate sends a single request to the model and returns its text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the adapter's identifier.
	Name() string

	// Models returns the list of supported models. The first entry is the default.
	Models() []string
}

// Request is a fully resolved text-completion request.
type Request struct {
	Model       string
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// DefaultModel returns the adapter's first model, or "" if it lists none.
func DefaultModel(a Adapter) string {
	models := a.Models()
	if len(models) == 0 {
		return ""
	}
	return models[0]
}
