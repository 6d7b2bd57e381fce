package adapter

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"google.golang.org/genai"
)

// GoogleAdapter implements the Adapter interface for Gemini models.
type GoogleAdapter struct {
	client *genai.Client
}

// GoogleOption adjusts the client configuration of a GoogleAdapter.
type GoogleOption func(*genai.ClientConfig)

// WithGoogleBaseURL points the adapter at another Gemini API endpoint.
func WithGoogleBaseURL(url string) GoogleOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// NewGoogleAdapter creates a new Google Gemini adapter.
func NewGoogleAdapter(ctx context.Context, apiKey string, opts ...GoogleOption) (*GoogleAdapter, error) {
	if apiKey == "" {
		return nil, errors.WithHint(errors.New("google API key is required"), "set GOOGLE_API_KEY")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create google client")
	}

	return &GoogleAdapter{
		client: client,
	}, nil
}

// Name returns the adapter identifier.
func (a *GoogleAdapter) Name() string {
	return "google"
}

// Models returns the list of supported Gemini models.
func (a *GoogleAdapter) Models() []string {
	return []string{
		"gemini-2.0-flash",
		"gemini-2.5-pro",
	}
}

// Generate sends the prompt to Gemini and returns the text of the first part
// of the first candidate.
func (a *GoogleAdapter) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := a.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: clampInt32(req.MaxTokens),
		Temperature:     genai.Ptr(float32(req.Temperature)),
	})
	if err != nil {
		return nil, apiError(a.Name(), err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, emptyResponse(a.Name(), req.Model)
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			out := &Response{Text: part.Text, Adapter: a.Name(), Model: req.Model}
			if resp.UsageMetadata != nil {
				out.Usage = newUsage(int64(resp.UsageMetadata.PromptTokenCount), int64(resp.UsageMetadata.CandidatesTokenCount))
			}
			return out, nil
		}
	}
	return nil, emptyResponse(a.Name(), req.Model)
}

// clampInt32 limits n to the range of the Gemini token fields.
func clampInt32(n int64) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int32(n)
}
