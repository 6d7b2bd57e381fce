package inference

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/zen-systems/promptgen/pkg/adapter"
	"github.com/zen-systems/promptgen/pkg/prompt"
)

// Separator sits between the instruction and the rendered prompt.
const Separator = "\n\nContent to transform:\n"

// Defaults applied when a prompt file leaves the option out.
const (
	DefaultMaxTokens   int64   = 2000
	DefaultTemperature float64 = 0.7
)

// Client turns an instruction and a rendered prompt into generated text with a
// single call to the backing adapter.
type Client struct {
	adapter adapter.Adapter
	model   string
}

// NewClient creates a client. An empty model selects the adapter's default model.
func NewClient(a adapter.Adapter, model string) (*Client, error) {
	if a == nil {
		return nil, errors.New("inference adapter is required")
	}
	if model == "" {
		model = adapter.DefaultModel(a)
	}
	if model == "" {
		return nil, errors.Newf("no model specified for adapter %s", a.Name())
	}
	return &Client{adapter: a, model: model}, nil
}

// Adapter returns the adapter name.
func (c *Client) Adapter() string {
	return c.adapter.Name()
}

// Model returns the model requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Compose joins the instruction and the rendered prompt into the text sent to the model.
func Compose(instruction, rendered string) string {
	return instruction + Separator + rendered
}

// Resolve fills in defaults for options the prompt file did not set.
func Resolve(params prompt.ModelParams) (maxTokens int64, temperature float64) {
	maxTokens, temperature = DefaultMaxTokens, DefaultTemperature
	if params.MaxTokens != nil {
		maxTokens = *params.MaxTokens
	}
	if params.Temperature != nil {
		temperature = *params.Temperature
	}
	return maxTokens, temperature
}

// Request builds the adapter request for one generation.
func (c *Client) Request(rendered, instruction string, params prompt.ModelParams) adapter.Request {
	maxTokens, temperature := Resolve(params)
	return adapter.Request{
		Model:       c.model,
		Prompt:      Compose(instruction, rendered),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Generate makes one attempt and returns the generated text. Failures, including
// an empty response, are returned to the caller.
func (c *Client) Generate(ctx context.Context, rendered, instruction string, params prompt.ModelParams) (*adapter.Response, error) {
	resp, err := c.adapter.Generate(ctx, c.Request(rendered, instruction, params))
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Text == "" {
		return nil, errors.Wrapf(adapter.ErrEmptyResponse, "%s/%s", c.adapter.Name(), c.model)
	}
	return resp, nil
}
