package inference

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zen-systems/promptgen/pkg/adapter"
	"github.com/zen-systems/promptgen/pkg/prompt"
)

type nilAdapter struct{}

func (nilAdapter) Generate(context.Context, adapter.Request) (*adapter.Response, error) {
	return &adapter.Response{}, nil
}

func (nilAdapter) Name() string { return "nil" }

func (nilAdapter) Models() []string { return nil }

func TestCompose(t *testing.T) {
	assert.Equal(t, "Summarize\n\nContent to transform:\nHello Bob", Compose("Summarize", "Hello Bob"))

	got := Compose("I", "P")
	assert.Equal(t, 1, strings.Count(got, Separator))
	assert.True(t, strings.HasPrefix(got, "I"))
	assert.True(t, strings.HasSuffix(got, "P"))
}

func TestResolveDefaults(t *testing.T) {
	maxTokens, temperature := Resolve(prompt.ModelParams{})
	assert.Equal(t, DefaultMaxTokens, maxTokens)
	assert.Equal(t, DefaultTemperature, temperature)

	n, temp := int64(42), 0.0
	maxTokens, temperature = Resolve(prompt.ModelParams{MaxTokens: &n, Temperature: &temp})
	assert.EqualValues(t, 42, maxTokens)
	assert.Equal(t, 0.0, temperature)

	maxTokens, temperature = Resolve(prompt.ModelParams{MaxTokens: &n})
	assert.EqualValues(t, 42, maxTokens)
	assert.Equal(t, DefaultTemperature, temperature)
}

func TestGenerateSendsComposedRequest(t *testing.T) {
	mock := adapter.NewMockAdapterWithResponses(map[string]string{
		"Summarize\n\nContent to transform:\nHello Bob": "Bob says hi",
	}, "")
	client, err := NewClient(mock, "")
	require.NoError(t, err)
	assert.Equal(t, "mock-1", client.Model())
	assert.Equal(t, "mock", client.Adapter())

	resp, err := client.Generate(context.Background(), "Hello Bob", "Summarize", prompt.ModelParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bob says hi", resp.Text)

	require.Len(t, mock.Requests, 1)
	assert.Equal(t, adapter.Request{
		Model:       "mock-1",
		Prompt:      "Summarize\n\nContent to transform:\nHello Bob",
		MaxTokens:   2000,
		Temperature: 0.7,
	}, mock.Requests[0])
}

func TestGeneratePropagatesErrors(t *testing.T) {
	mock := adapter.NewMockAdapter()
	mock.Err = errors.New("backend down")
	client, err := NewClient(mock, "mock-2")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "p", "i", prompt.ModelParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
	assert.Len(t, mock.Requests, 1, "a failed call is not retried")
	assert.Equal(t, "mock-2", mock.Requests[0].Model)
}

func TestGenerateRejectsEmptyText(t *testing.T) {
	client, err := NewClient(nilAdapter{}, "m")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "p", "i", prompt.ModelParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, adapter.ErrEmptyResponse))
}

func TestNewClientNeedsModel(t *testing.T) {
	_, err := NewClient(nilAdapter{}, "")
	require.Error(t, err)

	_, err = NewClient(nil, "m")
	require.Error(t, err)
}
