package adapter

import (
	"context"
	"fmt"
)

// MockAdapter returns deterministic responses for local runs and tests.
// It records every request it receives.
type MockAdapter struct {
	responses       map[string]string
	defaultResponse string
	Err             error
	Usage           *Usage
	Requests        []Request
}

// NewMockAdapter creates a mock adapter with a default response.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		responses:       make(map[string]string),
		defaultResponse: "mock response:",
	}
}

// NewMockAdapterWithResponses creates a mock adapter with predefined responses keyed by prompt.
func NewMockAdapterWithResponses(responses map[string]string, defaultResponse string) *MockAdapter {
	if defaultResponse == "" {
		defaultResponse = "mock response:"
	}
	return &MockAdapter{responses: responses, defaultResponse: defaultResponse}
}

// Name returns the adapter identifier.
func (a *MockAdapter) Name() string {
	return "mock"
}

// Models returns the list of supported mock models.
func (a *MockAdapter) Models() []string {
	return []string{"mock-1"}
}

// Generate returns the canned response for the prompt, or the default response
// followed by the prompt.
func (a *MockAdapter) Generate(_ context.Context, req Request) (*Response, error) {
	a.Requests = append(a.Requests, req)
	if a.Err != nil {
		return nil, a.Err
	}

	model := req.Model
	if model == "" {
		model = "mock-1"
	}
	text, ok := a.responses[req.Prompt]
	if !ok {
		text = fmt.Sprintf("%s\n%s", a.defaultResponse, req.Prompt)
	}
	if text == "" {
		return nil, emptyResponse(a.Name(), model)
	}
	return &Response{Text: text, Adapter: a.Name(), Model: model, Usage: a.Usage}, nil
}
