// pkg/ai/mock_client.go

package ai

import (
	"context"
	"strings"
	"sync"
)

// DemoReply serves both output disciplines, so the mock provider can drive
// the soil and crop-insight paths during local development.
const DemoReply = `{
  "health_score": 82,
  "moisture_level": 28,
  "ph_level": 6.8,
  "nitrogen_level": 38,
  "ndvi_value": 0.71,
  "should_rest": false,
  "rotation_needed": false,
  "suggested_crop": "beans",
  "recommendations": [
    "Rotate potatoes with a legume to restore nitrogen",
    "Add compost before the next planting"
  ]
}`

// MockClient replays a fixed reply. It records every prompt it receives.
type MockClient struct {
	Reply string
	Err   error
	// ReplyFor overrides Reply when set.
	ReplyFor func(Prompt) (string, error)

	mu      sync.Mutex
	prompts []Prompt
}

func NewMock(reply string, err error) *MockClient { return &MockClient{Reply: reply, Err: err} }

func (m *MockClient) Provider() string { return ProviderMock }
func (m *MockClient) Model() string    { return "mock" }

func (m *MockClient) Complete(ctx context.Context, p Prompt) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, p)
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", &UpstreamError{Err: err}
	}
	if m.ReplyFor != nil {
		return m.ReplyFor(p)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if strings.TrimSpace(m.Reply) == "" {
		return DemoReply, nil
	}
	return m.Reply, nil
}

func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *MockClient) LastPrompt() Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return Prompt{}
	}
	return m.prompts[len(m.prompts)-1]
}
