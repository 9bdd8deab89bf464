// pkg/ai/client.go

package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"agrisight/config"
)

// Prompt is one chat-style completion request: a system instruction and a
// single user turn, optionally carrying an inline image.
type Prompt struct {
	System      string
	Text        string
	ImageURL    string // data URL; empty for text-only turns
	Temperature *float64
	MaxTokens   int
}

// Client performs exactly one completion per call and returns the assistant
// text or a classified error (see errors.go). It never retries.
type Client interface {
	Complete(ctx context.Context, p Prompt) (string, error)
	Provider() string
	Model() string
}

const (
	ProviderGateway = "gateway"
	ProviderGemini  = "gemini"
	ProviderMock    = "mock"
)

// New builds the client selected by cfg.AIProvider. A missing credential is
// ErrConfiguration, returned before any network activity.
func New(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.AIProvider)) {
	case "", ProviderGateway:
		return NewGateway(cfg.AIGatewayURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout, log)
	case ProviderGemini:
		return NewGemini(ctx, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout, log)
	case ProviderMock:
		return NewMock(DemoReply, nil), nil
	}
	return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
}

func Float(v float64) *float64 { return &v }
