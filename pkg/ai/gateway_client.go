// pkg/ai/gateway_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"agrisight/pkg/metrics"
)

const (
	maxResponseBytes = 4 << 20
	maxLoggedBody    = 2048
)

// gatewayClient talks to an OpenAI-compatible /v1/chat/completions endpoint.
type gatewayClient struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
	log      *zap.Logger
}

func NewGateway(endpoint, key, model string, timeout time.Duration, log *zap.Logger) (Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrConfiguration
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &gatewayClient{
		endpoint: strings.TrimRight(endpoint, "/") + "/v1/chat/completions",
		key:      key,
		model:    model,
		httpc:    &http.Client{Timeout: timeout},
		log:      log.Named("gateway"),
	}, nil
}

func (c *gatewayClient) Provider() string { return ProviderGateway }
func (c *gatewayClient) Model() string    { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or []contentPart for multimodal turns
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func buildChatRequest(model string, p Prompt) chatRequest {
	var user any = p.Text
	if p.ImageURL != "" {
		user = []contentPart{
			{Type: "text", Text: p.Text},
			{Type: "image_url", ImageURL: &imageRef{URL: p.ImageURL}},
		}
	}
	return chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: user},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
}

func (c *gatewayClient) Complete(ctx context.Context, p Prompt) (string, error) {
	start := time.Now()
	out, err := c.complete(ctx, p)
	metrics.ObserveInference(c.Provider(), c.model, Kind(err), time.Since(start))
	return out, err
}

func (c *gatewayClient) complete(ctx context.Context, p Prompt) (string, error) {
	b, err := json.Marshal(buildChatRequest(c.model, p))
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else if isTimeout(err) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		c.log.Warn("inference request failed", zap.Error(err))
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn("inference rate limited", zap.Int("status", resp.StatusCode))
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		c.log.Warn("inference quota exhausted", zap.Int("status", resp.StatusCode))
		return "", ErrQuotaExceeded
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Error("AI gateway error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(body, maxLoggedBody)))
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Error("undecodable gateway reply", zap.Error(err), zap.String("body", truncate(body, maxLoggedBody)))
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(body), Err: fmt.Errorf("decode reply: %w", err)}
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", &UpstreamError{Status: resp.StatusCode, Body: truncate(body, maxLoggedBody), Err: errors.New("no content in AI response")}
	}
	return out.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
