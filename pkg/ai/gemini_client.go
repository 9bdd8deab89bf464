package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"agrisight/pkg/metrics"
)

// geminiClient calls Google's Gemini API directly instead of a gateway.
type geminiClient struct {
	cl      *genai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

func NewGemini(ctx context.Context, key, model string, timeout time.Duration, log *zap.Logger) (Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrConfiguration
	}
	if log == nil {
		log = zap.NewNop()
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(strings.TrimSpace(key)))
	if err != nil {
		return nil, err
	}
	// gateway model ids look like "google/gemini-2.5-flash"
	model = strings.TrimPrefix(strings.TrimSpace(model), "google/")
	return &geminiClient{cl: cl, model: model, timeout: timeout, log: log.Named("gemini")}, nil
}

func (c *geminiClient) Provider() string { return ProviderGemini }
func (c *geminiClient) Model() string    { return c.model }

func (c *geminiClient) Close() error { return c.cl.Close() }

func (c *geminiClient) Complete(ctx context.Context, p Prompt) (string, error) {
	start := time.Now()
	out, err := c.complete(ctx, p)
	metrics.ObserveInference(c.Provider(), c.model, Kind(err), time.Since(start))
	return out, err
}

func (c *geminiClient) complete(ctx context.Context, p Prompt) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	m := c.cl.GenerativeModel(c.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	if p.Temperature != nil {
		m.SetTemperature(float32(*p.Temperature))
	}
	if p.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(p.MaxTokens))
	}

	parts := []genai.Part{genai.Text(p.Text)}
	if p.ImageURL != "" {
		img, mime, err := DecodeImage(p.ImageURL)
		if err != nil {
			return "", err
		}
		parts = append(parts, &genai.Blob{MIMEType: mime, Data: img})
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", c.classify(ctx, err)
	}
	return replyText(resp)
}

// replyText joins the text parts of the first candidate.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", &UpstreamError{Status: http.StatusOK, Err: errors.New("no content in AI response")}
	}
	return sb.String(), nil
}

func (c *geminiClient) classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.log.Warn("inference request aborted", zap.Error(ctxErr))
		return &UpstreamError{Err: ctxErr}
	}

	status := 0
	var gerr *googleapi.Error
	var aerr *apierror.APIError
	switch {
	case errors.As(err, &gerr):
		status = gerr.Code
	case errors.As(err, &aerr):
		status = aerr.HTTPCode()
		if status <= 0 && aerr.GRPCStatus().Code() == codes.ResourceExhausted {
			status = http.StatusTooManyRequests
		}
	}

	switch status {
	case http.StatusTooManyRequests:
		c.log.Warn("inference rate limited", zap.Int("status", status))
		return ErrRateLimited
	case http.StatusPaymentRequired:
		c.log.Warn("inference quota exhausted", zap.Int("status", status))
		return ErrQuotaExceeded
	}
	c.log.Error("gemini error", zap.Int("status", status), zap.Error(err))
	return &UpstreamError{Status: status, Body: err.Error(), Err: err}
}
