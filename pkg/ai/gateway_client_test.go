package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	hits     atomic.Int32
	mu       sync.Mutex
	lastBody map[string]any
	lastAuth string
}

func (fg *fakeGateway) body() map[string]any {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	return fg.lastBody
}

func newFakeGateway(t *testing.T, status int, reply string) (*fakeGateway, *httptest.Server) {
	t.Helper()
	fg := &fakeGateway{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fg.hits.Add(1)
		b, _ := io.ReadAll(r.Body)
		fg.mu.Lock()
		fg.lastAuth = r.Header.Get("Authorization")
		fg.lastBody = nil
		_ = json.Unmarshal(b, &fg.lastBody)
		fg.mu.Unlock()
		if r.URL.Path != "/v1/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return fg, srv
}

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
	})
	return string(b)
}

func TestNewGateway_MissingKey(t *testing.T) {
	_, err := NewGateway("http://unused", "  ", "m", time.Second, zap.NewNop())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGateway_Success(t *testing.T) {
	fg, srv := newFakeGateway(t, http.StatusOK, chatReply("hello farmer"))
	c, err := NewGateway(srv.URL+"/", "secret", "google/gemini-2.5-flash", 5*time.Second, zap.NewNop())
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), Prompt{System: "sys", Text: "hi", Temperature: Float(0.4), MaxTokens: 1000})
	require.NoError(t, err)
	assert.Equal(t, "hello farmer", out)
	assert.Equal(t, int32(1), fg.hits.Load())
	fg.mu.Lock()
	assert.Equal(t, "Bearer secret", fg.lastAuth)
	fg.mu.Unlock()
	assert.Equal(t, "google/gemini-2.5-flash", fg.body()["model"])
	assert.Equal(t, 0.4, fg.body()["temperature"])
	assert.Equal(t, float64(1000), fg.body()["max_tokens"])

	msgs := fg.body()["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "hi", msgs[1].(map[string]any)["content"])
}

func TestGateway_ImageTurnIsMultipart(t *testing.T) {
	fg, srv := newFakeGateway(t, http.StatusOK, chatReply("{}"))
	c, err := NewGateway(srv.URL, "secret", "m", 5*time.Second, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Prompt{System: "s", Text: "look", ImageURL: "data:image/png;base64,AAAA"})
	require.NoError(t, err)

	user := fg.body()["messages"].([]any)[1].(map[string]any)
	parts := user["content"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0].(map[string]any)["type"])
	img := parts[1].(map[string]any)
	assert.Equal(t, "image_url", img["type"])
	assert.Equal(t, "data:image/png;base64,AAAA", img["image_url"].(map[string]any)["url"])
	_, hasTemp := fg.body()["temperature"]
	assert.False(t, hasTemp)
}

func TestGateway_StatusClassification(t *testing.T) {
	cases := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusTooManyRequests, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrRateLimited) }},
		{http.StatusPaymentRequired, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrQuotaExceeded)
			assert.False(t, errors.Is(err, ErrRateLimited))
		}},
		{http.StatusBadGateway, func(t *testing.T, err error) {
			var up *UpstreamError
			require.ErrorAs(t, err, &up)
			assert.Equal(t, http.StatusBadGateway, up.Status)
			assert.Equal(t, `{"error":"boom"}`, up.Body)
		}},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			fg, srv := newFakeGateway(t, tc.status, `{"error":"boom"}`)
			c, err := NewGateway(srv.URL, "secret", "m", 5*time.Second, nil)
			require.NoError(t, err)
			_, err = c.Complete(context.Background(), Prompt{Text: "q"})
			tc.check(t, err)
			assert.Equal(t, int32(1), fg.hits.Load(), "no retries")
		})
	}
}

func TestGateway_EmptyContentIsUpstreamError(t *testing.T) {
	_, srv := newFakeGateway(t, http.StatusOK, `{"choices":[]}`)
	c, err := NewGateway(srv.URL, "secret", "m", 5*time.Second, nil)
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), Prompt{Text: "q"})
	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, http.StatusOK, up.Status)
}

func TestGateway_NetworkFailure(t *testing.T) {
	_, srv := newFakeGateway(t, http.StatusOK, chatReply("x"))
	url := srv.URL
	srv.Close()
	c, err := NewGateway(url, "secret", "m", time.Second, nil)
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), Prompt{Text: "q"})
	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, 0, up.Status)
	assert.Equal(t, "upstream", Kind(err))
}

func TestGateway_TimeoutAndCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(release); srv.Close() })

	c, err := NewGateway(srv.URL, "secret", "m", 50*time.Millisecond, nil)
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), Prompt{Text: "q"})
	assert.Equal(t, "timeout", Kind(err))
	assert.Equal(t, "AI analysis timed out", Message(err))

	c, err = NewGateway(srv.URL, "secret", "m", time.Minute, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Complete(ctx, Prompt{Text: "q"})
	assert.Equal(t, "canceled", Kind(err))
}

func TestHTTPStatusAndMessage(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(ErrRateLimited))
	assert.Equal(t, http.StatusPaymentRequired, HTTPStatus(ErrQuotaExceeded))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrMalformedOutput))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&UpstreamError{Status: 503}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrConfiguration))

	assert.Equal(t, "AI analysis failed", Message(&UpstreamError{Status: 500, Body: "secret stack"}))
	assert.Equal(t, "Invalid AI response format", Message(ErrMalformedOutput))
	assert.Equal(t, "malformed_output", Kind(ErrMalformedOutput))
}
