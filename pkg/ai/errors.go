package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"agrisight/config"
)

var (
	// ErrConfiguration means the inference credential is missing; nothing was sent.
	ErrConfiguration = config.ErrMissingCredential
	// ErrRateLimited maps upstream 429.
	ErrRateLimited = errors.New("rate limit exceeded, please try again later")
	// ErrQuotaExceeded maps upstream 402.
	ErrQuotaExceeded = errors.New("payment required, please add credits to continue")
	// ErrMalformedOutput is a 2xx reply whose content broke the output contract.
	ErrMalformedOutput = errors.New("invalid AI response format")
)

// UpstreamError covers every other non-2xx reply and transport failure.
// Status is 0 when no response was received.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("AI gateway error: status %d: %v", e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("AI gateway error: status %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("AI gateway error: %v", e.Err)
	}
	return "AI gateway error"
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Kind names the failure class of err for logs and metrics.
func Kind(err error) string {
	var up *UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrMalformedOutput):
		return "malformed_output"
	case errors.As(err, &up):
		if errors.Is(up.Err, context.DeadlineExceeded) {
			return "timeout"
		}
		if errors.Is(up.Err, context.Canceled) {
			return "canceled"
		}
		return "upstream"
	}
	return "internal"
}

// HTTPStatus is the status both analysis operations answer with for err.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

// Message is the caller-visible text for err. Upstream bodies stay in the logs.
func Message(err error) string {
	var up *UpstreamError
	switch {
	case errors.Is(err, ErrRateLimited):
		return "Rate limit exceeded. Please try again later."
	case errors.Is(err, ErrQuotaExceeded):
		return "Payment required. Please add credits to continue."
	case errors.Is(err, ErrConfiguration):
		return ErrConfiguration.Error()
	case errors.Is(err, ErrMalformedOutput):
		return "Invalid AI response format"
	case errors.As(err, &up):
		if errors.Is(up.Err, context.DeadlineExceeded) {
			return "AI analysis timed out"
		}
		return "AI analysis failed"
	case err == nil:
		return ""
	}
	return err.Error()
}
