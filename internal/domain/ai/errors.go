package ai

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrNotConfigured means no API key was provided to the service.
var ErrNotConfigured = errors.New("ai enhancement is not configured")

// ErrEmptyCompletion means the provider answered without any text.
var ErrEmptyCompletion = errors.New("ai returned an empty completion")

// ErrInvalidMessage covers missing or oversized input.
var ErrInvalidMessage = errors.New("invalid message")

// UpstreamError carries the provider's HTTP status and message so the edge can relay them.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai upstream error (%d): %s", e.StatusCode, e.Message)
}
