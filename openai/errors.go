package openai

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zakharsmirnoff/lloom/provider"
)

// APIError is returned when the endpoint responds with a non-200 status.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Type is the error type string (e.g., "invalid_request_error").
	Type string

	// Code is the machine-readable code when present (e.g., "context_length_exceeded").
	Code string

	// Message is the human-readable error description.
	Message string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("HTTP %d: %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status to a provider sentinel so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return provider.ErrCredentialsNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return provider.ErrRateLimited
	case e.StatusCode >= 500:
		return provider.ErrUnavailable
	case e.StatusCode >= 400:
		return provider.ErrInvalidRequest
	}
	return nil
}

// Retryable reports whether the status is transient.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// parseAPIError decodes {"error":{"type":"...","message":"...","code":"..."}}
// and falls back to the raw body.
func parseAPIError(status int, body []byte) *APIError {
	var wire struct {
		Error struct {
			Type    string `json:"type"`
			Code    any    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &wire) == nil && wire.Error.Message != "" {
		apiErr := &APIError{
			StatusCode: status,
			Type:       wire.Error.Type,
			Message:    wire.Error.Message,
		}
		if wire.Error.Code != nil {
			apiErr.Code = fmt.Sprint(wire.Error.Code)
		}
		return apiErr
	}
	return &APIError{StatusCode: status, Message: string(body)}
}
