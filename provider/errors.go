package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for transport operations.
var (
	// ErrUnknownProvider indicates the requested transport is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnavailable indicates the completion service is unavailable.
	ErrUnavailable = errors.New("completion service unavailable")

	// ErrRateLimited indicates the request was rate limited.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidRequest indicates the request is malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTimeout indicates the request timed out.
	ErrTimeout = errors.New("request timed out")

	// ErrCredentialsNotFound indicates the credential is missing.
	ErrCredentialsNotFound = errors.New("credentials not found")

	// ErrMalformedResponse indicates the response lacks the reply or usage fields.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error wraps transport errors with context.
type Error struct {
	Provider  string // Provider name ("openai", "azure")
	Op        string // Operation that failed ("complete")
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error, retryable bool) *Error {
	return &Error{
		Provider:  provider,
		Op:        op,
		Err:       err,
		Retryable: retryable,
	}
}

// PayloadError reports a response body that could not be turned into a
// Response. Raw holds the body as received so it can be inspected.
type PayloadError struct {
	Reason string
	Raw    []byte
}

// Error implements the error interface.
func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: %s (payload: %s)", ErrMalformedResponse, e.Reason, previewPayload(e.Raw))
}

// Unwrap makes errors.Is(err, ErrMalformedResponse) succeed.
func (e *PayloadError) Unwrap() error {
	return ErrMalformedResponse
}

const maxPayloadPreview = 512

func previewPayload(raw []byte) string {
	if len(raw) > maxPayloadPreview {
		return string(raw[:maxPayloadPreview]) + "..."
	}
	return string(raw)
}

// IsRetryable checks if an error is likely transient and worth retrying.
// The conversation client never retries on its own; this is for callers.
func IsRetryable(err error) bool {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}

	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTimeout)
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrCredentialsNotFound)
}
