package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a hosted provider is configured without a key.
var ErrMissingAPIKey = errors.New("API key is required")

// ErrEmptyResponse is returned when a provider answers with no usable text.
var ErrEmptyResponse = errors.New("empty response from LLM")

// ErrUnavailable is returned by the Unavailable generator.
var ErrUnavailable = errors.New("text generation service unavailable")

// ErrDegraded marks a response that carried the apology text instead of content.
var ErrDegraded = errors.New("text generation service degraded")

// APICallError represents an error from a provider API
type APICallError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
