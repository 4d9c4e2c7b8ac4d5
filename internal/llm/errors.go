package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned by ExtractJSON when the model produced no text.
var ErrEmptyResponse = errors.New("empty response")

// NotConfiguredError indicates that no credential is available for the provider.
// It is never retried.
type NotConfiguredError struct {
	Provider Provider
}

func (e *NotConfiguredError) Error() string {
	if e.Provider == "" {
		return "model provider is not configured"
	}
	return fmt.Sprintf("%s is not configured", e.Provider)
}

// APICallError represents a failed call to the model provider (network, quota, auth).
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents model output that could not be turned into the expected JSON.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsNotConfigured reports whether err is (or wraps) a NotConfiguredError.
func IsNotConfigured(err error) bool {
	var nc *NotConfiguredError
	return errors.As(err, &nc)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
