package providers

import (
	"errors"
	"fmt"
)

// ProviderError means the provider answered with a status other than 200.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider returned status code %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider returned status code %d", e.StatusCode)
}

// ParseError means a 200 response body did not have the expected shape.
type ParseError struct {
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed provider response: %s: %v", e.Detail, e.Err)
	}
	return "malformed provider response: " + e.Detail
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NetworkError means the request never produced a complete response.
type NetworkError struct {
	Detail string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather request failed: %s: %v", e.Detail, e.Err)
	}
	return "weather request failed: " + e.Detail
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage renders a fetch error for display. Provider status codes are shown
// as-is, everything else collapses into a generic message.
func UserMessage(err error) string {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return fmt.Sprintf("failed to fetch weather data: %d", providerErr.StatusCode)
	}
	return "failed to fetch weather data"
}

// Kind names the error class of a fetch outcome, "ok" for success.
func Kind(err error) string {
	var (
		providerErr *ProviderError
		parseErr    *ParseError
		networkErr  *NetworkError
	)

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &providerErr):
		return "provider_error"
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &networkErr):
		return "network_error"
	default:
		return "error"
	}
}

// StatusCode returns the provider status carried by err, or 0.
func StatusCode(err error) int {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode
	}
	return 0
}
