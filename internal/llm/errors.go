package llm

import "errors"

var (
	// ErrUnavailable indicates the model service could not be reached.
	ErrUnavailable = errors.New("model service unavailable")

	// ErrTimeout indicates the model request exceeded the configured timeout.
	ErrTimeout = errors.New("model request timed out")

	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrBadStatus indicates the model service answered with a non-success status.
	ErrBadStatus = errors.New("model service returned an error status")

	// ErrNotConfigured indicates missing credentials or an unknown provider.
	ErrNotConfigured = errors.New("model service not configured")
)
