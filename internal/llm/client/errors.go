package client

import "errors"

var (
	// ErrAIUnavailable wraps every transport, quota or empty-reply failure.
	ErrAIUnavailable = errors.New("ai service unavailable")
	// ErrMalformedOutput is returned when a reply does not match the requested schema.
	ErrMalformedOutput = errors.New("ai returned malformed output")
	ErrMissingAPIKey   = errors.New("api key is required")
	ErrUnknownProvider = errors.New("unknown chat provider")
)
