package api

import "errors"

var (
	// ErrEndpointRequired is returned when no API endpoint is configured.
	ErrEndpointRequired = errors.New("api endpoint required")

	// ErrInvalidEndpoint is returned when the endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid api endpoint")

	// ErrQueryClientRequired is returned when a wrapped client is not provided.
	ErrQueryClientRequired = errors.New("query client required")

	// ErrCacheRequired is returned when a response cache is not provided.
	ErrCacheRequired = errors.New("response cache required")

	// ErrUnavailable indicates a transient upstream failure (5xx or 429).
	ErrUnavailable = errors.New("api unavailable")

	// ErrBadStatus indicates a non-retryable HTTP status.
	ErrBadStatus = errors.New("unexpected api status")

	// ErrMalformedResponse indicates the response body could not be decoded.
	ErrMalformedResponse = errors.New("malformed api response")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
