package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a recipe or ingredient does not exist
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is returned when the local daily budget or the
	// provider's own quota is exhausted
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUpstream is returned when a provider response is malformed or
	// the provider is unreachable
	ErrUpstream = errors.New("upstream provider request failed")

	// ErrStorage is returned when a persistence operation fails
	ErrStorage = errors.New("storage operation failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)

// AuthError reports a failed token acquisition or refresh against the
// catalog provider. StatusCode is the provider's HTTP status, or 0 when
// the request never reached the provider.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("catalog authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("catalog authentication failed: status %d", e.StatusCode)
}

func (e *AuthError) Unwrap() error { return e.Err }
