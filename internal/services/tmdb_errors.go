package services

import (
	"errors"
	"fmt"
)

// Remote-call failures collapse into a small taxonomy the rest of the
// application can branch on without inspecting transport details.
var (
	// ErrUnauthorized means the API rejected our key (HTTP 401).
	ErrUnauthorized = errors.New("tmdb: API key authentication failed")

	// ErrNotFound means the remote reports no movie with that ID.
	ErrNotFound = errors.New("tmdb: no such movie")

	// ErrBlankQuery means a search was attempted with an empty query.
	ErrBlankQuery = errors.New("tmdb: blank search query")
)

// NetworkError wraps a transport failure: no response reached the server.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("tmdb: network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UpstreamError covers non-2xx responses outside the dedicated cases, and
// 2xx responses whose body is not the shape the API documents.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb: upstream error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb: upstream error: status %d", e.StatusCode)
}
