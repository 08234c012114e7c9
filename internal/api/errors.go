// ABOUTME: Error taxonomy for tracker API calls
// ABOUTME: Typed errors for HTTP failures and transport failures

package api

import "fmt"

// Error is a non-2xx response from the tracker API. Detail carries the
// server's structured error body when one was present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// IsAuth reports whether the error indicates a missing or rejected credential.
func (e *Error) IsAuth() bool {
	return e.Status == 401 || e.Status == 403
}

// NetworkError is a transport-level failure: no HTTP response was received.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach tracker at %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
