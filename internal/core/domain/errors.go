package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthMissing is reported when a request that expects a credential is
// sent without one. It is never returned from a fetch: the backend decides.
var ErrAuthMissing = errors.New("no credential in session")

// InvalidRequestError is returned before anything is dispatched.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// NetworkError means no response was obtained.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError carries a non-2xx status and the raw body for diagnostics.
type HTTPError struct {
	Method string
	URL    string
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api returned status %d for %s %s: %s", e.Status, e.Method, e.URL, string(e.Body))
}

// DecodeError means a 2xx body did not match the expected shape.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding json response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	ok := errors.As(err, &httpErr)
	return httpErr, ok
}

func IsNotFound(err error) bool {
	httpErr, ok := IsHTTPError(err)
	return ok && httpErr.Status == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	httpErr, ok := IsHTTPError(err)
	return ok && httpErr.Status == http.StatusUnauthorized
}

// IsRetryable reports whether repeating the same request may succeed.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	if httpErr, ok := IsHTTPError(err); ok {
		return httpErr.Status >= 500
	}
	return false
}
