package linkapi

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotConfigured is returned when the real backend is disabled or its URL
// cannot be used. No network call is made.
var ErrNotConfigured = errors.New("linkapi: backend not configured")

// HTTPStatusError is a non-2xx answer from the backend.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("linkapi: backend returned %d: %s", e.StatusCode, e.Body)
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("linkapi: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsRemote reports whether err came from an attempted network call, as
// opposed to a disabled or misconfigured client.
func IsRemote(err error) bool {
	var statusErr *HTTPStatusError
	var netErr *NetworkError
	return errors.As(err, &statusErr) || errors.As(err, &netErr)
}
