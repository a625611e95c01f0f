package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the blog service answers 404 for a resource.
var ErrNotFound = errors.New("blog not found")

// NetworkError is returned when a request never produced an HTTP response:
// DNS failures, refused connections, timeouts, cancellation.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blog service returned status %d", e.Code)
	}
	return fmt.Sprintf("blog service returned status %d: %s", e.Code, e.Message)
}

// Retryable reports whether a failed call is worth repeating. Transport
// failures, 5xx and 429 are; missing resources and other client errors are
// not, and neither is a cancelled context.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrNotFound) {
		return false
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError ||
			statusErr.Code == http.StatusTooManyRequests
	}
	return false
}
