package ais

import (
	"errors"
	"fmt"
)

// ErrBucketNotFound reports a bucket the cluster does not know about.
// Match with errors.Is.
var ErrBucketNotFound = errors.New("bucket does not exist")

// InvalidProviderError is returned when an operation is not defined for the
// handle's backend provider. It is raised before any cluster call is made.
type InvalidProviderError struct {
	Provider Provider
}

func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("invalid bucket provider %q", e.Provider)
}

// HTTPError is a non-2xx reply from the cluster. Message carries the
// response body verbatim.
type HTTPError struct {
	Status  int
	Method  string
	Path    string
	Message string

	sentinel error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s /v1/%s failed: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.sentinel }
