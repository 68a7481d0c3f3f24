package metricsapi

import (
	"errors"
	"fmt"
)

// Sentinel kinds for metrics endpoint failures.
var (
	ErrRequest   = errors.New("build metrics request")
	ErrTransport = errors.New("metrics endpoint unreachable")
	ErrStatus    = errors.New("metrics endpoint returned an error status")
	ErrDecode    = errors.New("decode metrics response")
)

// StatusError carries the HTTP status of a failed response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d from %s", ErrStatus, e.Code, e.URL)
}

// Unwrap lets errors.Is(err, ErrStatus) match.
func (e *StatusError) Unwrap() error { return ErrStatus }
