package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("nothing rendered yet")
	ErrTemplate   = errors.New("dashboard template failed")
)
