package service

import "errors"

// Load stages. A failed Result wraps exactly one of these.
var (
	ErrFetch  = errors.New("fetch metrics")
	ErrBuild  = errors.New("build chart series")
	ErrRender = errors.New("render chart")
)
