package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrUnknownContainer = errors.New("unknown container")
	ErrUnknownFormat    = errors.New("unknown image format")
	ErrRender           = errors.New("render chart")
)
