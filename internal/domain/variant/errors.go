package variant

import "errors"

// Sentinel kinds for variant errors.
var (
	ErrMissingSeries  = errors.New("missing series in response")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrEmptyCity      = errors.New("city must not be empty")
)
