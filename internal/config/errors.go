package config

import "errors"

// Sentinel errors returned by Load and Validate.
var (
	// ErrInvalidConfig wraps every Validate failure; the message names the key.
	ErrInvalidConfig = errors.New("invalid envcharts config")
	// ErrLoadConfig wraps file, env and unmarshal failures.
	ErrLoadConfig = errors.New("load envcharts config")
)
