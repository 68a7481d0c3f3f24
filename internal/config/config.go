// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the dashboard listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the origin serving /api/data, e.g. "http://localhost:5000".
	APIBaseURL string `koanf:"api_base_url"`

	// Variant selects "city" (one city, air quality) or "all" (every city, grouped).
	Variant string `koanf:"variant"`

	// City is used by the "city" variant.
	City string `koanf:"city"`

	// Container is the id of the element the chart is rendered into.
	Container string `koanf:"container"`

	// RequestTimeoutMS bounds a single metrics request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// ImageFormat is png or svg.
	ImageFormat string `koanf:"image_format"`

	// ChartWidth and ChartHeight size the rendered image in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// CORSOrigins lists origins allowed to read dashboard endpoints.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		APIBaseURL:       "http://localhost:5000",
		Variant:          "city",
		City:             "Chicago",
		Container:        "charts",
		RequestTimeoutMS: 10_000,
		ImageFormat:      "png",
		ChartWidth:       800,
		ChartHeight:      480,
		CORSOrigins:      []string{"*"},
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate checks the fields the loader cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api_base_url must be an absolute URL, got %q", ErrInvalidConfig, c.APIBaseURL)
	}
	if strings.TrimSpace(c.Container) == "" {
		return fmt.Errorf("%w: container must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.ImageFormat) {
	case "png", "svg":
	default:
		return fmt.Errorf("%w: image_format must be png or svg, got %q", ErrInvalidConfig, c.ImageFormat)
	}
	if c.RequestTimeoutMS <= 0 {
		return fmt.Errorf("%w: request_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: chart_width and chart_height must be positive", ErrInvalidConfig)
	}
	return nil
}
