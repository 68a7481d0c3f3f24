package service

import (
	"github.com/okian/envcharts/internal/domain/variant"
	"github.com/okian/envcharts/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithVariant selects which endpoint is fetched and which series are plotted.
func WithVariant(v variant.Variant) Option {
	return func(l *Loader) {
		if v != nil {
			l.variant = v
		}
	}
}

// WithContainer sets the container the chart is rendered into.
func WithContainer(id string) Option {
	return func(l *Loader) {
		if id != "" {
			l.container = id
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}
