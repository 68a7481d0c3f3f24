package api

import "github.com/okian/envcharts/pkg/logger"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.logger = log
		}
	}
}
