package render

// Option applies a configuration option to the ImageRenderer.
type Option func(*ImageRenderer)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(r *ImageRenderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// WithFormat selects png or svg output.
func WithFormat(format string) Option {
	return func(r *ImageRenderer) {
		if format != "" {
			r.format = format
		}
	}
}

// WithBarWidth sets the width of a single bar in pixels.
func WithBarWidth(width int) Option {
	return func(r *ImageRenderer) {
		if width > 0 {
			r.barWidth = width
		}
	}
}
