// Package render turns chart series into figures and images.
package render

import (
	"context"
	"time"

	"github.com/okian/envcharts/internal/domain/model"
	"github.com/okian/envcharts/pkg/metrics"
)

// Renderer draws series into the container with the given id.
type Renderer interface {
	Render(ctx context.Context, container string, series []model.ChartSeries, layout model.Layout) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, container string, series []model.ChartSeries, layout model.Layout) error

// Render implements Renderer.
func (f RendererFunc) Render(ctx context.Context, container string, series []model.ChartSeries, layout model.Layout) error {
	return f(ctx, container, series, layout)
}

// observe records a render outcome under the renderer name.
func observe(name string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.RecordRender(name, outcome, float64(time.Since(start).Microseconds())/1000)
}
