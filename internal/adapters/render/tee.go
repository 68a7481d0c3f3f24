package render

import (
	"context"
	"errors"

	"github.com/okian/envcharts/internal/domain/model"
)

// Tee forwards one render call to every renderer in order.
type Tee []Renderer

// Render implements Renderer. All renderers run; their errors are joined.
func (t Tee) Render(ctx context.Context, container string, series []model.ChartSeries, layout model.Layout) error {
	var errs []error
	for _, r := range t {
		if err := r.Render(ctx, container, series, layout); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
