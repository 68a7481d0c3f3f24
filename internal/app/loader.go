// Package service loads environmental metrics and turns them into a rendered
// bar chart.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/envcharts/internal/adapters/render"
	"github.com/okian/envcharts/internal/domain/model"
	"github.com/okian/envcharts/internal/domain/variant"
	"github.com/okian/envcharts/pkg/logger"
	"github.com/okian/envcharts/pkg/metrics"
)

// Defaults used when no option overrides them.
const (
	DefaultCity      = "Chicago"
	DefaultContainer = "charts"
)

// Fetcher retrieves one metrics snapshot from a path on the metrics endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (model.MetricsResponse, error)
}

// Result describes the outcome of a single Load.
type Result struct {
	ID        string
	Variant   string
	Endpoint  string
	Container string
	Series    []model.ChartSeries
	Layout    model.Layout
	Duration  time.Duration
	// Err wraps ErrFetch, ErrBuild or ErrRender when the load failed.
	Err error
}

// OK reports whether the chart was rendered.
func (r Result) OK() bool { return r.Err == nil }

// Loader fetches metrics, builds chart series and hands them to a renderer.
// It is safe for concurrent use; every call to Load is independent.
type Loader struct {
	fetcher   Fetcher
	renderer  render.Renderer
	variant   variant.Variant
	container string
	logger    logger.Logger
}

// New constructs a Loader plotting air quality for DefaultCity into
// DefaultContainer unless options say otherwise.
func New(fetcher Fetcher, renderer render.Renderer, opts ...Option) *Loader {
	l := &Loader{
		fetcher:   fetcher,
		renderer:  renderer,
		variant:   variant.SingleCity{City: DefaultCity},
		container: DefaultContainer,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Variant returns the configured variant.
func (l *Loader) Variant() variant.Variant { return l.variant }

// Container returns the configured container id.
func (l *Loader) Container() string { return l.container }

// Load performs one fetch, build and render cycle. Failures are reported in
// the returned Result; the renderer is only called once the series are built.
func (l *Loader) Load(ctx context.Context) (res Result) {
	start := time.Now()
	res = Result{
		ID:        uuid.NewString(),
		Variant:   l.variant.Name(),
		Endpoint:  l.variant.Endpoint(),
		Container: l.container,
	}
	log := l.logger.With(
		logger.String("load_id", res.ID),
		logger.String("variant", res.Variant),
	)

	defer func() {
		res.Duration = time.Since(start)
		outcome := metrics.OutcomeSuccess
		if res.Err != nil {
			outcome = metrics.OutcomeFailure
			log.Error(ctx, "chart load failed",
				logger.String("endpoint", res.Endpoint),
				logger.Duration("duration", res.Duration),
				logger.Error(res.Err),
			)
		} else {
			log.Info(ctx, "chart loaded",
				logger.String("container", res.Container),
				logger.Int("series", len(res.Series)),
				logger.Duration("duration", res.Duration),
			)
		}
		metrics.RecordLoad(res.Variant, outcome, float64(res.Duration.Milliseconds()))
	}()

	resp, err := l.fetcher.Fetch(ctx, res.Endpoint)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrFetch, err)
		return res
	}
	log.Debug(ctx, "metrics fetched", logger.Any("series", resp.Names()))

	series, layout, err := l.variant.Build(resp)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrBuild, err)
		return res
	}
	res.Series = series
	res.Layout = layout
	for _, s := range series {
		metrics.UpdateSeriesPoints(s.Label, s.Len())
	}

	if err := l.render(ctx, series, layout); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrRender, err)
	}
	return res
}

func (l *Loader) render(ctx context.Context, series []model.ChartSeries, layout model.Layout) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	return l.renderer.Render(ctx, l.container, series, layout)
}
