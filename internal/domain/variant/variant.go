// Package variant describes which endpoint a chart load hits and which
// series it plots.
package variant

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/envcharts/internal/domain/model"
)

// Series names published by the metrics endpoint.
const (
	AirQuality = "air_quality"
	WaterUsage = "water_usage"
)

// Display labels for the plotted series.
const (
	AirQualityLabel = "Air Quality"
	WaterUsageLabel = "Water Usage"
)

// Configuration names of the variants.
const (
	NameCity = "city"
	NameAll  = "all"
)

const dataPath = "/api/data"

// Variant decides the endpoint path and turns a response into chart series.
type Variant interface {
	// Name returns the configuration name of the variant.
	Name() string
	// Endpoint returns the request path relative to the API base URL.
	Endpoint() string
	// Build selects and converts the series to plot along with layout options.
	Build(resp model.MetricsResponse) ([]model.ChartSeries, model.Layout, error)
}

// SingleCity plots air quality for one city under a titled layout.
type SingleCity struct {
	City string
}

// Name implements Variant.
func (SingleCity) Name() string { return NameCity }

// Endpoint implements Variant.
func (v SingleCity) Endpoint() string {
	return dataPath + "/" + url.PathEscape(v.City)
}

// Build implements Variant.
func (v SingleCity) Build(resp model.MetricsResponse) ([]model.ChartSeries, model.Layout, error) {
	air, ok := resp.Lookup(AirQuality)
	if !ok {
		return nil, model.Layout{}, fmt.Errorf("%w: %s", ErrMissingSeries, AirQuality)
	}
	series := []model.ChartSeries{model.NewBarSeries(air, AirQualityLabel)}
	return series, model.Layout{Title: Title(v.City)}, nil
}

// Title returns the single-city chart title.
func Title(city string) string {
	return AirQualityLabel + " in " + city
}

// MultiCity plots air quality and water usage across cities as grouped bars.
type MultiCity struct{}

// Name implements Variant.
func (MultiCity) Name() string { return NameAll }

// Endpoint implements Variant.
func (MultiCity) Endpoint() string { return dataPath }

// Build implements Variant. Each series keeps its own key order; the
// renderer aligns bars by category label.
func (MultiCity) Build(resp model.MetricsResponse) ([]model.ChartSeries, model.Layout, error) {
	air, ok := resp.Lookup(AirQuality)
	if !ok {
		return nil, model.Layout{}, fmt.Errorf("%w: %s", ErrMissingSeries, AirQuality)
	}
	water, ok := resp.Lookup(WaterUsage)
	if !ok {
		return nil, model.Layout{}, fmt.Errorf("%w: %s", ErrMissingSeries, WaterUsage)
	}
	series := []model.ChartSeries{
		model.NewBarSeries(air, AirQualityLabel),
		model.NewBarSeries(water, WaterUsageLabel),
	}
	return series, model.Layout{BarMode: model.BarModeGroup}, nil
}

// Parse maps a configuration name to a Variant.
func Parse(name, city string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameCity, "":
		city = strings.TrimSpace(city)
		if city == "" {
			return nil, ErrEmptyCity
		}
		return SingleCity{City: city}, nil
	case NameAll:
		return MultiCity{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}
