package model

// Kind is the trace type of a chart series.
type Kind string

// KindBar is the only kind produced by the loader.
const KindBar Kind = "bar"

// BarMode controls how multiple bar series share a category.
type BarMode string

// Bar modes understood by the renderers.
const (
	BarModeOverlay BarMode = ""
	BarModeGroup   BarMode = "group"
)

// ChartSeries is one set of bars handed to a renderer.
// JSON names follow the Plotly trace format.
type ChartSeries struct {
	Categories []string  `json:"x"`
	Values     []float64 `json:"y"`
	Label      string    `json:"name"`
	Kind       Kind      `json:"type"`
}

// Len returns the number of bars.
func (c ChartSeries) Len() int { return len(c.Categories) }

// Layout carries the chart options passed next to the series.
type Layout struct {
	Title   string  `json:"title,omitempty"`
	BarMode BarMode `json:"barmode,omitempty"`
}

// NewBarSeries builds a bar ChartSeries from a metric series.
// Categories and Values are never nil, so an empty series encodes as [] not null.
func NewBarSeries(s Series, label string) ChartSeries {
	return ChartSeries{
		Categories: s.Labels(),
		Values:     s.Values(),
		Label:      label,
		Kind:       KindBar,
	}
}
